package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogLevel is zapcore.InfoLevel.
const mockLogLevel int8 = 0

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(mockLogLevel)
	logger2 := Get(-1)
	require.NotNil(t, logger1)
	assert.Same(t, logger1, logger2)
}

func TestGetReturnsNoopLoggerIfGlobalLoggerNil(t *testing.T) {
	Get(mockLogLevel)
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(mockLogLevel))
}

func TestNewWritesJSONWithBuildFields(t *testing.T) {
	var buf bytes.Buffer
	lgr, zl := New(mockLogLevel, &buf)
	lgr.Info("dataset loaded", "records", 3)
	require.NoError(t, zl.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "dataset loaded", entry[MessageKey])
	assert.Equal(t, float64(3), entry["records"])
	assert.Contains(t, entry, VersionKey)
	assert.Contains(t, entry, CommitKey)
	assert.Contains(t, entry, TimeStampKey)
}

func TestNewHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr, zl := New(mockLogLevel, &buf)
	lgr.V(1).Info("debug detail")
	require.NoError(t, zl.Sync())
	assert.Empty(t, buf.String(), "V(1) must be suppressed at info level")

	buf.Reset()
	dbg, zl := New(-1, &buf)
	dbg.V(1).Info("debug detail")
	require.NoError(t, zl.Sync())
	assert.Contains(t, buf.String(), "debug detail")
}

func TestWithLoggerAndFromContext(t *testing.T) {
	ctx := context.Background()
	lgr := Get(mockLogLevel)

	ctxWith := WithLogger(ctx, lgr)
	assert.Same(t, lgr, FromContext(ctxWith))
	assert.Equal(t, ctxWith, WithLogger(ctxWith, lgr), "same logger keeps the context")

	other := logr.Discard()
	replaced := WithLogger(ctxWith, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallbacks(t *testing.T) {
	global := Get(mockLogLevel)
	assert.Same(t, global, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
	assert.Same(t, &defaultNoopLogger, GetGlobalLogger())
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()
	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(errors.New("sync /dev/stderr: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValues(t *testing.T) {
	lgr := Get(mockLogLevel)
	nl := WithValues(lgr, SessionKey, "abc")
	require.NotNil(t, nl)
	assert.NotSame(t, lgr, nl)

	assert.NotSame(t, GetNoopLogger(), WithValues(GetNoopLogger()))
}

func TestWithWriterIgnoresNil(t *testing.T) {
	o := options{writer: &bytes.Buffer{}}
	WithWriter(nil)(&o)
	assert.NotNil(t, o.writer)
}

func TestSetGlobalReplacesInstance(t *testing.T) {
	Get(mockLogLevel)
	origLogr, origZap := globalLogrLogger, globalZapLogger
	defer func() { globalLogrLogger, globalZapLogger = origLogr, origZap }()

	var buf bytes.Buffer
	lgr, zl := New(mockLogLevel, &buf)
	SetGlobal(lgr, zl)
	assert.Same(t, lgr, Get(-1))
	assert.Same(t, lgr, FromContext(context.Background()))

	GetGlobalLogger().Info("after replace")
	Sync()
	assert.Contains(t, buf.String(), "after replace")
}
