package loader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Idle keep-alive connections from http.DefaultTransport.
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/diamonds.json"))
	assert.True(t, IsURL("http://localhost:8080/data"))
	assert.False(t, IsURL("ftp://example.com/data"))
	assert.False(t, IsURL("./diamonds.json"))
	assert.False(t, IsURL("https://"))
	assert.False(t, IsURL("-"))
}

func TestLoadFromHTTP(t *testing.T) {
	srv := serve(t, http.StatusOK, jsonDataset)

	records, err := Load(context.Background(), srv.URL+"/diamonds.json", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Round", records[0].Shape)
}

func TestLoadFromHTTPSniffsFormat(t *testing.T) {
	srv := serve(t, http.StatusOK, "- Shape: Pear\n  Carat: 1.5\n")

	records, err := Load(context.Background(), srv.URL+"/api/stock", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Pear", records[0].Shape)
}

func TestLoadHTTPStatusFailure(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "missing")

	records, err := Load(context.Background(), srv.URL, WithHTTPClient(srv.Client()))
	require.Error(t, err)
	assert.Nil(t, records)

	var lf *LoadFailure
	require.True(t, errors.As(err, &lf))
	assert.Equal(t, srv.URL, lf.Source)
	assert.Contains(t, err.Error(), "HTTP 404 Not Found")
}

func TestLoadInvalidBodyFailure(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"Shape": "Round",`)

	_, err := Load(context.Background(), srv.URL+"/data.json", WithHTTPClient(srv.Client()))
	var lf *LoadFailure
	require.ErrorAs(t, err, &lf)
	assert.Contains(t, lf.Err.Error(), "invalid JSON")
}

func TestLoadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := Load(context.Background(), srv.URL, WithHTTPClient(srv.Client()), WithTimeout(50*time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLoadCanceledContext(t *testing.T) {
	srv := serve(t, http.StatusOK, jsonDataset)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, srv.URL, WithHTTPClient(srv.Client()))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stock.toml")
	require.NoError(t, os.WriteFile(file, []byte("[[diamonds]]\nShape = \"Heart\"\nCarat = 0.9\n"), 0o600))

	records, err := Load(context.Background(), file)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Heart", records[0].Shape)

	_, err = Load(context.Background(), filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromStdin(t *testing.T) {
	in := strings.NewReader("{\"Shape\":\"Round\"}\n{\"Shape\":\"Oval\"}\n")
	records, err := Load(context.Background(), StdinSource, WithStdin(in))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadRejectsOversizedDataset(t *testing.T) {
	orig := maxDatasetBytes
	t.Cleanup(func() { maxDatasetBytes = orig })

	// Two complete NDJSON lines; a cut at the limit would still decode.
	body := "{\"Shape\":\"Round\"}\n{\"Shape\":\"Oval\"}\n"
	maxDatasetBytes = int64(len("{\"Shape\":\"Round\"}\n"))

	_, err := Load(context.Background(), StdinSource, WithStdin(strings.NewReader(body)))
	var lf *LoadFailure
	require.ErrorAs(t, err, &lf)
	assert.Contains(t, err.Error(), "dataset exceeds")

	file := filepath.Join(t.TempDir(), "stock.ndjson")
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	_, err = Load(context.Background(), file)
	require.ErrorAs(t, err, &lf)

	srv := serve(t, http.StatusOK, body)
	_, err = Load(context.Background(), srv.URL+"/diamonds.ndjson", WithHTTPClient(srv.Client()))
	require.ErrorAs(t, err, &lf)
	assert.Contains(t, err.Error(), "dataset exceeds")

	maxDatasetBytes = int64(len(body))
	records, err := Load(context.Background(), StdinSource, WithStdin(strings.NewReader(body)))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadWithFormat(t *testing.T) {
	in := strings.NewReader(`{"Shape":"Round"}`)
	_, err := Load(context.Background(), StdinSource, WithStdin(in), WithFormat(FormatYAML))
	// JSON is a YAML subset, so forcing YAML still decodes the object.
	require.NoError(t, err)
}

func TestLoadEmptySource(t *testing.T) {
	_, err := Load(context.Background(), "  ")
	var lf *LoadFailure
	require.ErrorAs(t, err, &lf)
	assert.Contains(t, err.Error(), "no data source")
}

func TestLoadOrEmpty(t *testing.T) {
	var logs bytes.Buffer
	lgr := funcr.New(func(prefix, args string) {
		logs.WriteString(args)
		logs.WriteString("\n")
	}, funcr.Options{})

	srv := serve(t, http.StatusInternalServerError, "boom")
	records := LoadOrEmpty(context.Background(), srv.URL, lgr, WithHTTPClient(srv.Client()))
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Contains(t, logs.String(), "failed to load dataset")
	assert.Contains(t, logs.String(), "HTTP 500 Internal Server Error")

	ok := serve(t, http.StatusOK, jsonDataset)
	records = LoadOrEmpty(context.Background(), ok.URL, lgr, WithHTTPClient(ok.Client()))
	assert.Len(t, records, 2)
}

func TestOptionsIgnoreZeroValues(t *testing.T) {
	o := newOptions([]Option{WithHTTPClient(nil), WithTimeout(0), WithStdin(nil)})
	assert.Equal(t, http.DefaultClient, o.client)
	assert.Equal(t, 30*time.Second, o.timeout)
	assert.Equal(t, os.Stdin, o.stdin)
}
