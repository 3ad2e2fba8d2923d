package ui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain stubs platform actions (clipboard, browser) so that no test in the
// ui package can accidentally trigger real side effects.
func TestMain(m *testing.M) {
	restore := StubPlatformActions(nil, nil)
	code := m.Run()
	restore()
	os.Exit(code)
}

func TestOpenURLRejectsNonWebLinks(t *testing.T) {
	var opened []string
	restore := StubPlatformActions(&opened, nil)
	defer restore()

	for _, link := range []string{"file:///etc/passwd", "javascript:alert(1)", "not a url", "https://"} {
		assert.Error(t, OpenURL(link), link)
	}
	assert.Empty(t, opened)

	require.NoError(t, OpenURL("https://v360.example/d/1"))
	assert.Equal(t, []string{"https://v360.example/d/1"}, opened)
}

func TestCopyToClipboardUsesStub(t *testing.T) {
	var copied []string
	restore := StubPlatformActions(nil, &copied)
	defer restore()

	require.NoError(t, CopyToClipboard("https://v360.example/d/1"))
	assert.Equal(t, []string{"https://v360.example/d/1"}, copied)
}
