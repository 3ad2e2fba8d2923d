package ui

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// copyToClipboardFn and openURLFn are the active implementations for clipboard
// and browser operations. Tests replace them via StubPlatformActions.
var (
	copyToClipboardFn = clipboard.WriteAll
	openURLFn         = openURLImpl
)

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error { return copyToClipboardFn(text) }

// OpenURL opens a media link in the default browser. Only http and https
// links are opened.
func OpenURL(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("not a web link: %q", link)
	}
	return openURLFn(u.String())
}

// StubPlatformActions replaces clipboard and browser functions with recorders
// and returns a restore function. opened and copied receive every call.
func StubPlatformActions(opened, copied *[]string) (restore func()) {
	origCopy := copyToClipboardFn
	origOpen := openURLFn
	copyToClipboardFn = func(s string) error {
		if copied != nil {
			*copied = append(*copied, s)
		}
		return nil
	}
	openURLFn = func(s string) error {
		if opened != nil {
			*opened = append(*opened, s)
		}
		return nil
	}
	return func() {
		copyToClipboardFn = origCopy
		openURLFn = origOpen
	}
}

// openURLImpl starts the platform opener without waiting for it.
func openURLImpl(link string) error {
	ctx := context.Background()

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", link)
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("xdg-open not found (install xdg-utils)")
		}
		cmd = exec.CommandContext(ctx, "xdg-open", link)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", link)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
