package ui

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		mode KeyMode
		key  string
		want Action
	}{
		{KeyModeVim, "h", ActionPrev},
		{KeyModeVim, "l", ActionNext},
		{KeyModeVim, "left", ActionPrev},
		{KeyModeVim, "right", ActionNext},
		{KeyModeVim, "/", ActionSearch},
		{KeyModeVim, "o", ActionOpenVideo},
		{KeyModeVim, "tab", ActionNextPage},
		{KeyModeVim, "shift+tab", ActionPrevPage},
		{KeyModeVim, "3", ActionPage3},
		{KeyModeVim, "ctrl+c", ActionQuit},
		{KeyModeVim, "ctrl+b", ActionNone},
		{KeyModeEmacs, "ctrl+b", ActionPrev},
		{KeyModeEmacs, "ctrl+p", ActionPrev},
		{KeyModeEmacs, "ctrl+f", ActionNext},
		{KeyModeEmacs, "ctrl+n", ActionNext},
		{KeyModeEmacs, "ctrl+s", ActionSearch},
		{KeyModeEmacs, "h", ActionNone},
		{KeyModeEmacs, "left", ActionPrev},
		{KeyModeEmacs, "esc", ActionClose},
	}
	for _, tt := range tests {
		if got := Resolve(tt.mode, tt.key); got != tt.want {
			t.Errorf("Resolve(%s, %q) = %q, want %q", tt.mode, tt.key, got, tt.want)
		}
	}
}

func TestParseKeyMode(t *testing.T) {
	if got := ParseKeyMode("emacs"); got != KeyModeEmacs {
		t.Fatalf("expected emacs, got %q", got)
	}
	if got := ParseKeyMode("function"); got != DefaultKeyMode {
		t.Fatalf("expected default for unknown mode, got %q", got)
	}
	if got := ParseKeyMode(""); got != DefaultKeyMode {
		t.Fatalf("expected default for empty mode, got %q", got)
	}
}

func TestHelpEntriesFollowMode(t *testing.T) {
	vim := HelpEntries(KeyModeVim)
	emacs := HelpEntries(KeyModeEmacs)
	if len(vim) != len(emacs) {
		t.Fatalf("expected same number of entries, got %d and %d", len(vim), len(emacs))
	}
	if vim[0].Keys != "← / h" || emacs[0].Keys != "← / ctrl+b" {
		t.Fatalf("unexpected prev keys: %q / %q", vim[0].Keys, emacs[0].Keys)
	}
}
