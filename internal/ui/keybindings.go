package ui

import (
	"github.com/oakwood-commons/destiny/internal/config"
)

// KeyMode represents the keybinding mode for the UI.
type KeyMode string

const (
	// KeyModeVim enables h/l navigation and / search.
	KeyModeVim KeyMode = config.KeyModeVim
	// KeyModeEmacs enables ctrl+b/ctrl+f navigation and ctrl+s search.
	KeyModeEmacs KeyMode = config.KeyModeEmacs
)

// DefaultKeyMode is the default keybinding mode.
const DefaultKeyMode = KeyModeVim

// ParseKeyMode returns the mode for s, or DefaultKeyMode when s is not a
// known mode.
func ParseKeyMode(s string) KeyMode {
	if config.IsValidKeyMode(s) {
		return KeyMode(s)
	}
	return DefaultKeyMode
}

// Action is what a key press asks the model to do.
type Action string

const (
	ActionNone       Action = ""
	ActionPrev       Action = "prev"
	ActionNext       Action = "next"
	ActionUp         Action = "up"
	ActionDown       Action = "down"
	ActionSearch     Action = "search"
	ActionOpenVideo  Action = "open_video"
	ActionOpenImage  Action = "open_image"
	ActionCopyVideo  Action = "copy_video"
	ActionToggleMenu Action = "toggle_menu"
	ActionToggleView Action = "toggle_view"
	ActionNextPage   Action = "next_page"
	ActionPrevPage   Action = "prev_page"
	ActionPage1      Action = "page_1"
	ActionPage2      Action = "page_2"
	ActionPage3      Action = "page_3"
	ActionPage4      Action = "page_4"
	ActionHelp       Action = "help"
	ActionClose      Action = "close"
	ActionEnter      Action = "enter"
	ActionQuit       Action = "quit"
)

// CommonKeyBindings apply in every mode.
var CommonKeyBindings = map[string]Action{
	"left":      ActionPrev,
	"right":     ActionNext,
	"up":        ActionUp,
	"down":      ActionDown,
	"tab":       ActionNextPage,
	"shift+tab": ActionPrevPage,
	"1":         ActionPage1,
	"2":         ActionPage2,
	"3":         ActionPage3,
	"4":         ActionPage4,
	"esc":       ActionClose,
	"enter":     ActionEnter,
	"ctrl+c":    ActionQuit,
}

// VimKeyBindings maps keys to actions for vim mode.
var VimKeyBindings = map[string]Action{
	"h": ActionPrev,
	"l": ActionNext,
	"k": ActionUp,
	"j": ActionDown,
	"/": ActionSearch,
	"o": ActionOpenVideo,
	"i": ActionOpenImage,
	"y": ActionCopyVideo,
	"m": ActionToggleMenu,
	"v": ActionToggleView,
	"?": ActionHelp,
	"q": ActionQuit,
}

// EmacsKeyBindings maps keys to actions for emacs mode.
var EmacsKeyBindings = map[string]Action{
	"ctrl+b": ActionPrev,
	"ctrl+p": ActionPrev,
	"ctrl+f": ActionNext,
	"ctrl+n": ActionNext,
	"ctrl+s": ActionSearch,
	"o":      ActionOpenVideo,
	"i":      ActionOpenImage,
	"y":      ActionCopyVideo,
	"m":      ActionToggleMenu,
	"v":      ActionToggleView,
	"?":      ActionHelp,
	"q":      ActionQuit,
}

// Resolve maps a key string (as produced by tea.KeyPressMsg.String) to an
// action for the given mode.
func Resolve(mode KeyMode, key string) Action {
	bindings := VimKeyBindings
	if mode == KeyModeEmacs {
		bindings = EmacsKeyBindings
	}
	if a, ok := bindings[key]; ok {
		return a
	}
	if a, ok := CommonKeyBindings[key]; ok {
		return a
	}
	return ActionNone
}

// helpEntry is one row of the key help overlay.
type helpEntry struct {
	Keys string
	Desc string
}

// HelpEntries lists the key help for mode in display order.
func HelpEntries(mode KeyMode) []helpEntry {
	prev, next, search := "← / h", "→ / l", "/"
	if mode == KeyModeEmacs {
		prev, next, search = "← / ctrl+b", "→ / ctrl+f", "ctrl+s"
	}
	return []helpEntry{
		{Keys: prev, Desc: "previous diamond"},
		{Keys: next, Desc: "next diamond"},
		{Keys: search, Desc: "search"},
		{Keys: "enter / esc", Desc: "leave search"},
		{Keys: "o", Desc: "open video"},
		{Keys: "i", Desc: "open image"},
		{Keys: "y", Desc: "copy video link"},
		{Keys: "v", Desc: "card / list view"},
		{Keys: "m", Desc: "menu"},
		{Keys: "tab / 1-4", Desc: "switch page"},
		{Keys: "?", Desc: "toggle help"},
		{Keys: "q", Desc: "quit"},
	}
}
