// Package config loads the destiny configuration: the embedded defaults,
// an optional user YAML file merged on top, and environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/destiny/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// Environment variables consulted by ApplyEnv.
const (
	EnvDataSource = "DESTINY_DATA_SOURCE"
	EnvTheme      = "DESTINY_THEME"
	EnvKeyMode    = "DESTINY_KEY_MODE"
)

// Key modes.
const (
	KeyModeVim   = "vim"
	KeyModeEmacs = "emacs"
)

// ColorValue stores a color token (ANSI number, name or hex) and marshals
// numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// ThemeConfig is the YAML form of a UI palette.
type ThemeConfig struct {
	Accent        ColorValue `yaml:"accent,omitempty"`
	Text          ColorValue `yaml:"text,omitempty"`
	Muted         ColorValue `yaml:"muted,omitempty"`
	Border        ColorValue `yaml:"border,omitempty"`
	BorderStyle   string     `yaml:"border_style,omitempty"`
	HeaderFG      ColorValue `yaml:"header_fg,omitempty"`
	HeaderBG      ColorValue `yaml:"header_bg,omitempty"`
	SelectedFG    ColorValue `yaml:"selected_fg,omitempty"`
	SelectedBG    ColorValue `yaml:"selected_bg,omitempty"`
	StatusError   ColorValue `yaml:"status_error,omitempty"`
	StatusSuccess ColorValue `yaml:"status_success,omitempty"`
}

type HomeConfig struct {
	Title      string   `yaml:"title,omitempty"`
	Intro      string   `yaml:"intro,omitempty"`
	Highlights []string `yaml:"highlights,omitempty"`
	Steps      []string `yaml:"steps,omitempty"`
	Tip        string   `yaml:"tip,omitempty"`
}

type AboutConfig struct {
	Title      string   `yaml:"title,omitempty"`
	Paragraphs []string `yaml:"paragraphs,omitempty"`
}

type ContactChannel struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type ContactConfig struct {
	Title    string           `yaml:"title,omitempty"`
	Intro    string           `yaml:"intro,omitempty"`
	Channels []ContactChannel `yaml:"channels,omitempty"`
}

// AppConfig holds the static page content.
type AppConfig struct {
	Name    string        `yaml:"name,omitempty"`
	Tagline string        `yaml:"tagline,omitempty"`
	Home    HomeConfig    `yaml:"home,omitempty"`
	About   AboutConfig   `yaml:"about,omitempty"`
	Contact ContactConfig `yaml:"contact,omitempty"`
}

// DataConfig locates the dataset.
type DataConfig struct {
	Source  string `yaml:"source"`
	Timeout string `yaml:"timeout,omitempty"`
	Where   string `yaml:"where,omitempty"`
}

type UIConfig struct {
	Theme   string                 `yaml:"theme,omitempty"`
	KeyMode string                 `yaml:"key_mode,omitempty"`
	NoColor *bool                  `yaml:"no_color,omitempty"`
	Themes  map[string]ThemeConfig `yaml:"themes,omitempty"`
}

// Config is the merged configuration.
type Config struct {
	App  AppConfig  `yaml:"app"`
	Data DataConfig `yaml:"data"`
	UI   UIConfig   `yaml:"ui"`
}

// DefaultYAML returns a copy of the embedded default config.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded default config.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, errors.New("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	if cfg.UI.Theme == "" || len(cfg.UI.Themes) == 0 {
		return cfg, errors.New("default config is missing required theme defaults")
	}
	return cfg, nil
}

// Load returns the defaults merged with the YAML file at path. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return Merge(cfg, user), nil
}

// Merge overlays the non-empty values of over on base. Themes are merged
// per field; a theme unknown to base starts from base's selected theme.
func Merge(base, over Config) Config {
	out := base

	setStr(&out.App.Name, over.App.Name)
	setStr(&out.App.Tagline, over.App.Tagline)
	setStr(&out.App.Home.Title, over.App.Home.Title)
	setStr(&out.App.Home.Intro, over.App.Home.Intro)
	setStr(&out.App.Home.Tip, over.App.Home.Tip)
	setSlice(&out.App.Home.Highlights, over.App.Home.Highlights)
	setSlice(&out.App.Home.Steps, over.App.Home.Steps)
	setStr(&out.App.About.Title, over.App.About.Title)
	setSlice(&out.App.About.Paragraphs, over.App.About.Paragraphs)
	setStr(&out.App.Contact.Title, over.App.Contact.Title)
	setStr(&out.App.Contact.Intro, over.App.Contact.Intro)
	if len(over.App.Contact.Channels) > 0 {
		out.App.Contact.Channels = append([]ContactChannel(nil), over.App.Contact.Channels...)
	}

	setStr(&out.Data.Source, over.Data.Source)
	setStr(&out.Data.Timeout, over.Data.Timeout)
	setStr(&out.Data.Where, over.Data.Where)

	setStr(&out.UI.Theme, over.UI.Theme)
	setStr(&out.UI.KeyMode, over.UI.KeyMode)
	if over.UI.NoColor != nil {
		v := *over.UI.NoColor
		out.UI.NoColor = &v
	}

	themes := make(map[string]ThemeConfig, len(base.UI.Themes)+len(over.UI.Themes))
	for name, th := range base.UI.Themes {
		themes[name] = th
	}
	for name, th := range over.UI.Themes {
		baseTheme, ok := themes[name]
		if !ok {
			baseTheme = base.UI.Themes[base.UI.Theme]
		}
		themes[name] = MergeTheme(baseTheme, th)
	}
	out.UI.Themes = themes
	return out
}

// MergeTheme overlays the non-empty colors of over on base.
func MergeTheme(base, over ThemeConfig) ThemeConfig {
	set := func(dst *ColorValue, v ColorValue) {
		if v != "" {
			*dst = v
		}
	}
	out := base
	set(&out.Accent, over.Accent)
	set(&out.Text, over.Text)
	set(&out.Muted, over.Muted)
	set(&out.Border, over.Border)
	set(&out.HeaderFG, over.HeaderFG)
	set(&out.HeaderBG, over.HeaderBG)
	set(&out.SelectedFG, over.SelectedFG)
	set(&out.SelectedBG, over.SelectedBG)
	set(&out.StatusError, over.StatusError)
	set(&out.StatusSuccess, over.StatusSuccess)
	setStr(&out.BorderStyle, over.BorderStyle)
	return out
}

func setStr(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setSlice(dst *[]string, v []string) {
	if len(v) > 0 {
		*dst = append([]string(nil), v...)
	}
}

// ApplyEnv overrides config values from the environment. getenv is usually
// os.Getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvTheme)); v != "" {
		cfg.UI.Theme = v
	}
	if v := strings.TrimSpace(getenv(EnvKeyMode)); v != "" && IsValidKeyMode(v) {
		cfg.UI.KeyMode = v
	}
	// The data source from the environment only fills in a missing value.
	if cfg.Data.Source == "" {
		cfg.Data.Source = strings.TrimSpace(getenv(EnvDataSource))
	}
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ResolvePath returns explicit when set, otherwise the XDG config file
// ($XDG_CONFIG_HOME/destiny/config.yaml or ~/.config/destiny/config.yaml) if
// it exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// IsValidKeyMode reports whether mode names a supported key mode.
func IsValidKeyMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case KeyModeVim, KeyModeEmacs:
		return true
	}
	return false
}

// ThemeNames returns the configured theme names, sorted.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.UI.Themes))
	for name := range c.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectedTheme returns the palette named by UI.Theme.
func (c Config) SelectedTheme() (ThemeConfig, error) {
	th, ok := c.UI.Themes[c.UI.Theme]
	if !ok {
		return ThemeConfig{}, fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(c.ThemeNames(), ", "))
	}
	return th, nil
}

// LoadTimeout parses Data.Timeout, falling back to the default when unset.
func (c Config) LoadTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Data.Timeout) == "" {
		return settings.DefaultLoadTimeout, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(c.Data.Timeout))
	if err != nil {
		return 0, fmt.Errorf("invalid data.timeout %q: %w", c.Data.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid data.timeout %q: must be positive", c.Data.Timeout)
	}
	return d, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.SelectedTheme(); err != nil {
		errs = append(errs, err)
	}
	if c.UI.KeyMode != "" && !IsValidKeyMode(c.UI.KeyMode) {
		errs = append(errs, fmt.Errorf("invalid ui.key_mode %q (expected %s or %s)", c.UI.KeyMode, KeyModeVim, KeyModeEmacs))
	}
	if _, err := c.LoadTimeout(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NoColorEnabled reports whether color output is disabled by config.
func (c Config) NoColorEnabled() bool {
	return c.UI.NoColor != nil && *c.UI.NoColor
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
