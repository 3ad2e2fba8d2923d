package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "Diamond Destiny", cfg.App.Name)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, KeyModeVim, cfg.UI.KeyMode)
	assert.Equal(t, []string{"dark", "gold", "light"}, cfg.ThemeNames())
	assert.NotEmpty(t, cfg.App.About.Paragraphs)
	assert.NotEmpty(t, cfg.App.Contact.Channels)
	require.NoError(t, cfg.Validate())

	d, err := cfg.LoadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestDefaultYAMLIsACopy(t *testing.T) {
	a := DefaultYAML()
	require.NotEmpty(t, a)
	a[0] = 'X'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}

func TestLoadMergesUserFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
app:
  name: Stone Room
data:
  source: https://example.com/diamonds.json
  timeout: 5s
ui:
  theme: ocean
  key_mode: emacs
  themes:
    dark:
      accent: "#ff00ff"
    ocean:
      accent: 33
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Stone Room", cfg.App.Name)
	assert.Equal(t, "Precision-Curated Diamond Portfolio", cfg.App.Tagline, "unset keys keep defaults")
	assert.Equal(t, "https://example.com/diamonds.json", cfg.Data.Source)
	assert.Equal(t, KeyModeEmacs, cfg.UI.KeyMode)

	dark := cfg.UI.Themes["dark"]
	assert.Equal(t, ColorValue("#ff00ff"), dark.Accent)
	assert.Equal(t, ColorValue("252"), dark.Text, "other colors survive a partial theme")

	ocean, err := cfg.SelectedTheme()
	require.NoError(t, err)
	assert.Equal(t, ColorValue("33"), ocean.Accent)
	assert.Equal(t, ColorValue("236"), ocean.HeaderBG, "new themes start from the default theme")

	d, err := cfg.LoadTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "bad.yaml", "ui: [unterminated")
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config file")
}

func TestValidate(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	cfg.UI.Theme = "neon"
	cfg.UI.KeyMode = "nano"
	cfg.Data.Timeout = "-3s"
	err = cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `unknown theme "neon"`)
	assert.Contains(t, msg, "dark, gold, light")
	assert.Contains(t, msg, `invalid ui.key_mode "nano"`)
	assert.Contains(t, msg, "must be positive")

	cfg.Data.Timeout = "soon"
	_, err = cfg.LoadTimeout()
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	env := map[string]string{
		EnvDataSource: " ./stock.json ",
		EnvTheme:      "light",
		EnvKeyMode:    "bogus",
	}
	ApplyEnv(&cfg, func(k string) string { return env[k] })
	assert.Equal(t, "./stock.json", cfg.Data.Source)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, KeyModeVim, cfg.UI.KeyMode, "invalid key modes are ignored")

	cfg.Data.Source = "from-config.json"
	ApplyEnv(&cfg, func(k string) string { return env[k] })
	assert.Equal(t, "from-config.json", cfg.Data.Source, "config source wins over env")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	p := writeFile(t, ".env", "DESTINY_TEST_DOTENV=from-file\n")
	t.Setenv("DESTINY_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("DESTINY_TEST_DOTENV"))
	require.NoError(t, LoadDotEnv(p))
	assert.Equal(t, "from-file", os.Getenv("DESTINY_TEST_DOTENV"))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"))

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Equal(t, "", ResolvePath(""))

	dir := filepath.Join(xdg, "destiny")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	want := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(want, []byte("ui: {}\n"), 0o600))
	assert.Equal(t, want, ResolvePath(""))
}

func TestIsValidKeyMode(t *testing.T) {
	assert.True(t, IsValidKeyMode("vim"))
	assert.True(t, IsValidKeyMode(" Emacs "))
	assert.False(t, IsValidKeyMode(""))
	assert.False(t, IsValidKeyMode("helix"))
}

func TestMarshalKeepsNumericColorsAsInts(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "accent: 81"), "numeric colors are unquoted")

	var round Config
	require.NoError(t, yaml.Unmarshal(out, &round))
	assert.Equal(t, cfg.UI.Themes, round.UI.Themes)
}

func TestNoColorEnabled(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.False(t, cfg.NoColorEnabled())
	yes := true
	cfg = Merge(cfg, Config{UI: UIConfig{NoColor: &yes}})
	assert.True(t, cfg.NoColorEnabled())
}
