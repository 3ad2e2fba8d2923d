package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/destiny/internal/config"
)

var configOutput string

// configCmd groups configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect destiny configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the merged configuration (defaults, config file, environment)",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemesList,
}

// loadMergedConfig is prepareRun without the flag overrides that only matter
// for browsing.
func loadMergedConfig() (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyEnv(&cfg, os.Getenv)
	if t := strings.TrimSpace(themeName); t != "" {
		cfg.UI.Theme = t
	}
	return cfg, nil
}

func runConfigGet(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig()
	if err != nil {
		return err
	}
	raw, err := cfg.Marshal()
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(configOutput)) {
	case "", "yaml":
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	case "json":
		var obj map[string]any
		if err := yaml.Unmarshal(raw, &obj); err != nil {
			return fmt.Errorf("failed to decode config for json view: %w", err)
		}
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	default:
		return fmt.Errorf("unsupported config output %q (expected yaml or json)", configOutput)
	}
}

// runThemesList prints the theme names from the merged configuration.
func runThemesList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Available themes (default: %s):\n", cfg.UI.Theme)
	for _, name := range cfg.ThemeNames() {
		fmt.Fprintf(out, " - %s\n", name)
	}
	return nil
}

func init() { //nolint:gochecknoinits
	configGetCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json")
	configCmd.AddCommand(configGetCmd, configThemesCmd)
}
