package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartframe/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var example bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize smartframe settings",
		Long:  "Create the settings directory and a default config.yaml. With --example,\nalso write an example dataset configuration if none exists.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, example)
		},
	}
	cmd.Flags().BoolVar(&example, "example", false, "write an example dataset configuration")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, example bool) error {
	dataConfig, err := a.dataConfigPath()
	if err != nil {
		return err
	}

	// Only an explicit --config is remembered in the settings file.
	remembered := ""
	if a.flags.dataConfig != "" {
		remembered = dataConfig
	}
	settingsPath := filepath.Join(a.configDir, settingsFileExt)
	created, err := writeSettingsIfMissing(settingsPath, remembered)
	if err != nil {
		return sysError(fmt.Errorf("write settings: %w", err))
	}
	if created {
		fmt.Fprintf(out(cmd), "Created %s\n", settingsPath)
	}

	if example {
		if _, err := os.Stat(dataConfig); err == nil {
			fmt.Fprintf(out(cmd), "Kept existing %s\n", dataConfig)
		} else {
			if err := os.MkdirAll(filepath.Dir(dataConfig), 0o755); err != nil {
				return sysError(fmt.Errorf("create directory: %w", err))
			}
			if err := os.WriteFile(dataConfig, []byte(config.ExampleYAML), 0o644); err != nil {
				return sysError(fmt.Errorf("write example config: %w", err))
			}
			fmt.Fprintf(out(cmd), "Created %s\n", dataConfig)
		}
	}

	fmt.Fprintln(out(cmd), "smartframe initialized successfully")
	return nil
}
