package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartframe/internal/config"
	"github.com/mesh-intelligence/smartframe/internal/paths"
	"github.com/mesh-intelligence/smartframe/internal/session"
	"github.com/mesh-intelligence/smartframe/pkg/frame"
	"github.com/mesh-intelligence/smartframe/pkg/types"
)

// dataConfigPath resolves the dataset configuration file from the --config
// flag, the environment and the settings file.
func (a *app) dataConfigPath() (string, error) {
	path, err := paths.ResolveDataConfig(a.flags.dataConfig, a.settings.GetString(settingDataConfig))
	if err != nil {
		return "", sysError(fmt.Errorf("resolve dataset config: %w", err))
	}
	return path, nil
}

// loadDataConfig loads and validates the dataset configuration. Every
// failure is a user error.
func (a *app) loadDataConfig() (*types.DataConfig, error) {
	path, err := a.dataConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, userError(err)
	}
	a.logger.Debug("dataset config loaded")
	return cfg, nil
}

func (a *app) sheet() string {
	if a.flags.sheet != "" {
		return a.flags.sheet
	}
	return a.settings.GetString(settingSheet)
}

// loadFrame reads a CSV or XLSX dataset.
func (a *app) loadFrame(path string) (*frame.Frame, error) {
	f, err := frame.ReadFile(path, a.sheet())
	if err != nil {
		// Missing files and unsupported extensions already name the path.
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, frame.ErrUnsupportedFormat) {
			return nil, userError(err)
		}
		return nil, userError(fmt.Errorf("read %s: %w", path, err))
	}
	return f, nil
}

// openSession loads the dataset configuration and the dataset at path and
// binds them in a Session.
func (a *app) openSession(path string) (*session.Session, error) {
	cfg, err := a.loadDataConfig()
	if err != nil {
		return nil, err
	}
	f, err := a.loadFrame(path)
	if err != nil {
		return nil, err
	}
	return session.New(cfg, f, session.WithLogger(a.logger)), nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// out returns the command's standard output.
func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
