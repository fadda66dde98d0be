// Package cli implements the smartframe command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartframe/internal/logging"
	"github.com/mesh-intelligence/smartframe/internal/paths"
	"github.com/mesh-intelligence/smartframe/pkg/smartframe"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir  string
	dataConfig string
	sheet      string
	jsonMode   bool
	verbose    bool
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	settings  *viper.Viper
	logger    *zap.Logger
}

// NewRootCmd creates the top-level "smartframe" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "smartframe",
		Short:   "Column roles and dataset state for ML pipelines",
		Long:    "Smartframe tags dataset columns with their ML roles, infers whether a dataset\nis raw or processed and used for training or inference, and validates it\nagainst the schema of that state.",
		Version: smartframe.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "settings directory (default: platform config dir)")
	root.PersistentFlags().StringVarP(&a.flags.dataConfig, "config", "c", "", "dataset configuration file (default: $(CWD)/smartframe.yaml)")
	root.PersistentFlags().StringVar(&a.flags.sheet, "sheet", "", "worksheet to read from xlsx files (default: first sheet)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newStateCmd(a))
	root.AddCommand(newColumnsCmd(a))
	root.AddCommand(newSchemaCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newWatchCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err == nil {
		os.Exit(exitSuccess)
	}
	fmt.Fprintln(os.Stderr, "smartframe:", err)
	os.Exit(exitCode(err))
}

// setup loads .env, the settings file and the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return sysError(fmt.Errorf("load .env: %w", err))
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	settings, err := loadSettings(configDir)
	if err != nil {
		return userError(err)
	}
	a.settings = settings

	level := settings.GetString(settingLogLevel)
	if a.flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, a.flags.verbose)
	if err != nil {
		return userError(err)
	}
	a.logger = logger
	return nil
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps a command error to an exit code. Errors without an explicit
// code, such as cobra's argument errors, are user errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
