package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/smartframe/internal/logging"
)

const (
	settingsFileName = "config"
	settingsFileType = "yaml"
	settingsFileExt  = "config.yaml"
	envPrefix        = "SMARTFRAME"

	// Settings keys.
	settingDataConfig = "data_config"
	settingLogLevel   = "log_level"
	settingSheet      = "sheet"
)

// settingsFile is the structure written to config.yaml.
type settingsFile struct {
	DataConfig string `yaml:"data_config,omitempty"`
	LogLevel   string `yaml:"log_level"`
	Sheet      string `yaml:"sheet,omitempty"`
}

// loadSettings reads config.yaml from the settings directory using Viper.
// A missing config.yaml is not an error. SMARTFRAME_* environment variables
// override file values.
func loadSettings(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(settingLogLevel, logging.DefaultLevel)
	v.SetDefault(settingDataConfig, "")
	v.SetDefault(settingSheet, "")
	v.SetConfigName(settingsFileName)
	v.SetConfigType(settingsFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return v, nil
}

// writeSettingsIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeSettingsIfMissing(path, dataConfig string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat settings file: %w", err)
	}

	data, err := yaml.Marshal(&settingsFile{
		DataConfig: dataConfig,
		LogLevel:   logging.DefaultLevel,
	})
	if err != nil {
		return false, fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create settings directory: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
