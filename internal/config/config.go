package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level devclean configuration.
type Config struct {
	ScanRoot      string `mapstructure:"scan_root"`
	Workers       int    `mapstructure:"workers"`
	AI            AI     `mapstructure:"ai"`
	Output        Output `mapstructure:"output"`
	QuarantineDir string `mapstructure:"quarantine_dir"`
}

// AI configures the optional external classifier.
type AI struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
	Workers int    `mapstructure:"workers"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("scan_root", DefaultScanRoot)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", DefaultModel)
	v.SetDefault("ai.workers", DefaultAIWorkers)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("quarantine_dir", filepath.Join(DefaultConfigDir, "quarantine"))

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Missing config file is not an error; devclean runs on defaults.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ScanRoot = expandPath(cfg.ScanRoot)
	cfg.QuarantineDir = expandPath(cfg.QuarantineDir)

	return &cfg, nil
}

// DBPath returns the full path to the SQLite history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
