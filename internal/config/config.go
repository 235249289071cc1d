package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level pathnotes configuration.
type Config struct {
	RootName string `mapstructure:"root_name"`
	PathTag  string `mapstructure:"path_tag"`
	DBPath   string `mapstructure:"db_path"`
	Device   string `mapstructure:"device"`
	LogLevel string `mapstructure:"log_level"`
	Search   Search `mapstructure:"search"`
	Output   Output `mapstructure:"output"`
}

// Search defines search preferences.
type Search struct {
	Limit int `mapstructure:"limit"`
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
// and returns a Config with all defaults applied. Environment variables
// prefixed with PATHNOTES_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("root_name", DefaultRootName)
	v.SetDefault("path_tag", DefaultPathTag)
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("device", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("search.limit", DefaultSearch.Limit)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
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

	// Blank names fall back to the defaults rather than producing
	// an unnamed root or tag.
	cfg.RootName = orDefault(cfg.RootName, DefaultRootName)
	cfg.PathTag = orDefault(cfg.PathTag, DefaultPathTag)
	cfg.Device = strings.TrimSpace(cfg.Device)
	if cfg.Search.Limit < 0 {
		cfg.Search.Limit = 0
	}

	cfg.DBPath = expandPath(cfg.DBPath)

	return &cfg, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
