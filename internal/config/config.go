package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	ResultsetConfigPathEnvVar = "RESULTSET_CONFIG_PATH" // Environment variable for config path

	// DefaultTestsMarker is the path segment separating application code
	// from test code. Snapshot sub-directories mirror whatever comes
	// after it in a caller's path.
	DefaultTestsMarker = "tests"
)

// Config holds all configuration for the application
type Config struct {
	// Debug enables verbose logging and additional debug information
	Debug bool `mapstructure:"debug"`

	// Snapshot configuration
	Snapshot struct {
		// RootDir is the project root. Diagnostic artifacts are written
		// under it and failure banners print caller paths relative to it.
		RootDir string `mapstructure:"root_dir"`
		// TestsMarker is the directory name that anchors fixture
		// discovery inside a caller's absolute path.
		TestsMarker string `mapstructure:"tests_marker"`
		// CommonFixturesDir is an optional shared fixtures tree used by
		// datasets common to several applications.
		CommonFixturesDir string `mapstructure:"common_fixtures_dir"`
		// TempDirName is the directory (relative to RootDir) receiving
		// actual-value dumps on mismatch.
		TempDirName string `mapstructure:"temp_dir_name"`
		// DiffCmdLogName is the append-only log file (relative to
		// RootDir) of suggested diff commands.
		DiffCmdLogName string `mapstructure:"diff_cmd_log_name"`
		// DiffTools are probed on PATH in order; the first match is used
		// when recording a diff command.
		DiffTools []string `mapstructure:"diff_tools"`
	} `mapstructure:"snapshot"`

	// Server configuration for the snapshot review API
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
}

// Load initializes and returns the configuration from all sources:
// 1. Command-line flags (highest priority)
// 2. Environment variables (prefixed with RESULTSET_)
// 3. Configuration file (lowest priority)
func Load(configPath string) (*Config, error) {
	// Check for environment variable config path if not explicitly provided
	if configPath == "" {
		if envPath := os.Getenv(ResultsetConfigPathEnvVar); envPath != "" {
			if _, err := os.Stat(envPath); os.IsNotExist(err) {
				return nil, fmt.Errorf("config file specified in %s not found: %s", ResultsetConfigPathEnvVar, envPath)
			}
			configPath = envPath
		}
	} else {
		// Verify explicitly provided config file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	}
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config.yml in the current directory
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Read environment variables
	v.SetEnvPrefix("RESULTSET")
	v.AutomaticEnv()
	// Replace dots with underscores in env vars
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		} else if configPath != "" {
			// Only error if config file was explicitly specified
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
		// If no config file was specified, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Snapshot.RootDir == "" {
		if wd, err := os.Getwd(); err == nil {
			config.Snapshot.RootDir = wd
		}
	}

	return &config, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Snapshot defaults
	v.SetDefault("snapshot.tests_marker", DefaultTestsMarker)
	v.SetDefault("snapshot.temp_dir_name", ".donotcommit_tmp")
	v.SetDefault("snapshot.diff_cmd_log_name", ".donotcommit_tmp_diff_cmd")
	v.SetDefault("snapshot.diff_tools", []string{"charm", "goland", "meld", "code"})

	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
}
