package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v3"
)

const (
	ConfigPathEnvVar = "ARGOCD_MIGRATE_CONFIG_PATH" // Environment variable for config path
	EnvPrefix        = "ARGOCD_MIGRATE"             // Prefix for environment overrides

	DefaultOutputDir = "./output"
	DefaultLogLevel  = "info"
)

// Config holds all configuration for the application
type Config struct {
	// Debug enables verbose logging and additional debug information
	Debug bool
	// LogLevel is the zerolog level used when Debug is off
	LogLevel string
	// OutputDir is where parsed applications are written
	OutputDir string
	// Path is the config file that was read, empty when none was used
	Path string

	// ClusterMappings translates destination server URLs into cluster names
	ClusterMappings map[string]string
	// DefaultLabels are added to every parsed application
	DefaultLabels map[string]string
}

// settings are the scalar options resolved through viper
type settings struct {
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	OutputDir string `mapstructure:"output_dir"`
}

// tables are decoded straight from the file. Viper lowercases keys and splits
// them on dots, which would mangle server URLs and label names.
type tables struct {
	ClusterMappings map[string]string `yaml:"clusterMappings"`
	DefaultLabels   map[string]string `yaml:"defaultLabels"`
}

// Load initializes and returns the configuration from all sources:
// 1. Command-line flags (highest priority, applied by the caller)
// 2. Environment variables (prefixed with ARGOCD_MIGRATE_)
// 3. Configuration file (JSON or YAML)
// 4. Defaults
func Load(configPath string) (*Config, error) {
	// Check for environment variable config path if not explicitly provided
	if configPath == "" {
		configPath = os.Getenv(ConfigPathEnvVar)
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace dots with underscores in env vars
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var t tables
	if configPath != "" {
		v.SetConfigFile(configPath)
		// viper picks the parser from the extension; anything else is JSON
		switch strings.ToLower(filepath.Ext(configPath)) {
		case ".json", ".yaml", ".yml":
		default:
			v.SetConfigType("json")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		var err error
		t, err = readTables(configPath)
		if err != nil {
			return nil, err
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &Config{
		Debug:           s.Debug,
		LogLevel:        s.LogLevel,
		OutputDir:       s.OutputDir,
		Path:            configPath,
		ClusterMappings: t.ClusterMappings,
		DefaultLabels:   t.DefaultLabels,
	}, nil
}

// readTables decodes the lookup tables from the config file
func readTables(path string) (tables, error) {
	var t tables
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return t, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("output_dir", DefaultOutputDir)
}
