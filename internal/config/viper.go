// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "LEDGER"

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// UploadConfig bounds what may be added to a collection.
type UploadConfig struct {
	MaxFiles              int      `mapstructure:"max_files" yaml:"max_files"`
	MaxFileSizeMB         int      `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
	SupportedExtensions   []string `mapstructure:"supported_extensions" yaml:"supported_extensions"`
	SupportedContentTypes []string `mapstructure:"supported_content_types" yaml:"supported_content_types"`
}

// CategoriesConfig points at the optional keyword override file.
type CategoriesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// FormConfig points at the persisted form and holds the values used for
// fields left empty.
type FormConfig struct {
	File     string            `mapstructure:"file" yaml:"file"`
	Defaults models.FormFields `mapstructure:"defaults" yaml:"defaults"`
}

// ExportConfig configures ledger export.
type ExportConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Upload     UploadConfig     `mapstructure:"upload" yaml:"upload"`
	Categories CategoriesConfig `mapstructure:"categories" yaml:"categories"`
	Form       FormConfig       `mapstructure:"form" yaml:"form"`
	Export     ExportConfig     `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile loads configuration like InitializeConfig but reads
// configFile instead of searching for config.yaml. Unlike a searched file, an
// explicit file must exist.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Defaults
	setDefaults(v)

	// 2. Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.receipt-ledger")
		v.AddConfigPath(".receipt-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("upload.max_files", validation.DefaultMaxFiles)
	v.SetDefault("upload.max_file_size_mb", validation.DefaultMaxFileSizeMB)
	v.SetDefault("upload.supported_extensions", validation.DefaultExtensions)
	v.SetDefault("upload.supported_content_types", validation.DefaultContentTypes)

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("form.file", "form.yaml")
	// Every key needs a default for AutomaticEnv to see it during Unmarshal.
	for _, key := range models.FormFieldNames {
		v.SetDefault("form.defaults."+key, "")
	}
	v.SetDefault("form.defaults."+models.FormFieldAttrCD, models.DefaultAttrCD)

	v.SetDefault("export.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Upload.MaxFiles < 1 {
		return fmt.Errorf("upload.max_files must be at least 1, got: %d", config.Upload.MaxFiles)
	}

	if config.Upload.MaxFileSizeMB < 1 {
		return fmt.Errorf("upload.max_file_size_mb must be at least 1, got: %d", config.Upload.MaxFileSizeMB)
	}

	if len([]rune(config.Export.Delimiter)) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	return nil
}

// FileRules returns the upload validation rules described by the configuration.
func (c *Config) FileRules() validation.FileRules {
	return validation.NewFileRules(c.Upload.MaxFileSizeMB, c.Upload.SupportedExtensions, c.Upload.SupportedContentTypes)
}

// ExportDelimiter returns the export delimiter as a rune.
func (c *Config) ExportDelimiter() rune {
	return []rune(c.Export.Delimiter)[0]
}

// ConfigureLoggingFromConfig builds the application logger from the configuration.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
