package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with an empty home and no
// LEDGER_ variables.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	clearTestEnvVars(t)
	return dir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 10, config.Upload.MaxFiles)
	assert.Equal(t, 50, config.Upload.MaxFileSizeMB)
	assert.Equal(t, validation.DefaultExtensions, config.Upload.SupportedExtensions)
	assert.Equal(t, validation.DefaultContentTypes, config.Upload.SupportedContentTypes)
	assert.Equal(t, "categories.yaml", config.Categories.File)
	assert.Equal(t, "form.yaml", config.Form.File)
	assert.Equal(t, models.FormFields{AttrCD: "8A"}, config.Form.Defaults)
	assert.Equal(t, ",", config.Export.Delimiter)
	assert.Equal(t, ',', config.ExportDelimiter())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	testEnvVars := map[string]string{
		"LEDGER_LOG_LEVEL":                   "debug",
		"LEDGER_LOG_FORMAT":                  "json",
		"LEDGER_UPLOAD_MAX_FILES":            "5",
		"LEDGER_UPLOAD_SUPPORTED_EXTENSIONS": ".png,.pdf",
		"LEDGER_FORM_DEFAULTS_DEPT_CD":       "D100",
		"LEDGER_EXPORT_DELIMITER":            ";",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 5, config.Upload.MaxFiles)
	assert.Equal(t, []string{".png", ".pdf"}, config.Upload.SupportedExtensions)
	assert.Equal(t, "D100", config.Form.Defaults.DeptCD)
	assert.Equal(t, "8A", config.Form.Defaults.AttrCD)
	assert.Equal(t, ';', config.ExportDelimiter())
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	dir := isolate(t)

	configContent := `
log:
  level: "warn"
upload:
  max_files: 3
  max_file_size_mb: 5
categories:
  file: "keywords.yaml"
form:
  defaults:
    attr_cd: "9B"
    bank_cd: "088"
export:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, 3, config.Upload.MaxFiles)
	assert.Equal(t, 5, config.Upload.MaxFileSizeMB)
	assert.Equal(t, "keywords.yaml", config.Categories.File)
	assert.Equal(t, "9B", config.Form.Defaults.AttrCD)
	assert.Equal(t, "088", config.Form.Defaults.BankCD)
	assert.Equal(t, "|", config.Export.Delimiter)

	rules := config.FileRules()
	assert.False(t, rules.IsValidSize(models.SourceFile{Name: "a.jpg", Size: 6 * 1024 * 1024}))
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	dir := isolate(t)

	configContent := `
log:
  level: "warn"
export:
  delimiter: "|"
upload:
  max_files: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	t.Setenv("LEDGER_LOG_LEVEL", "error")
	t.Setenv("LEDGER_UPLOAD_MAX_FILES", "7")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)    // env var wins
	assert.Equal(t, "|", config.Export.Delimiter) // config file value
	assert.Equal(t, 7, config.Upload.MaxFiles)    // env var wins
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := isolate(t)

	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("log:\n  format: json\n"), 0600))

	config, err := InitializeConfigFromFile(file)
	require.NoError(t, err)
	assert.Equal(t, "json", config.Log.Format)

	_, err = InitializeConfigFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("LEDGER_EXPORT_DELIMITER", ";;")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "zero max files",
			modifyConfig: func(c *Config) { c.Upload.MaxFiles = 0 },
			expectError:  "upload.max_files must be at least 1",
		},
		{
			name:         "zero max size",
			modifyConfig: func(c *Config) { c.Upload.MaxFileSizeMB = 0 },
			expectError:  "upload.max_file_size_mb must be at least 1",
		},
		{
			name:         "long delimiter",
			modifyConfig: func(c *Config) { c.Export.Delimiter = "abc" },
			expectError:  "export delimiter must be a single character",
		},
		{
			name:         "empty delimiter",
			modifyConfig: func(c *Config) { c.Export.Delimiter = "" },
			expectError:  "export delimiter must be a single character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{
				Log:    LogConfig{Level: "info", Format: "text"},
				Upload: UploadConfig{MaxFiles: 10, MaxFileSizeMB: 50},
				Export: ExportConfig{Delimiter: ","},
			}
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		logger := ConfigureLoggingFromConfig(&Config{Log: LogConfig{Level: "debug", Format: format}})
		assert.NotNil(t, logger, format)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := isolate(t)

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LEDGER_LOG_LEVEL=debug\n"), 0600))
	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "debug", os.Getenv("LEDGER_LOG_LEVEL"))
}

// clearTestEnvVars unsets every LEDGER_ variable for the duration of the test.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LEDGER_LOG_LEVEL",
		"LEDGER_LOG_FORMAT",
		"LEDGER_UPLOAD_MAX_FILES",
		"LEDGER_UPLOAD_MAX_FILE_SIZE_MB",
		"LEDGER_UPLOAD_SUPPORTED_EXTENSIONS",
		"LEDGER_UPLOAD_SUPPORTED_CONTENT_TYPES",
		"LEDGER_CATEGORIES_FILE",
		"LEDGER_FORM_FILE",
		"LEDGER_FORM_DEFAULTS_USER_NAME",
		"LEDGER_FORM_DEFAULTS_ATTR_CD",
		"LEDGER_FORM_DEFAULTS_DEPOSITOR_DC",
		"LEDGER_FORM_DEFAULTS_DEPT_CD",
		"LEDGER_FORM_DEFAULTS_EMP_CD",
		"LEDGER_FORM_DEFAULTS_BANK_CD",
		"LEDGER_FORM_DEFAULTS_BA_NB",
		"LEDGER_EXPORT_DELIMITER",
	} {
		// Setenv registers the restore; Unsetenv makes the variable absent.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
