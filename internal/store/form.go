package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultFormFile is the form file used when none is configured.
const DefaultFormFile = "form.yaml"

// FormStore persists the ledger form fields between runs. The file holds bank
// details, so it is written with owner-only permissions.
type FormStore struct {
	FormFile string
	logger   logging.Logger
}

// NewFormStore creates a store for formFile.
func NewFormStore(formFile string, logger logging.Logger) *FormStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &FormStore{
		FormFile: formFile,
		logger:   logger,
	}
}

// Path returns the file the form is read from and written to. An existing
// file in one of the standard locations is preferred; otherwise a relative
// name is placed under $HOME/.receipt-ledger.
func (s *FormStore) Path() string {
	filename := s.FormFile
	if filename == "" {
		filename = DefaultFormFile
	}
	if path, err := FindConfigFile(filename); err == nil {
		return path
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, AppDirName, filename)
	}
	return filepath.Join(AppDirName, filename)
}

// Load reads the saved form. A missing file yields empty fields.
func (s *FormStore) Load() (models.FormFields, error) {
	var form models.FormFields

	filePath := s.Path()
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Form file not found", logging.Field{Key: logging.FieldFilePath, Value: filePath})
			return form, nil
		}
		return form, fmt.Errorf("error reading form file: %w", err)
	}

	if err := yaml.Unmarshal(data, &form); err != nil {
		return form, fmt.Errorf("error parsing form file: %w", err)
	}

	s.logger.Debug("Loaded form fields", logging.Field{Key: logging.FieldFilePath, Value: filePath})
	return form, nil
}

// Save writes the form, creating the parent directory when needed.
func (s *FormStore) Save(form models.FormFields) error {
	filePath := s.Path()

	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(form)
	if err != nil {
		return fmt.Errorf("error marshaling form fields: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("error writing form file: %w", err)
	}

	s.logger.Info("Saved form fields", logging.Field{Key: logging.FieldFilePath, Value: filePath})
	return nil
}
