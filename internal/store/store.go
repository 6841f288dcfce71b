// Package store provides functionality for storing and retrieving application data.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user and per-project directory searched for data files.
const AppDirName = ".receipt-ledger"

// DefaultCategoriesFile is the keyword override file looked up when none is configured.
const DefaultCategoriesFile = "categories.yaml"

// FindConfigFile looks for a data file in the standard locations: the path
// itself, ./.receipt-ledger, ./config and $HOME/.receipt-ledger. Absolute
// paths are only checked as given.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join(AppDirName, filename),
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, AppDirName, filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// CategoryStore loads keyword overrides for the fixed expense categories.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store reading overrides from categoriesFile.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// LoadCategories loads keyword overrides from the YAML file. A missing file
// yields no overrides. Besides the documented layout
//
//	categories:
//	  - code: "6120"
//	    keywords: [brunch]
//
// a bare list of the same entries and a "lunch: [brunch]" map keyed by code
// or label are accepted.
func (s *CategoryStore) LoadCategories() ([]models.CategoryOverride, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = DefaultCategoriesFile
	}

	filePath, err := FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Categories file not found, using built-in keywords",
				logging.Field{Key: logging.FieldFilePath, Value: filename})
			return []models.CategoryOverride{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		s.logger.Debug("Loaded category overrides",
			logging.Field{Key: logging.FieldFilePath, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(categoriesConfig.Categories)})
		return categoriesConfig.Categories, nil
	}

	var overrides []models.CategoryOverride
	if err := yaml.Unmarshal(data, &overrides); err == nil && len(overrides) > 0 {
		s.logger.Debug("Loaded category overrides from list",
			logging.Field{Key: logging.FieldFilePath, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(overrides)})
		return overrides, nil
	}

	return s.parseKeywordMap(data, filePath)
}

// parseKeywordMap reads the "<code or label>: [keywords]" layout.
func (s *CategoryStore) parseKeywordMap(data []byte, filePath string) ([]models.CategoryOverride, error) {
	var keywordMap map[string][]string
	if err := yaml.Unmarshal(data, &keywordMap); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}

	overrides := make([]models.CategoryOverride, 0, len(keywordMap))
	for key, keywords := range keywordMap {
		code, ok := models.ParseCategory(key)
		if !ok {
			// Left for the classifier to report.
			code = models.CategoryCode(strings.TrimSpace(key))
		}
		overrides = append(overrides, models.CategoryOverride{Code: code, Keywords: keywords})
	}

	s.logger.Debug("Parsed category keyword map",
		logging.Field{Key: logging.FieldFilePath, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(overrides)})
	return overrides, nil
}
