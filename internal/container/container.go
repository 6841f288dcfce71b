// Package container provides dependency injection for the receipt ledger.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"github.com/gphunter1004/automation/internal/categorizer"
	"github.com/gphunter1004/automation/internal/collection"
	"github.com/gphunter1004/automation/internal/config"
	"github.com/gphunter1004/automation/internal/export"
	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/store"
	"github.com/gphunter1004/automation/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger        logging.Logger
	config        *config.Config
	categoryStore *store.CategoryStore
	formStore     *store.FormStore
	classifier    *categorizer.Classifier
	rules         validation.FileRules
	manager       *collection.Manager
	writer        *export.Writer
}

// NewContainer creates and wires all application dependencies, logging with a
// logger built from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	formStore := store.NewFormStore(cfg.Form.File, logger)

	classifier := categorizer.NewClassifier(categoryStore, logger)
	rules := cfg.FileRules()
	manager := collection.NewManager(classifier, rules, cfg.Upload.MaxFiles, logger)

	delimiter := ','
	if cfg.Export.Delimiter != "" {
		delimiter = cfg.ExportDelimiter()
	}
	writer := export.NewWriter(delimiter, logger)

	logger.Debug("Container initialized",
		logging.Field{Key: "max_files", Value: cfg.Upload.MaxFiles},
		logging.Field{Key: "categories_file", Value: cfg.Categories.File})

	return &Container{
		logger:        logger,
		config:        cfg,
		categoryStore: categoryStore,
		formStore:     formStore,
		classifier:    classifier,
		rules:         rules,
		manager:       manager,
		writer:        writer,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClassifier returns the filename classifier.
func (c *Container) GetClassifier() *categorizer.Classifier {
	return c.classifier
}

// GetCategoryStore returns the keyword override store.
func (c *Container) GetCategoryStore() *store.CategoryStore {
	return c.categoryStore
}

// GetFormStore returns the form field store.
func (c *Container) GetFormStore() *store.FormStore {
	return c.formStore
}

// GetFileRules returns the upload validation rules.
func (c *Container) GetFileRules() validation.FileRules {
	return c.rules
}

// GetManager returns the collection manager.
func (c *Container) GetManager() *collection.Manager {
	return c.manager
}

// GetWriter returns the ledger writer.
func (c *Container) GetWriter() *export.Writer {
	return c.writer
}

// LoadForm returns the saved form with configured defaults filling empty fields.
func (c *Container) LoadForm() (models.FormFields, error) {
	form, err := c.formStore.Load()
	if err != nil {
		return models.FormFields{}, err
	}
	return form.WithDefaults(c.config.Form.Defaults), nil
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
