package store

import (
	"github.com/gphunter1004/automation/internal/models"
)

// MockCategoryStore is a mock implementation of CategoryStore for testing.
type MockCategoryStore struct {
	Overrides           []models.CategoryOverride
	LoadCategoriesError error
	Calls               int
}

// LoadCategories returns the mock overrides.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryOverride, error) {
	m.Calls++
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Overrides, nil
}

// MockFormStore keeps form fields in memory.
type MockFormStore struct {
	Form      models.FormFields
	LoadError error
	SaveError error
	Saved     int
}

// Load returns the stored form.
func (m *MockFormStore) Load() (models.FormFields, error) {
	if m.LoadError != nil {
		return models.FormFields{}, m.LoadError
	}
	return m.Form, nil
}

// Save replaces the stored form.
func (m *MockFormStore) Save(form models.FormFields) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Form = form
	m.Saved++
	return nil
}
