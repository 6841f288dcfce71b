package categorizer

import "github.com/gphunter1004/automation/internal/models"

// CategoryStoreInterface supplies optional keyword overrides for the fixed
// categories. This allows for dependency injection and easier testing.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryOverride, error)
}
