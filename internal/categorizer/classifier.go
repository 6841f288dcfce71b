// Package categorizer assigns an expense category to a receipt file based on
// keywords found in its filename.
package categorizer

import (
	"strings"

	"github.com/gphunter1004/automation/internal/logging"
	"github.com/gphunter1004/automation/internal/models"
)

// Classifier maps filenames to category codes. The category order is fixed;
// the first category with a keyword contained in the lower-cased filename
// wins. Matching is by substring, so a keyword embedded in an unrelated word
// still matches.
type Classifier struct {
	definitions []models.CategoryDefinition
	logger      logging.Logger
}

// NewClassifier creates a Classifier from the built-in category table, adding
// any keywords supplied by store. A nil store or a failing store leaves the
// built-in table untouched.
func NewClassifier(store CategoryStoreInterface, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	c := &Classifier{
		definitions: models.CategoryDefinitions(),
		logger:      logger,
	}
	for i := range c.definitions {
		c.definitions[i].Keywords = normalizeKeywords(c.definitions[i].Keywords)
	}

	if store != nil {
		c.applyOverrides(store)
	}

	return c
}

func (c *Classifier) applyOverrides(store CategoryStoreInterface) {
	overrides, err := store.LoadCategories()
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load category keyword overrides, using built-in keywords")
		return
	}

	for _, override := range overrides {
		idx := c.indexOf(override.Code)
		if idx < 0 {
			c.logger.Warn("Ignoring keywords for unknown category",
				logging.Field{Key: logging.FieldCategory, Value: override.Code})
			continue
		}
		merged := append(c.definitions[idx].Keywords, override.Keywords...)
		c.definitions[idx].Keywords = normalizeKeywords(merged)
	}

	c.logger.Debug("Applied category keyword overrides",
		logging.Field{Key: logging.FieldCount, Value: len(overrides)})
}

// Classify returns the category code for filename, or models.DefaultCategory
// when no keyword matches.
func (c *Classifier) Classify(filename string) models.CategoryCode {
	code, _, _ := c.Match(filename)
	return code
}

// Match is Classify that also reports the matching keyword.
func (c *Classifier) Match(filename string) (models.CategoryCode, string, bool) {
	lower := strings.ToLower(filename)

	for _, def := range c.definitions {
		for _, keyword := range def.Keywords {
			if strings.Contains(lower, keyword) {
				c.logger.WithFields(
					logging.Field{Key: logging.FieldFileName, Value: filename},
					logging.Field{Key: logging.FieldKeyword, Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: def.Code},
				).Debug("Filename classified by keyword")
				return def.Code, keyword, true
			}
		}
	}

	c.logger.Debug("No category keyword in filename, using default",
		logging.Field{Key: logging.FieldFileName, Value: filename},
		logging.Field{Key: logging.FieldCategory, Value: models.DefaultCategory})
	return models.DefaultCategory, "", false
}

// Definitions returns the effective category table in priority order.
func (c *Classifier) Definitions() []models.CategoryDefinition {
	defs := make([]models.CategoryDefinition, len(c.definitions))
	for i, def := range c.definitions {
		defs[i] = def
		defs[i].Keywords = append([]string(nil), def.Keywords...)
	}
	return defs
}

func (c *Classifier) indexOf(code models.CategoryCode) int {
	for i, def := range c.definitions {
		if def.Code == code {
			return i
		}
	}
	return -1
}

// normalizeKeywords lower-cases, trims and de-duplicates keywords, keeping order.
func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
