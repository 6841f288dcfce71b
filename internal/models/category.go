package models

import "strings"

// CategoryCode identifies an expense category. The set of codes is fixed and
// is part of the exported ledger format.
type CategoryCode string

// Expense category codes.
const (
	CategoryBreakfast    CategoryCode = "6110"
	CategoryLunch        CategoryCode = "6120"
	CategoryDinner       CategoryCode = "6130"
	CategoryTransport    CategoryCode = "6310"
	CategoryBusinessTrip CategoryCode = "6320"

	// DefaultCategory is assigned when no keyword matches.
	DefaultCategory = CategoryDinner
)

// CategoryDefinition describes one category: its code, display label and the
// filename keywords that select it.
type CategoryDefinition struct {
	Code     CategoryCode
	Label    string
	Keywords []string
}

// CategoryOverride adds keywords to an existing category. It is the YAML shape
// of the optional categories file.
type CategoryOverride struct {
	Code     CategoryCode `yaml:"code"`
	Keywords []string     `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryOverride `yaml:"categories"`
}

// categoryTable is ordered by classification priority. Business trip must come
// before transport and the meals so a trip filename mentioning a taxi or a
// lunch is still filed as a trip.
var categoryTable = []CategoryDefinition{
	{Code: CategoryBusinessTrip, Label: "domestic-business-trip", Keywords: []string{"국내출장", "출장", "business_trip", "businesstrip"}},
	{Code: CategoryTransport, Label: "transport", Keywords: []string{"교통", "택시", "지하철", "버스", "transport", "taxi"}},
	{Code: CategoryBreakfast, Label: "breakfast", Keywords: []string{"조식", "아침", "breakfast"}},
	{Code: CategoryLunch, Label: "lunch", Keywords: []string{"중식", "점심", "lunch"}},
	{Code: CategoryDinner, Label: "dinner", Keywords: []string{"석식", "저녁", "dinner"}},
}

// CategoryDefinitions returns a copy of the category table in priority order.
func CategoryDefinitions() []CategoryDefinition {
	defs := make([]CategoryDefinition, len(categoryTable))
	for i, def := range categoryTable {
		defs[i] = CategoryDefinition{
			Code:     def.Code,
			Label:    def.Label,
			Keywords: append([]string(nil), def.Keywords...),
		}
	}
	return defs
}

// IsValid reports whether c is one of the fixed category codes.
func (c CategoryCode) IsValid() bool {
	for _, def := range categoryTable {
		if def.Code == c {
			return true
		}
	}
	return false
}

// Label returns the display label for c, or the code itself when unknown.
func (c CategoryCode) Label() string {
	for _, def := range categoryTable {
		if def.Code == c {
			return def.Label
		}
	}
	return string(c)
}

// ParseCategory resolves a category code or label, ignoring case and
// surrounding space.
func ParseCategory(s string) (CategoryCode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, def := range categoryTable {
		if string(def.Code) == s || def.Label == s {
			return def.Code, true
		}
	}
	return "", false
}

// IsBusinessTrip reports whether c is the business trip category.
func (c CategoryCode) IsBusinessTrip() bool {
	return c == CategoryBusinessTrip
}

func (c CategoryCode) String() string {
	return string(c)
}
