// Package remark builds the ledger remark (RMK_DC) of a receipt and decides
// whether an existing remark may be regenerated.
package remark

import (
	"strings"

	"github.com/gphunter1004/automation/internal/dateutils"
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/textutils"
)

const (
	// Separator joins the parts of a generated remark.
	Separator = "_"
	// TemporaryMarker prefixes placeholder remarks that are safe to overwrite.
	TemporaryMarker = "temporary-"
	// UnnamedPrefix starts the remark generated before a user name is known.
	UnnamedPrefix = "category: "
)

// JoinNames appends additional names to the user name, comma separated.
func JoinNames(userName, additionalNames string) string {
	additionalNames = strings.TrimSpace(additionalNames)
	if additionalNames == "" {
		return userName
	}
	return userName + textutils.NameSeparator + additionalNames
}

// GenerateDefault returns "MM/DD_<names>_<label>" for a receipt issued on
// issueDate, or "category: <label>" when names is empty. names is the user
// name optionally followed by additional names (see JoinNames).
//
//	GenerateDefault("20250423", "Kim", models.CategoryLunch) == "04/23_Kim_lunch"
func GenerateDefault(issueDate, names string, category models.CategoryCode) string {
	if names == "" {
		return UnnamedPrefix + category.Label()
	}
	return strings.Join([]string{
		dateutils.FormatToMMDD(issueDate),
		names,
		category.Label(),
	}, Separator)
}

// GenerateBusinessTrip returns "<content>_<userName[,additionalNames]>_<purpose>".
// It does not check that content and purpose are present.
func GenerateBusinessTrip(content, userName, additionalNames, purpose string) string {
	return strings.Join([]string{
		content,
		JoinNames(userName, additionalNames),
		purpose,
	}, Separator)
}

// IsAutoGenerated reports whether remark looks like generator output and may
// be overwritten: it contains an underscore and either a slash or
// TemporaryMarker. A hand-typed remark of that shape is misread as generated.
func IsAutoGenerated(remark string) bool {
	if !strings.Contains(remark, Separator) {
		return false
	}
	return strings.Contains(remark, "/") || strings.Contains(remark, TemporaryMarker)
}

// ForFileRecord derives the remark of a pending record. Business trip records
// use the trip layout; every other record uses the default layout with an
// unknown issue date.
func ForFileRecord(rec models.FileRecord, userName string) string {
	if rec.Category.IsBusinessTrip() {
		return GenerateBusinessTrip(rec.BusinessContent, userName, rec.AdditionalNames, rec.Purpose)
	}
	if userName == "" {
		return GenerateDefault("", "", rec.Category)
	}
	return GenerateDefault("", JoinNames(userName, rec.AdditionalNames), rec.Category)
}

// FillDate replaces the leading MM/DD placeholder of a generated remark with
// the date fragment of issueDate. Other remarks, and issue dates that cannot
// be normalized, leave remark unchanged.
func FillDate(remark, issueDate string) string {
	prefix := dateutils.PlaceholderMMDD + Separator
	if !strings.HasPrefix(remark, prefix) {
		return remark
	}
	mmdd := dateutils.FormatToMMDD(issueDate)
	if mmdd == dateutils.PlaceholderMMDD {
		return remark
	}
	return mmdd + remark[len(dateutils.PlaceholderMMDD):]
}
