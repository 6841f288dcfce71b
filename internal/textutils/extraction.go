// Package textutils extracts annotations and amounts from receipt filenames
// and OCR text.
package textutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NameSeparator joins extracted co-payee names.
const NameSeparator = ","

// namePatterns are scanned in order: parentheses, square brackets, curly braces.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(([^)]+)\)`),
	regexp.MustCompile(`\[([^\]]+)\]`),
	regexp.MustCompile(`\{([^}]+)\}`),
}

var amountPattern = regexp.MustCompile(`[0-9,]+`)

// ExtractNames returns the bracketed names in a filename, trimmed,
// de-duplicated in first-seen order and joined with commas. Brackets holding
// only whitespace contribute nothing, so the result never has empty entries.
//
//	ExtractNames("img(Kim)[Lee](Kim).png") == "Kim,Lee"
func ExtractNames(filename string) string {
	var names []string
	seen := make(map[string]struct{})

	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(filename, -1) {
			name := strings.TrimSpace(m[1])
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return strings.Join(names, NameSeparator)
}

// ExtractBusinessPurpose returns the text between the last underscore of a
// filename and its extension, trimmed. It is empty when the filename has no
// underscore or ends with one.
//
//	ExtractBusinessPurpose("trip_2024_Seoul visit.jpg") == "Seoul visit"
func ExtractBusinessPurpose(filename string) string {
	underscore := strings.LastIndex(filename, "_")
	if underscore < 0 || underscore == len(filename)-1 {
		return ""
	}

	end := len(filename)
	if dot := strings.LastIndex(filename, "."); dot > underscore {
		end = dot
	}

	return strings.TrimSpace(filename[underscore+1 : end])
}

// CleanAmount keeps the first run of digits and commas in an OCR amount and
// drops the commas ("32,300 원" becomes "32300"). Text without digits is
// returned unchanged.
func CleanAmount(amountText string) string {
	m := amountPattern.FindString(amountText)
	if m == "" {
		return amountText
	}
	return strings.ReplaceAll(m, ",", "")
}

// ParseAmount converts an OCR amount to a decimal. Text without a usable
// number yields zero.
func ParseAmount(amountText string) decimal.Decimal {
	m := amountPattern.FindString(amountText)
	if m == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ResolveAmount picks the amount of a receipt: the usage amount when it is
// positive, otherwise supply plus VAT. It returns "" when neither is present.
func ResolveAmount(usage, supply, vat string) string {
	if usage != "" && ParseAmount(usage).IsPositive() {
		return usage
	}

	total := ParseAmount(supply).Add(ParseAmount(vat))
	if total.IsPositive() {
		return total.StringFixed(0)
	}
	return ""
}
