// Package dateutils normalizes the loosely formatted dates found on receipts
// and computes the ledger's derived dates.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date layouts used by the ledger.
const (
	DateLayoutCompact  = "20060102"
	DateLayoutStandard = "2006/01/02"

	// PlaceholderMMDD is returned by FormatToMMDD when no date can be derived.
	PlaceholderMMDD = "MM/DD"

	// PaymentCutoffDay is the last day of a month whose payments fall on the 15th of that same month.
	PaymentCutoffDay = 10
	// PaymentDay is the day of month payments are made.
	PaymentDay = 15
)

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims the input and collapses runs of whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// Normalize converts a receipt date string into YYYYMMDD. Layouts are tried from
// most to least specific; a string already containing eight consecutive digits
// yields those digits. Anything unrecognised is returned unchanged.
//
// Two-digit years are expanded by prefixing "20".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	for _, p := range datePatterns {
		m := p.regex.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return expandYear(m[p.yearIndex]) + pad2(m[p.monthIndex]) + pad2(m[p.dayIndex])
	}

	if m := compactDatePattern.FindString(text); m != "" {
		return m
	}

	return text
}

// FormatToMMDD returns the "MM/DD" fragment of a receipt date, or
// PlaceholderMMDD when the date cannot be normalized.
func FormatToMMDD(text string) string {
	normalized := Normalize(text)
	if !isCompactDate(normalized) {
		return PlaceholderMMDD
	}
	return normalized[4:6] + "/" + normalized[6:8]
}

// CalculatePaymentDate returns the payment date for a ledger prepared at now:
// the 15th of the current month up to the 10th, otherwise the 15th of the next month.
func CalculatePaymentDate(now time.Time) string {
	month := now.Month()
	if now.Day() > PaymentCutoffDay {
		month++
	}
	// time.Date normalizes month 13 into January of the following year.
	return time.Date(now.Year(), month, PaymentDay, 0, 0, 0, 0, now.Location()).Format(DateLayoutCompact)
}

// CurrentYYYYMMDD formats now as YYYYMMDD.
func CurrentYYYYMMDD(now time.Time) string {
	return now.Format(DateLayoutCompact)
}

// ExtractHour returns the hour of day contained in a receipt date/time string,
// or -1 when there is none. Afternoon markers shift 12-hour values.
func ExtractHour(text string) int {
	if text == "" {
		return -1
	}
	afternoon := isAfternoon(text)

	for _, p := range datePatterns {
		if p.hourIndex < 0 {
			continue
		}
		m := p.regex.FindStringSubmatch(text)
		if m == nil || m[p.hourIndex] == "" {
			continue
		}
		if hour, ok := parseHour(m[p.hourIndex], afternoon); ok {
			return hour
		}
	}

	for _, p := range timeOnlyPatterns {
		m := p.regex.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if hour, ok := parseHour(m[1], p.afternoon); ok {
			return hour
		}
	}

	return -1
}

// FormatStandard renders a receipt date/time as "YYYY/MM/DD HH:MM", or
// "YYYY/MM/DD" when no time is present. Time-only input is dated today.
// Unrecognised input is returned unchanged.
func FormatStandard(text string) string {
	return FormatStandardAt(text, time.Now())
}

// FormatStandardAt is FormatStandard with an explicit current time.
func FormatStandardAt(text string, now time.Time) string {
	if text == "" {
		return ""
	}
	cleaned := CleanDateString(text)
	afternoon := isAfternoon(cleaned)

	for _, p := range datePatterns {
		m := p.regex.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(expandYear(m[p.yearIndex]))
		month, _ := strconv.Atoi(m[p.monthIndex])
		day, _ := strconv.Atoi(m[p.dayIndex])
		if !IsValidDate(year, month, day) {
			continue
		}

		result := fmt.Sprintf("%04d/%02d/%02d", year, month, day)
		if p.hourIndex >= 0 && m[p.hourIndex] != "" {
			if hour, ok := parseHour(m[p.hourIndex], afternoon); ok {
				result += fmt.Sprintf(" %02d:%s", hour, minuteOrZero(m[p.minuteIndex]))
			}
		}
		return result
	}

	for _, p := range timeOnlyPatterns {
		m := p.regex.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		if hour, ok := parseHour(m[1], p.afternoon); ok {
			return fmt.Sprintf("%s %02d:%s", now.Format(DateLayoutStandard), hour, minuteOrZero(m[2]))
		}
	}

	return text
}

// IsValidDate reports whether year/month/day form a real calendar date
// between 1900 and 2100.
func IsValidDate(year, month, day int) bool {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}

func expandYear(year string) string {
	if len(year) == 2 {
		return "20" + year
	}
	return year
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func isCompactDate(s string) bool {
	if len(s) < 8 {
		return false
	}
	for _, r := range s[:8] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAfternoon(text string) bool {
	return strings.Contains(text, "오후")
}

func parseHour(s string, afternoon bool) (int, bool) {
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if afternoon && hour < 12 {
		hour += 12
	}
	if hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func minuteOrZero(s string) string {
	if minute, err := strconv.Atoi(s); err == nil && minute >= 0 && minute <= 59 {
		return fmt.Sprintf("%02d", minute)
	}
	return "00"
}
