package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaced date with seconds", "2025. 4. 23. 18: 21:56", "20250423"},
		{"spaced date with minutes", "2025. 4. 3. 9: 05", "20250403"},
		{"spaced date only", "2025. 12. 1", "20251201"},
		{"dotted date", "2025.04.23", "20250423"},
		{"dotted date glued to time", "2025.04.2318:21:56", "20250423"},
		{"short year with time", "25.04.23 18:21", "20250423"},
		{"short year with bar separator", "25.04.23 I 18:21:02", "20250423"},
		{"short year glued to time", "25.04.2318:21", "20250423"},
		{"short year only", "25.04.23", "20250423"},
		{"iso date", "2025-04-23 18:21:56", "20250423"},
		{"slash date", "2025/04/23", "20250423"},
		{"already compact", "20250423", "20250423"},
		{"compact inside text", "issued 20250423 at store", "20250423"},
		{"unrecognised", "not a date", "not a date"},
		{"short year not anchored", "x25.04.23", "x25.04.23"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestFormatToMMDD(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"20250423", "04/23"},
		{"2025. 4. 3", "04/03"},
		{"25.12.31", "12/31"},
		{"", PlaceholderMMDD},
		{"not a date", PlaceholderMMDD},
		{"1234", PlaceholderMMDD},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatToMMDD(tt.input))
		})
	}
}

func TestCalculatePaymentDate(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{"first day", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC), "20250415"},
		{"cutoff day", time.Date(2025, 4, 10, 23, 59, 0, 0, time.UTC), "20250415"},
		{"after cutoff", time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC), "20250515"},
		{"end of month", time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC), "20250215"},
		{"december rolls year", time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC), "20260115"},
		{"december before cutoff", time.Date(2025, 12, 5, 12, 0, 0, 0, time.UTC), "20251215"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculatePaymentDate(tt.now))
		})
	}
}

func TestCurrentYYYYMMDD(t *testing.T) {
	assert.Equal(t, "20250907", CurrentYYYYMMDD(time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)))
}

func TestExtractHour(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"spaced date time", "2025. 4. 23. 18: 21:56", 18},
		{"glued date time", "2025.04.2307:15:00", 7},
		{"short year time", "25.04.23 12:30", 12},
		{"iso time", "2025-04-23 21:05", 21},
		{"time only", "13:45", 13},
		{"korean afternoon", "오후 6:30", 18},
		{"english afternoon", "6:30 PM", 18},
		{"korean morning", "오전 8:10", 8},
		{"korean hour", "9시 20분", 9},
		{"date without time", "2025.04.23", -1},
		{"invalid hour", "25:61", -1},
		{"empty", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractHour(tt.input))
		})
	}
}

func TestFormatStandardAt(t *testing.T) {
	now := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"date and time", "2025. 4. 23. 18: 21:56", "2025/04/23 18:21"},
		{"date only", "25.04.23", "2025/04/23"},
		{"iso without time", "2025-04-23", "2025/04/23"},
		{"afternoon marker", "2025. 4. 23. 오후 6: 05", "2025/04/23"},
		{"time only uses today", "14:07", "2025/05/02 14:07"},
		{"invalid calendar date", "2025.02.30", "2025.02.30"},
		{"unrecognised", "hello", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatStandardAt(tt.input, now))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate(2024, 2, 29))
	assert.False(t, IsValidDate(2025, 2, 29))
	assert.False(t, IsValidDate(2025, 4, 31))
	assert.False(t, IsValidDate(1800, 1, 1))
	assert.False(t, IsValidDate(2025, 13, 1))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "2025. 4. 23", CleanDateString("  2025.   4.\t23 "))
}
