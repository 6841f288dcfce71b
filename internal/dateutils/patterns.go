package dateutils

import "regexp"

// dateTimePattern describes one recognised receipt date layout. Group indexes
// of -1 mean the layout carries no such component.
type dateTimePattern struct {
	regex       *regexp.Regexp
	description string
	yearIndex   int
	monthIndex  int
	dayIndex    int
	hourIndex   int
	minuteIndex int
}

// datePatterns is ordered from the most specific, time-qualified layouts to
// the bare date layouts. The first match wins.
var datePatterns = []dateTimePattern{
	{
		regex:       regexp.MustCompile(`(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{1,2}):\s*(\d{1,2}):\s*(\d{1,2})`),
		description: "YYYY. M. D. HH:MM:SS",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: 4, minuteIndex: 5,
	},
	{
		regex:       regexp.MustCompile(`(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})\.\s*(\d{1,2}):\s*(\d{1,2})`),
		description: "YYYY. M. D. HH:MM",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: 4, minuteIndex: 5,
	},
	{
		regex:       regexp.MustCompile(`(\d{4})\.(\d{2})\.(\d{2})(\d{2}):(\d{2})`),
		description: "YYYY.MM.DDHH:MM",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: 4, minuteIndex: 5,
	},
	{
		regex:       regexp.MustCompile(`(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})`),
		description: "YYYY. M. D",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: -1, minuteIndex: -1,
	},
	{
		regex:       regexp.MustCompile(`(\d{4})\.(\d{2})\.(\d{2})`),
		description: "YYYY.MM.DD",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: -1, minuteIndex: -1,
	},
	{
		regex:       regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{2})\s+(?:[I|]\s+)?(\d{1,2}):\s*(\d{1,2})`),
		description: "YY.MM.DD HH:MM",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: 4, minuteIndex: 5,
	},
	{
		regex:       regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{2})(\d{2}):(\d{2})`),
		description: "YY.MM.DDHH:MM",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: 4, minuteIndex: 5,
	},
	{
		regex:       regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{2})$`),
		description: "YY.MM.DD",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: -1, minuteIndex: -1,
	},
	{
		regex:       regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})(?:[\sT]+(\d{2}):(\d{2}))?`),
		description: "YYYY-MM-DD HH:MM",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: 4, minuteIndex: 5,
	},
	{
		regex:       regexp.MustCompile(`(\d{4})/(\d{2})/(\d{2})(?:\s+(\d{2}):(\d{2}))?`),
		description: "YYYY/MM/DD HH:MM",
		yearIndex:   1, monthIndex: 2, dayIndex: 3, hourIndex: 4, minuteIndex: 5,
	},
}

// compactDatePattern detects a value that already is YYYYMMDD.
var compactDatePattern = regexp.MustCompile(`\d{8}`)

// timeOnlyPattern extracts an hour from text that has a time but no date.
type timeOnlyPattern struct {
	regex       *regexp.Regexp
	description string
	afternoon   bool
}

var timeOnlyPatterns = []timeOnlyPattern{
	{regex: regexp.MustCompile(`오전\s*(\d{1,2}):(\d{1,2})`), description: "AM HH:MM"},
	{regex: regexp.MustCompile(`오후\s*(\d{1,2}):(\d{1,2})`), description: "PM HH:MM", afternoon: true},
	{regex: regexp.MustCompile(`(?i)(\d{1,2}):(\d{1,2})\s*PM\b`), description: "HH:MM PM", afternoon: true},
	{regex: regexp.MustCompile(`\b(\d{1,2}):(\d{1,2})(?::\d{1,2})?\b`), description: "HH:MM[:SS]"},
	{regex: regexp.MustCompile(`(\d{1,2})시\s*(\d{1,2})분`), description: "HH시MM분"},
	{regex: regexp.MustCompile(`(\d{1,2})시()`), description: "HH시"},
}
