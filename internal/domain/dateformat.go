package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultDailyNoteFormat is the daily note naming pattern used when none is configured.
const DefaultDailyNoteFormat = "YYYY-MM-DD"

type dateField int

const (
	fieldIgnored dateField = iota
	fieldYear4
	fieldYear2
	fieldMonthName
	fieldMonthAbbr
	fieldMonth
	fieldDayOfYear
	fieldDay
	fieldWeekdayName
	fieldWeekdayAbbr
	fieldWeekdayMin
	fieldWeekdayNum
)

type formatToken struct {
	text  string
	expr  string
	field dateField
}

// formatTokens lists the supported moment tokens, longest first within each family.
var formatTokens = []formatToken{
	{"YYYY", `(\d{4})`, fieldYear4},
	{"YY", `(\d{2})`, fieldYear2},
	{"MMMM", `([A-Za-z]+)`, fieldMonthName},
	{"MMM", `([A-Za-z]{3})`, fieldMonthAbbr},
	{"MM", `(\d{2})`, fieldMonth},
	{"M", `(\d{1,2})`, fieldMonth},
	{"DDDD", `(\d{3})`, fieldDayOfYear},
	{"DDD", `(\d{1,3})`, fieldDayOfYear},
	{"Do", `(\d{1,2})(?:st|nd|rd|th)`, fieldDay},
	{"DD", `(\d{2})`, fieldDay},
	{"D", `(\d{1,2})`, fieldDay},
	{"dddd", `([A-Za-z]+)`, fieldWeekdayName},
	{"ddd", `([A-Za-z]{3})`, fieldWeekdayAbbr},
	{"dd", `([A-Za-z]{2})`, fieldWeekdayMin},
	{"d", `([0-6])`, fieldWeekdayNum},
	{"HH", `(\d{2})`, fieldIgnored},
	{"H", `(\d{1,2})`, fieldIgnored},
	{"hh", `(\d{2})`, fieldIgnored},
	{"h", `(\d{1,2})`, fieldIgnored},
	{"mm", `(\d{2})`, fieldIgnored},
	{"m", `(\d{1,2})`, fieldIgnored},
	{"ss", `(\d{2})`, fieldIgnored},
	{"s", `(\d{1,2})`, fieldIgnored},
	{"A", `([AaPp][Mm])`, fieldIgnored},
	{"a", `([AaPp][Mm])`, fieldIgnored},
}

// unsupportedTokens cannot be mapped onto a calendar day without extra context.
var unsupportedTokens = []string{"gggg", "GGGG", "ww", "WW", "w", "W", "Q", "X", "x"}

// DateFormat is a compiled moment-style date pattern such as "YYYY-MM-DD".
// Parsing is strict: the whole input must match the pattern.
type DateFormat struct {
	re      *regexp.Regexp
	pattern string
	fields  []dateField
}

// CompileDateFormat compiles a moment-style pattern.
// Text inside [brackets] is literal. The pattern must contain a year token.
func CompileDateFormat(pattern string) (*DateFormat, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidDateFormat)
	}

	var expr strings.Builder
	var fields []dateField
	hasYear := false

	expr.WriteString("^")
	rest := pattern
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated literal in %q", ErrInvalidDateFormat, pattern)
			}
			expr.WriteString(regexp.QuoteMeta(rest[1:end]))
			rest = rest[end+1:]
			continue
		}

		if tok, ok := matchFormatToken(rest); ok {
			expr.WriteString(tok.expr)
			fields = append(fields, tok.field)
			if tok.field == fieldYear4 || tok.field == fieldYear2 {
				hasYear = true
			}
			rest = rest[len(tok.text):]
			continue
		}

		for _, u := range unsupportedTokens {
			if strings.HasPrefix(rest, u) {
				return nil, fmt.Errorf("%w: token %q is not supported", ErrInvalidDateFormat, u)
			}
		}

		r := []rune(rest)[0]
		expr.WriteString(regexp.QuoteMeta(string(r)))
		rest = rest[len(string(r)):]
	}
	expr.WriteString("$")

	if !hasYear {
		return nil, fmt.Errorf("%w: %q has no year token", ErrInvalidDateFormat, pattern)
	}

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	return &DateFormat{re: re, pattern: pattern, fields: fields}, nil
}

func matchFormatToken(s string) (formatToken, bool) {
	for _, tok := range formatTokens {
		if strings.HasPrefix(s, tok.text) {
			return tok, true
		}
	}
	return formatToken{}, false
}

// Pattern returns the source pattern.
func (f *DateFormat) Pattern() string {
	return f.pattern
}

// Parse parses s strictly against the pattern.
func (f *DateFormat) Parse(s string) (Date, error) {
	m := f.re.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q does not match %q", ErrInvalidDate, s, f.pattern)
	}

	year, month, day, yday := 0, 1, 1, 0
	weekday := time.Weekday(-1)
	for i, field := range f.fields {
		v := m[i+1]
		switch field {
		case fieldYear4:
			year, _ = strconv.Atoi(v)
		case fieldYear2:
			n, _ := strconv.Atoi(v)
			// moment maps two-digit years 69-99 to the 1900s
			if n > 68 {
				year = 1900 + n
			} else {
				year = 2000 + n
			}
		case fieldMonth:
			month, _ = strconv.Atoi(v)
		case fieldMonthName, fieldMonthAbbr:
			mo, ok := lookupMonth(v, field == fieldMonthAbbr)
			if !ok {
				return Date{}, fmt.Errorf("%w: unknown month %q", ErrInvalidDate, v)
			}
			month = int(mo)
		case fieldDay:
			day, _ = strconv.Atoi(v)
		case fieldDayOfYear:
			yday, _ = strconv.Atoi(v)
		case fieldWeekdayName, fieldWeekdayAbbr, fieldWeekdayMin:
			wd, ok := lookupWeekday(v, field)
			if !ok {
				return Date{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidDate, v)
			}
			weekday = wd
		case fieldWeekdayNum:
			n, _ := strconv.Atoi(v)
			weekday = time.Weekday(n)
		case fieldIgnored:
		}
	}

	var d Date
	if yday > 0 {
		if yday > daysInYear(year) {
			return Date{}, fmt.Errorf("%w: day %d out of range for %d", ErrInvalidDate, yday, year)
		}
		d = NewDate(year, time.January, 1).AddDays(yday - 1)
	} else {
		if month < 1 || month > 12 {
			return Date{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
		}
		if day < 1 || day > daysIn(time.Month(month), year) {
			return Date{}, fmt.Errorf("%w: day %d out of range", ErrInvalidDate, day)
		}
		d = NewDate(year, time.Month(month), day)
	}

	if weekday >= 0 && d.Time().Weekday() != weekday {
		return Date{}, fmt.Errorf("%w: %s is not a %s", ErrInvalidDate, d, weekday)
	}
	return d, nil
}

func lookupMonth(s string, abbr bool) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if abbr {
			name = name[:3]
		}
		if strings.EqualFold(name, s) {
			return m, true
		}
	}
	return 0, false
}

func lookupWeekday(s string, field dateField) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		switch field {
		case fieldWeekdayAbbr:
			name = name[:3]
		case fieldWeekdayMin:
			name = name[:2]
		}
		if strings.EqualFold(name, s) {
			return wd, true
		}
	}
	return 0, false
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	if daysIn(time.February, year) == 29 {
		return 366
	}
	return 365
}
