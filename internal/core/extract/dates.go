package extract

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"videobot/internal/core/lexicon"
)

// DateRange is a half-open day interval [Start, End)
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MonthSpan is [first day of month, first day of next month)
type MonthSpan struct {
	Start time.Time
	End   time.Time
}

// Calendar extracts dates, date ranges and month spans using the lexicon month table
type Calendar struct {
	lex *lexicon.Lexicon

	reISO       *regexp.Regexp
	reNumeric   *regexp.Regexp
	reWord      *regexp.Regexp
	reRange     *regexp.Regexp
	reCompact   *regexp.Regexp
	reMonthYear *regexp.Regexp
}

// literal date shapes without capture groups, reused inside the range patterns
const (
	isoShape     = `\d{4}-\d{2}-\d{2}`
	numericShape = `\d{1,2}\.\d{1,2}\.\d{4}`
)

// NewCalendar compiles the date patterns for lex
func NewCalendar(lex *lexicon.Lexicon) *Calendar {
	months := `(?:` + lex.MonthAlt + `)`
	wordShape := `\d{1,2}\s+` + months + `(?:\.\s*|\s+)\d{4}`
	anyDate := `(?:` + isoShape + `|` + numericShape + `|` + wordShape + `)`
	yearTail := `(?:\s+(?:года|год|г\.?))?`

	return &Calendar{
		lex:       lex,
		reISO:     regexp.MustCompile(`(?:^|[^\d])(\d{4})-(\d{2})-(\d{2})(?:$|[^\d])`),
		reNumeric: regexp.MustCompile(`(?:^|[^\d.])(\d{1,2})\.(\d{1,2})\.(\d{4})(?:$|[^\d])`),
		reWord:    regexp.MustCompile(`(?:^|[^\d])(\d{1,2})\s+(` + months + `)(?:\.\s*|\s+)(\d{4})(?:$|[^\d])`),
		reRange: regexp.MustCompile(
			lb + `(?:с|со|от)\s+(` + anyDate + `)` + yearTail + `\s+(?:по|до)\s+(` + anyDate + `)`,
		),
		reCompact: regexp.MustCompile(
			lb + `(?:с|со|от)\s+(\d{1,2})\s+(?:по|до)\s+(\d{1,2})\s+(` + months + `)(?:\.\s*|\s+)(\d{4})(?:$|[^\d])`,
		),
		reMonthYear: regexp.MustCompile(lb + `(` + months + `)(?:\.\s*|\s+)(\d{4})(?:$|[^\d])`),
	}
}

// Dates returns every literal date in text in left to right order, including
// candidates that failed validation
func (c *Calendar) Dates(text string) []Result[time.Time] {
	var out []Result[time.Time]

	for _, m := range c.reISO.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, mkDate(m[2], m[7], atoi(text[m[2]:m[3]]), atoi(text[m[4]:m[5]]), atoi(text[m[6]:m[7]])))
	}
	for _, m := range c.reNumeric.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, mkDate(m[2], m[7], atoi(text[m[6]:m[7]]), atoi(text[m[4]:m[5]]), atoi(text[m[2]:m[3]])))
	}
	for _, m := range c.reWord.FindAllStringSubmatchIndex(text, -1) {
		mon, ok := c.lex.Month(text[m[4]:m[5]])
		if !ok {
			out = append(out, invalid[time.Time](m[2], m[7]))
			continue
		}
		out = append(out, mkDate(m[2], m[7], atoi(text[m[6]:m[7]]), int(mon), atoi(text[m[2]:m[3]])))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Span.Start < out[j].Span.Start })
	return out
}

// Date returns the leftmost literal date; an invalid leftmost candidate yields Invalid
func (c *Calendar) Date(text string) Result[time.Time] {
	all := c.Dates(text)
	if len(all) == 0 {
		return notFound[time.Time]()
	}
	return all[0]
}

// Range parses "с X по Y [включительно]" or the compact "с D1 по D2 MONTH YEAR"
// both endpoints are inclusive in the text; End is advanced one day
func (c *Calendar) Range(text string) Result[DateRange] {
	if m := c.reCompact.FindStringSubmatchIndex(text); m != nil {
		mon, ok := c.lex.Month(text[m[6]:m[7]])
		if !ok {
			return invalid[DateRange](m[2], m[9])
		}
		year := atoi(text[m[8]:m[9]])
		d1, ok1 := civil(year, int(mon), atoi(text[m[2]:m[3]]))
		d2, ok2 := civil(year, int(mon), atoi(text[m[4]:m[5]]))
		return closeRange(d1, d2, ok1 && ok2, m[2], m[9])
	}

	m := c.reRange.FindStringSubmatchIndex(text)
	if m == nil {
		return notFound[DateRange]()
	}
	d1 := c.Date(text[m[2]:m[3]])
	d2 := c.Date(text[m[4]:m[5]])
	return closeRange(d1.Value, d2.Value, d1.OK() && d2.OK(), m[2], m[5])
}

// MonthYear parses "MONTH YYYY" in any accepted spelling
func (c *Calendar) MonthYear(text string) Result[MonthSpan] {
	m := c.reMonthYear.FindStringSubmatchIndex(text)
	if m == nil {
		return notFound[MonthSpan]()
	}
	mon, ok := c.lex.Month(text[m[2]:m[3]])
	year := atoi(text[m[4]:m[5]])
	if !ok || year < 1 {
		return invalid[MonthSpan](m[2], m[5])
	}
	start := time.Date(year, mon, 1, 0, 0, 0, 0, time.UTC)
	// AddDate on the first of a month rolls December into January of year+1
	return found(MonthSpan{Start: start, End: start.AddDate(0, 1, 0)}, m[2], m[5])
}

func closeRange(d1, d2 time.Time, ok bool, start, end int) Result[DateRange] {
	if !ok || d2.Before(d1) {
		return invalid[DateRange](start, end)
	}
	return found(DateRange{Start: d1, End: d2.AddDate(0, 0, 1)}, start, end)
}

func mkDate(start, end, y, m, d int) Result[time.Time] {
	t, ok := civil(y, m, d)
	if !ok {
		return invalid[time.Time](start, end)
	}
	return found(t, start, end)
}

// civil builds a UTC midnight and rejects values time.Date would normalize, like 31 April
func civil(y, m, d int) (time.Time, bool) {
	if y < 1 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
