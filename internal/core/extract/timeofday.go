package extract

import (
	"database/sql/driver"
	"fmt"
	"regexp"
)

// TimeOfDay is a wall clock time at minute granularity
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String renders HH:MM:00, the literal Postgres accepts for the time type
func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d:00", t.Hour, t.Minute) }

// Value implements driver.Valuer so a TimeOfDay binds straight into a $n::time slot
func (t TimeOfDay) Value() (driver.Value, error) { return t.String(), nil }

// Valid reports whether hour and minute are in range
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// TimeRange is a pair of clock times within one day
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

var reTimeRange = regexp.MustCompile(
	lb + `(?:с|от)\s+(\d{1,2})[:.](\d{2})\s+(?:до|по)\s+(\d{1,2})[:.](\d{2})(?:$|[^\d])`,
)

// TimeOfDayRange parses "с HH:MM до HH:MM" with a colon or dot separator
// both endpoints must be valid or the match is Invalid
func TimeOfDayRange(text string) Result[TimeRange] {
	m := reTimeRange.FindStringSubmatchIndex(text)
	if m == nil {
		return notFound[TimeRange]()
	}
	tr := TimeRange{
		Start: TimeOfDay{Hour: atoi(text[m[2]:m[3]]), Minute: atoi(text[m[4]:m[5]])},
		End:   TimeOfDay{Hour: atoi(text[m[6]:m[7]]), Minute: atoi(text[m[8]:m[9]])},
	}
	if !tr.Start.Valid() || !tr.End.Valid() {
		return invalid[TimeRange](m[2], m[9])
	}
	return found(tr, m[2], m[9])
}
