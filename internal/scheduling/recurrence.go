package scheduling

import (
	"fmt"
	"time"
)

// Cadence is the interval between occurrences of a recurring appointment.
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// MaxOccurrences caps how far a single recurring draft may extend (one year
// of weekly sessions).
const MaxOccurrences = 52

// ParseCadence parses a cadence string.
func ParseCadence(s string) (Cadence, error) {
	switch Cadence(s) {
	case CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return Cadence(s), nil
	}
	return "", fmt.Errorf("invalid cadence %q: expected weekly, biweekly or monthly", s)
}

// Recurrence describes how a recurring draft repeats.
type Recurrence struct {
	Cadence         Cadence `json:"cadence"`
	OccurrenceCount int     `json:"occurrenceCount"`
}

// Expand produces the concrete occurrence dates for a recurrence anchored at
// anchor. The result always has exactly count entries, is strictly increasing,
// and starts with the anchor date itself.
//
// Weekly advances 7 days, biweekly 14. Monthly advances one calendar month
// keeping the anchor's day-of-month; when the target month is shorter the date
// is clamped to the month's last day (Jan 31 -> Feb 28/29), so no occurrence
// is ever skipped.
func Expand(anchor time.Time, cadence Cadence, count int) ([]time.Time, error) {
	if count < 1 || count > MaxOccurrences {
		return nil, fmt.Errorf("occurrence count %d out of range 1-%d", count, MaxOccurrences)
	}

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		switch cadence {
		case CadenceWeekly:
			dates = append(dates, anchor.AddDate(0, 0, 7*i))
		case CadenceBiweekly:
			dates = append(dates, anchor.AddDate(0, 0, 14*i))
		case CadenceMonthly:
			dates = append(dates, addMonthsClamped(anchor, i))
		default:
			return nil, fmt.Errorf("invalid cadence %q", cadence)
		}
	}
	return dates, nil
}

// addMonthsClamped adds months calendar months to t, clamping the day-of-month
// to the last day of the target month instead of letting time.AddDate roll
// Jan 31 + 1 month over into March.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(firstOfTarget); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
