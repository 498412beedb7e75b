package scheduling

import "time"

// BookedSlot is an already-committed appointment reduced to the fields needed
// for overlap comparison. It is read-only as far as this package is concerned.
type BookedSlot struct {
	Date  time.Time `json:"date"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
	Label string    `json:"label"`
}

// Range returns the slot's time range within its day.
func (s BookedSlot) Range() TimeRange {
	return TimeRange{Start: s.Start, End: s.End}
}

// FindConflict returns the first booked slot on the candidate date whose range
// overlaps the candidate range, preserving the input order of slots, or nil if
// no slot overlaps. Slots on other dates never conflict.
func FindConflict(date time.Time, candidate TimeRange, slots []BookedSlot) *BookedSlot {
	for i := range slots {
		if !SameDate(slots[i].Date, date) {
			continue
		}
		if candidate.Overlaps(slots[i].Range()) {
			return &slots[i]
		}
	}
	return nil
}
