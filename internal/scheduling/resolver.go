package scheduling

import "time"

// RecurrenceConflict pairs an occurrence date of a recurring draft with the
// already-booked slot it collides with.
type RecurrenceConflict struct {
	OccurrenceDate time.Time  `json:"occurrenceDate"`
	Slot           BookedSlot `json:"conflictingSlot"`
}

// Resolution is the confirmation payload for a recurring draft: the full
// occurrence list plus every occurrence that collides with an existing
// booking. Conflicts are advisory; the caller must obtain explicit approval
// before materializing, but an approved draft may double-book.
type Resolution struct {
	Occurrences []time.Time          `json:"occurrences"`
	Conflicts   []RecurrenceConflict `json:"conflicts"`
}

// Resolve expands a validated recurring draft into its occurrence dates and
// checks each one against the booked-slot snapshot. Unlike the live
// single-slot warning, every conflicting occurrence across the series is
// surfaced, at most one colliding slot per occurrence.
func Resolve(draft AppointmentDraft, slots []BookedSlot) (Resolution, error) {
	occurrences, err := Expand(draft.Date, draft.Recurrence.Cadence, draft.Recurrence.OccurrenceCount)
	if err != nil {
		return Resolution{}, err
	}

	resolution := Resolution{Occurrences: occurrences}
	for _, date := range occurrences {
		if slot := FindConflict(date, draft.Range(), slots); slot != nil {
			resolution.Conflicts = append(resolution.Conflicts, RecurrenceConflict{
				OccurrenceDate: date,
				Slot:           *slot,
			})
		}
	}
	return resolution, nil
}
