package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRecurringSeries(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind: SessionRecurring,
		ClientID:    "c1",
		Date:        date(2024, time.June, 3),
		StartTime:   mustTime(t, "14:00"),
		EndTime:     mustTime(t, "15:00"),
		Recurrence:  &Recurrence{Cadence: CadenceWeekly, OccurrenceCount: 4},
	}
	booked := []BookedSlot{
		{Date: date(2024, time.June, 17), Start: mustTime(t, "14:30"), End: mustTime(t, "15:00"), Label: "Supervision"},
	}

	resolution, err := Resolve(draft, booked)
	require.NoError(t, err)

	require.Len(t, resolution.Occurrences, 4)
	assert.Equal(t, []time.Time{
		date(2024, time.June, 3),
		date(2024, time.June, 10),
		date(2024, time.June, 17),
		date(2024, time.June, 24),
	}, resolution.Occurrences)

	require.Len(t, resolution.Conflicts, 1)
	assert.True(t, resolution.Conflicts[0].OccurrenceDate.Equal(date(2024, time.June, 17)))
	assert.Equal(t, "Supervision", resolution.Conflicts[0].Slot.Label)
}

func TestResolveSurfacesEveryConflictingOccurrence(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind: SessionRecurring,
		ClientID:    "c1",
		Date:        date(2024, time.June, 3),
		StartTime:   mustTime(t, "10:00"),
		EndTime:     mustTime(t, "11:00"),
		Recurrence:  &Recurrence{Cadence: CadenceWeekly, OccurrenceCount: 3},
	}
	booked := []BookedSlot{
		{Date: date(2024, time.June, 3), Start: mustTime(t, "10:30"), End: mustTime(t, "11:30"), Label: "Intake"},
		{Date: date(2024, time.June, 10), Start: mustTime(t, "09:30"), End: mustTime(t, "10:30"), Label: "Review"},
	}

	resolution, err := Resolve(draft, booked)
	require.NoError(t, err)
	require.Len(t, resolution.Conflicts, 2, "all conflicting occurrences are reported, not just the first")
	assert.Equal(t, "Intake", resolution.Conflicts[0].Slot.Label)
	assert.Equal(t, "Review", resolution.Conflicts[1].Slot.Label)
}

func TestResolveCleanSeries(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind: SessionRecurring,
		ClientID:    "c1",
		Date:        date(2024, time.June, 3),
		StartTime:   mustTime(t, "14:00"),
		EndTime:     mustTime(t, "15:00"),
		Recurrence:  &Recurrence{Cadence: CadenceMonthly, OccurrenceCount: 6},
	}

	resolution, err := Resolve(draft, nil)
	require.NoError(t, err)
	assert.Len(t, resolution.Occurrences, 6)
	assert.Empty(t, resolution.Conflicts)
}
