package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-scheduler-server/internal/models"
)

func TestMaterializeRecurringSeriesSharesGroupID(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind:            SessionRecurring,
		ClientID:               "c1",
		Date:                   date(2024, time.June, 3),
		StartTime:              mustTime(t, "14:00"),
		EndTime:                mustTime(t, "15:00"),
		AppointmentKind:        KindInPerson,
		Price:                  "80",
		CreatesFinancialRecord: true,
		Recurrence:             &Recurrence{Cadence: CadenceWeekly, OccurrenceCount: 5},
	}
	occurrences, err := Expand(draft.Date, CadenceWeekly, 5)
	require.NoError(t, err)

	appointments, err := Materialize(draft, occurrences, "prac-1", "Dana")
	require.NoError(t, err)
	require.Len(t, appointments, 5)

	groupID := appointments[0].RecurrenceGroupID
	require.NotNil(t, groupID)
	for _, a := range appointments {
		require.NotNil(t, a.RecurrenceGroupID)
		assert.Equal(t, *groupID, *a.RecurrenceGroupID, "every occurrence shares one group id")
		assert.Equal(t, models.StatusScheduled, a.Status)
		assert.Equal(t, "prac-1", a.PractitionerID)
		assert.Equal(t, "Dana", a.Title)
	}
}

func TestMaterializeSingleAppointment(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind:            SessionSingle,
		ClientID:               "c1",
		Date:                   date(2024, time.June, 3),
		StartTime:              mustTime(t, "14:00"),
		EndTime:                mustTime(t, "15:30"),
		AppointmentKind:        KindInPerson,
		Price:                  "95.50",
		CreatesFinancialRecord: true,
	}

	appointments, err := Materialize(draft, []time.Time{draft.Date}, "prac-1", "Dana")
	require.NoError(t, err)
	require.Len(t, appointments, 1)

	a := appointments[0]
	assert.Nil(t, a.RecurrenceGroupID)
	require.NotNil(t, a.ClientID)
	assert.Equal(t, "c1", *a.ClientID)

	// Date and time-of-day combine into absolute instants.
	assert.Equal(t, time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC), a.StartTime)
	assert.Equal(t, time.Date(2024, time.June, 3, 15, 30, 0, 0, time.UTC), a.EndTime)

	require.True(t, a.Price.Valid)
	assert.Equal(t, "95.5", a.Price.Decimal.String())
	assert.True(t, a.CreatesFinancialRecord)
}

func TestMaterializePersonalBlock(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind:     SessionPersonal,
		Date:            date(2024, time.June, 3),
		StartTime:       mustTime(t, "12:00"),
		EndTime:         mustTime(t, "13:00"),
		AppointmentKind: KindInPerson,
	}

	appointments, err := Materialize(draft, []time.Time{draft.Date}, "prac-1", "Lunch")
	require.NoError(t, err)
	require.Len(t, appointments, 1)

	a := appointments[0]
	assert.Nil(t, a.ClientID)
	assert.False(t, a.Price.Valid)
	assert.False(t, a.CreatesFinancialRecord)
	assert.Nil(t, a.RecurrenceGroupID)
}

func TestMaterializeRemoteSessionCarriesVideoLink(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind:     SessionSingle,
		ClientID:        "c1",
		Date:            date(2024, time.June, 3),
		StartTime:       mustTime(t, "14:00"),
		EndTime:         mustTime(t, "15:00"),
		AppointmentKind: KindRemote,
		VideoLink:       "https://meet.example/room",
	}

	appointments, err := Materialize(draft, []time.Time{draft.Date}, "prac-1", "Dana")
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example/room", appointments[0].VideoLink)
}

func TestMaterializeRejectsBadInput(t *testing.T) {
	draft := AppointmentDraft{
		SessionKind: SessionSingle,
		ClientID:    "c1",
		Date:        date(2024, time.June, 3),
		StartTime:   mustTime(t, "14:00"),
		EndTime:     mustTime(t, "15:00"),
		Price:       "eighty",
	}

	_, err := Materialize(draft, []time.Time{draft.Date}, "prac-1", "Dana")
	assert.Error(t, err)

	draft.Price = "80"
	_, err = Materialize(draft, nil, "prac-1", "Dana")
	assert.Error(t, err)
}
