package scheduling

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestEndTimeFollowsStartTime(t *testing.T) {
	form := NewFormState(date(2024, time.June, 3), nil)

	form = form.Apply(SetStartTime{Time: mustTime(t, "14:00")})
	assert.Equal(t, mustTime(t, "15:00"), form.Draft.EndTime, "end defaults to start + 1h")

	form = form.Apply(SetStartTime{Time: mustTime(t, "09:30")})
	assert.Equal(t, mustTime(t, "10:30"), form.Draft.EndTime, "end keeps following while not explicitly set")

	form = form.Apply(SetEndTime{Time: mustTime(t, "11:00")})
	form = form.Apply(SetStartTime{Time: mustTime(t, "08:00")})
	assert.Equal(t, mustTime(t, "11:00"), form.Draft.EndTime, "explicit end is pinned")
}

func TestPersonalSessionNormalization(t *testing.T) {
	form := NewFormState(date(2024, time.June, 3), nil)
	form = form.Apply(SelectClient{Client: ClientInfo{ID: "client-1", Name: "Dana", DefaultSessionPrice: decimalPtr("80")}})
	require.Equal(t, "client-1", form.Draft.ClientID)
	require.Equal(t, "80", form.Draft.Price)

	form = form.Apply(SetSessionKind{Kind: SessionPersonal})
	assert.Empty(t, form.Draft.ClientID)
	assert.Empty(t, form.Draft.Price)
	assert.False(t, form.Draft.CreatesFinancialRecord)

	t.Run("client selection is ignored while personal", func(t *testing.T) {
		updated := form.Apply(SelectClient{Client: ClientInfo{ID: "client-2", Name: "Eli"}})
		assert.Empty(t, updated.Draft.ClientID)
	})

	t.Run("typed price is ignored while personal", func(t *testing.T) {
		updated := form.Apply(SetPrice{Price: "80"})
		assert.Empty(t, updated.Draft.Price, "personal drafts never carry a price")
	})

	t.Run("leaving personal restores the financial flag", func(t *testing.T) {
		updated := form.Apply(SetSessionKind{Kind: SessionSingle})
		assert.True(t, updated.Draft.CreatesFinancialRecord)
	})
}

func TestClientDefaultPriceFill(t *testing.T) {
	t.Run("default price fills an untouched field", func(t *testing.T) {
		form := NewFormState(date(2024, time.June, 3), nil)
		form = form.Apply(SelectClient{Client: ClientInfo{ID: "c1", Name: "Dana", DefaultSessionPrice: decimalPtr("95.50")}})
		assert.Equal(t, "95.5", form.Draft.Price)
	})

	t.Run("typed price is not overwritten", func(t *testing.T) {
		form := NewFormState(date(2024, time.June, 3), nil)
		form = form.Apply(SetPrice{Price: "120"})
		form = form.Apply(SelectClient{Client: ClientInfo{ID: "c1", Name: "Dana", DefaultSessionPrice: decimalPtr("95.50")}})
		assert.Equal(t, "120", form.Draft.Price)
	})

	t.Run("client without default leaves the price empty", func(t *testing.T) {
		form := NewFormState(date(2024, time.June, 3), nil)
		form = form.Apply(SelectClient{Client: ClientInfo{ID: "c1", Name: "Dana"}})
		assert.Empty(t, form.Draft.Price)
	})
}

func TestLiveConflictWarning(t *testing.T) {
	day := date(2024, time.March, 1)
	booked := []BookedSlot{
		{Date: day, Start: mustTime(t, "09:00"), End: mustTime(t, "10:00"), Label: "Session A"},
	}

	t.Run("warning names the colliding appointment", func(t *testing.T) {
		form := NewFormState(day, booked)
		form = form.Apply(SetStartTime{Time: mustTime(t, "09:30")})
		assert.Contains(t, form.ConflictWarning, "Session A")
		assert.Contains(t, form.ConflictWarning, "09:00-10:00")
	})

	t.Run("warning clears when the time moves", func(t *testing.T) {
		form := NewFormState(day, booked)
		form = form.Apply(SetStartTime{Time: mustTime(t, "09:30")})
		require.NotEmpty(t, form.ConflictWarning)
		form = form.Apply(SetStartTime{Time: mustTime(t, "11:00")})
		assert.Empty(t, form.ConflictWarning)
	})

	t.Run("recurring drafts suppress the live check", func(t *testing.T) {
		form := NewFormState(day, booked)
		form = form.Apply(SetSessionKind{Kind: SessionRecurring})
		form = form.Apply(SetStartTime{Time: mustTime(t, "09:30")})
		assert.Empty(t, form.ConflictWarning)
	})
}

func TestDraftValidation(t *testing.T) {
	validSingle := func(t *testing.T) FormState {
		t.Helper()
		form := NewFormState(date(2024, time.June, 3), nil)
		form = form.Apply(SetStartTime{Time: mustTime(t, "14:00")})
		form = form.Apply(SelectClient{Client: ClientInfo{ID: "c1", Name: "Dana", DefaultSessionPrice: decimalPtr("80")}})
		return form
	}

	assertField := func(t *testing.T, err error, field string) {
		t.Helper()
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, field, vErr.Field)
	}

	t.Run("valid draft passes", func(t *testing.T) {
		assert.NoError(t, validSingle(t).Validate())
	})

	t.Run("client required unless personal", func(t *testing.T) {
		form := NewFormState(date(2024, time.June, 3), nil)
		form = form.Apply(SetStartTime{Time: mustTime(t, "14:00")})
		assertField(t, form.Validate(), "clientId")

		form = form.Apply(SetSessionKind{Kind: SessionPersonal})
		assert.NoError(t, form.Validate())
	})

	t.Run("end must be after start", func(t *testing.T) {
		form := validSingle(t)
		form = form.Apply(SetEndTime{Time: mustTime(t, "13:00")})
		assertField(t, form.Validate(), "endTime")
	})

	t.Run("video link required for remote client sessions", func(t *testing.T) {
		form := validSingle(t)
		form = form.Apply(SetAppointmentKind{Kind: KindRemote})
		assertField(t, form.Validate(), "videoLink")

		form = form.Apply(SetVideoLink{Link: "https://meet.example/room"})
		assert.NoError(t, form.Validate())
	})

	t.Run("recurring requires a recurrence", func(t *testing.T) {
		form := validSingle(t)
		form = form.Apply(SetSessionKind{Kind: SessionRecurring})
		assertField(t, form.Validate(), "recurrence")

		form = form.Apply(SetRecurrence{Recurrence: Recurrence{Cadence: CadenceWeekly, OccurrenceCount: 4}})
		assert.NoError(t, form.Validate())
	})

	t.Run("occurrence count bounds", func(t *testing.T) {
		form := validSingle(t)
		form = form.Apply(SetSessionKind{Kind: SessionRecurring})
		form = form.Apply(SetRecurrence{Recurrence: Recurrence{Cadence: CadenceWeekly, OccurrenceCount: 53}})
		assertField(t, form.Validate(), "recurrence.occurrenceCount")
	})

	t.Run("price required when a financial record is created", func(t *testing.T) {
		form := NewFormState(date(2024, time.June, 3), nil)
		form = form.Apply(SetStartTime{Time: mustTime(t, "14:00")})
		form = form.Apply(SelectClient{Client: ClientInfo{ID: "c1", Name: "Dana"}})
		assertField(t, form.Validate(), "price")

		form = form.Apply(SetCreatesFinancialRecord{Enabled: false})
		assert.NoError(t, form.Validate())
	})

	t.Run("price must parse as a decimal", func(t *testing.T) {
		form := validSingle(t)
		form = form.Apply(SetPrice{Price: "eighty"})
		assertField(t, form.Validate(), "price")
	})
}
