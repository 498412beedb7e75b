package scheduling

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionKind distinguishes how a draft books time on the calendar.
type SessionKind string

const (
	SessionSingle    SessionKind = "single"
	SessionRecurring SessionKind = "recurring"
	// SessionPersonal blocks time for the practitioner themselves: no client,
	// no billing.
	SessionPersonal SessionKind = "personal"
)

// ParseSessionKind parses a session kind string.
func ParseSessionKind(s string) (SessionKind, error) {
	switch SessionKind(s) {
	case SessionSingle, SessionRecurring, SessionPersonal:
		return SessionKind(s), nil
	}
	return "", fmt.Errorf("invalid session kind %q: expected single, recurring or personal", s)
}

// AppointmentKind distinguishes in-person sessions from remote ones.
type AppointmentKind string

const (
	KindInPerson AppointmentKind = "in_person"
	KindRemote   AppointmentKind = "remote"
)

// ParseAppointmentKind parses an appointment kind string.
func ParseAppointmentKind(s string) (AppointmentKind, error) {
	switch AppointmentKind(s) {
	case KindInPerson, KindRemote:
		return AppointmentKind(s), nil
	}
	return "", fmt.Errorf("invalid appointment kind %q: expected in_person or remote", s)
}

// ClientInfo is the slice of a client record the booking form needs: identity
// plus the stored default session price used for the price auto-fill.
type ClientInfo struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	DefaultSessionPrice *decimal.Decimal `json:"defaultSessionPrice,omitempty"`
}

// AppointmentDraft is the in-progress booking being edited on the form. It is
// never persisted directly; Materialize turns an approved draft into
// appointment records.
type AppointmentDraft struct {
	SessionKind            SessionKind     `json:"sessionKind"`
	ClientID               string          `json:"clientId,omitempty"`
	Date                   time.Time       `json:"date"`
	StartTime              TimeOfDay       `json:"startTime"`
	EndTime                TimeOfDay       `json:"endTime"`
	AppointmentKind        AppointmentKind `json:"appointmentKind"`
	VideoLink              string          `json:"videoLink,omitempty"`
	Price                  string          `json:"price,omitempty"`
	CreatesFinancialRecord bool            `json:"createsFinancialRecord"`
	Recurrence             *Recurrence     `json:"recurrence,omitempty"`
}

// Range returns the draft's [StartTime, EndTime) range.
func (d AppointmentDraft) Range() TimeRange {
	return TimeRange{Start: d.StartTime, End: d.EndTime}
}

// FormState holds the draft being edited plus the derived conflict warning.
// Each field change goes through Apply, which re-derives dependent fields
// deterministically, so every re-derivation rule is testable in isolation.
//
// The booked-slot snapshot is fixed at construction; callers build a fresh
// FormState per editing pass against the latest snapshot.
type FormState struct {
	Draft AppointmentDraft

	// ConflictWarning is a human-readable advisory naming the colliding
	// appointment, or empty. It never blocks submission.
	ConflictWarning string

	slots []BookedSlot

	startTimeSet bool
	endTimeSet   bool // user chose an end time explicitly this edit session
	priceSet     bool // user typed a price explicitly this edit session
}

// NewFormState creates a form for the given day with the usual defaults: a
// single client-bound in-person session that produces a financial record.
func NewFormState(date time.Time, slots []BookedSlot) FormState {
	return FormState{
		Draft: AppointmentDraft{
			SessionKind:            SessionSingle,
			Date:                   date,
			AppointmentKind:        KindInPerson,
			CreatesFinancialRecord: true,
		},
		slots: slots,
	}
}

// Event is a single field change on the booking form.
type Event interface {
	apply(FormState) FormState
}

// Apply reduces the form state by one event and recomputes the derived
// fields, including the live conflict warning. The receiver is not modified.
func (s FormState) Apply(e Event) FormState {
	next := e.apply(s)
	next.refreshConflictWarning()
	return next
}

// SetDate changes the calendar day the draft is booked on.
type SetDate struct{ Date time.Time }

func (e SetDate) apply(s FormState) FormState {
	s.Draft.Date = e.Date
	return s
}

// SetStartTime changes the start time. Unless the user has already picked an
// end time in this edit session, the end time follows one hour behind.
type SetStartTime struct{ Time TimeOfDay }

func (e SetStartTime) apply(s FormState) FormState {
	s.Draft.StartTime = e.Time
	s.startTimeSet = true
	if !s.endTimeSet {
		s.Draft.EndTime = e.Time.AddHours(1)
	}
	return s
}

// SetEndTime pins the end time explicitly; later start-time changes no longer
// move it.
type SetEndTime struct{ Time TimeOfDay }

func (e SetEndTime) apply(s FormState) FormState {
	s.Draft.EndTime = e.Time
	s.endTimeSet = true
	return s
}

// SetSessionKind switches between single, recurring and personal sessions.
// Personal sessions carry no client and no billing, so entering personal
// clears the client, the price and the financial-record flag; leaving
// personal restores the flag.
type SetSessionKind struct{ Kind SessionKind }

func (e SetSessionKind) apply(s FormState) FormState {
	wasPersonal := s.Draft.SessionKind == SessionPersonal
	s.Draft.SessionKind = e.Kind

	if e.Kind == SessionPersonal {
		s.Draft.ClientID = ""
		s.Draft.Price = ""
		s.priceSet = false
		s.Draft.CreatesFinancialRecord = false
	} else if wasPersonal {
		s.Draft.CreatesFinancialRecord = true
	}
	if e.Kind != SessionRecurring {
		s.Draft.Recurrence = nil
	}
	return s
}

// SelectClient binds the draft to a client. If the client has a stored
// default session price and the user has not typed a price this session, the
// price is filled from the default. Ignored for personal sessions.
type SelectClient struct{ Client ClientInfo }

func (e SelectClient) apply(s FormState) FormState {
	if s.Draft.SessionKind == SessionPersonal {
		return s
	}
	s.Draft.ClientID = e.Client.ID
	if !s.priceSet && e.Client.DefaultSessionPrice != nil {
		s.Draft.Price = e.Client.DefaultSessionPrice.String()
	}
	return s
}

// SetAppointmentKind switches between in-person and remote.
type SetAppointmentKind struct{ Kind AppointmentKind }

func (e SetAppointmentKind) apply(s FormState) FormState {
	s.Draft.AppointmentKind = e.Kind
	if e.Kind != KindRemote {
		s.Draft.VideoLink = ""
	}
	return s
}

// SetVideoLink sets the meeting link for remote sessions.
type SetVideoLink struct{ Link string }

func (e SetVideoLink) apply(s FormState) FormState {
	s.Draft.VideoLink = e.Link
	return s
}

// SetPrice records a price the user typed. A non-empty value takes precedence
// over any client default for the rest of the edit session. Personal sessions
// carry no billing, so the event is ignored while the draft is personal.
type SetPrice struct{ Price string }

func (e SetPrice) apply(s FormState) FormState {
	if s.Draft.SessionKind == SessionPersonal {
		return s
	}
	s.Draft.Price = e.Price
	s.priceSet = e.Price != ""
	return s
}

// SetCreatesFinancialRecord toggles whether committing the draft also creates
// a financial record.
type SetCreatesFinancialRecord struct{ Enabled bool }

func (e SetCreatesFinancialRecord) apply(s FormState) FormState {
	s.Draft.CreatesFinancialRecord = e.Enabled
	return s
}

// SetRecurrence sets the cadence and occurrence count of a recurring draft.
type SetRecurrence struct{ Recurrence Recurrence }

func (e SetRecurrence) apply(s FormState) FormState {
	r := e.Recurrence
	s.Draft.Recurrence = &r
	return s
}

// refreshConflictWarning recomputes the live single-slot warning. Recurring
// drafts skip the live check entirely: their conflicts are resolved once at
// submit time across the whole series, not on every keystroke.
func (s *FormState) refreshConflictWarning() {
	s.ConflictWarning = ""
	if s.Draft.SessionKind == SessionRecurring {
		return
	}
	if !s.startTimeSet || !s.Draft.StartTime.Before(s.Draft.EndTime) {
		return
	}
	if slot := FindConflict(s.Draft.Date, s.Draft.Range(), s.slots); slot != nil {
		s.ConflictWarning = fmt.Sprintf("This time overlaps with %q (%s)", slot.Label, slot.Range())
	}
}

// Validate checks whether the draft may be submitted, returning a
// ValidationError naming the first offending field. Conflicts are not
// validation failures; they stay advisory.
func (s FormState) Validate() error {
	return s.Draft.Validate()
}

// Validate applies the submit-time rules to the draft.
func (d AppointmentDraft) Validate() error {
	if d.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	if d.SessionKind != SessionPersonal && d.ClientID == "" {
		return &ValidationError{Field: "clientId", Message: "a client is required unless the session is personal"}
	}
	if !d.StartTime.Before(d.EndTime) {
		return &ValidationError{Field: "endTime", Message: "end time must be after start time"}
	}
	if d.AppointmentKind == KindRemote && d.SessionKind != SessionPersonal && d.VideoLink == "" {
		return &ValidationError{Field: "videoLink", Message: "a video link is required for remote sessions"}
	}
	if d.SessionKind == SessionRecurring {
		if d.Recurrence == nil {
			return &ValidationError{Field: "recurrence", Message: "recurrence is required for recurring sessions"}
		}
		if _, err := ParseCadence(string(d.Recurrence.Cadence)); err != nil {
			return &ValidationError{Field: "recurrence.cadence", Message: err.Error()}
		}
		if d.Recurrence.OccurrenceCount < 1 || d.Recurrence.OccurrenceCount > MaxOccurrences {
			return &ValidationError{
				Field:   "recurrence.occurrenceCount",
				Message: fmt.Sprintf("occurrence count must be between 1 and %d", MaxOccurrences),
			}
		}
	}
	if d.CreatesFinancialRecord && d.SessionKind != SessionPersonal {
		if d.Price == "" {
			return &ValidationError{Field: "price", Message: "a price is required when a financial record is created"}
		}
		if _, err := decimal.NewFromString(d.Price); err != nil {
			return &ValidationError{Field: "price", Message: fmt.Sprintf("invalid price %q", d.Price)}
		}
	}
	return nil
}
