package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"practice-scheduler-server/internal/models"
)

// Materialize turns an approved draft into one appointment record per
// occurrence date. For non-recurring drafts occurrences is the single-element
// list [draft.Date]. Recurring drafts get one freshly generated recurrence
// group id shared by every record in the series; everything else gets none.
//
// The title is the display label for the calendar (the client's name, or a
// description for personal blocks); it is what later conflict warnings will
// name.
func Materialize(draft AppointmentDraft, occurrences []time.Time, practitionerID, title string) ([]models.Appointment, error) {
	if len(occurrences) == 0 {
		return nil, fmt.Errorf("materialize: no occurrence dates")
	}

	var price decimal.NullDecimal
	if draft.Price != "" && draft.SessionKind != SessionPersonal {
		parsed, err := decimal.NewFromString(draft.Price)
		if err != nil {
			return nil, &ValidationError{Field: "price", Message: fmt.Sprintf("invalid price %q", draft.Price)}
		}
		price = decimal.NewNullDecimal(parsed)
	}

	var clientID *string
	if draft.SessionKind != SessionPersonal && draft.ClientID != "" {
		id := draft.ClientID
		clientID = &id
	}

	var groupID *string
	if draft.SessionKind == SessionRecurring {
		id := uuid.New().String()
		groupID = &id
	}

	videoLink := ""
	if draft.AppointmentKind == KindRemote && draft.SessionKind != SessionPersonal {
		videoLink = draft.VideoLink
	}

	appointments := make([]models.Appointment, 0, len(occurrences))
	for _, date := range occurrences {
		appointments = append(appointments, models.Appointment{
			PractitionerID:         practitionerID,
			ClientID:               clientID,
			Title:                  title,
			StartTime:              draft.StartTime.On(date),
			EndTime:                draft.EndTime.On(date),
			SessionKind:            string(draft.SessionKind),
			Kind:                   string(draft.AppointmentKind),
			VideoLink:              videoLink,
			Price:                  price,
			CreatesFinancialRecord: draft.CreatesFinancialRecord && draft.SessionKind != SessionPersonal,
			RecurrenceGroupID:      groupID,
			Status:                 models.StatusScheduled,
		})
	}
	return appointments, nil
}
