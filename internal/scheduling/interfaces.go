package scheduling

import (
	"context"

	"practice-scheduler-server/internal/models"
)

// ClientDirectory supplies the client details the booking form needs for the
// price auto-fill.
type ClientDirectory interface {
	GetClient(ctx context.Context, id string) (*ClientInfo, error)
}

// BookedSlotSource supplies the snapshot of committed bookings the conflict
// checks run against. The snapshot is taken per validation pass; freshness is
// the caller's concern.
type BookedSlotSource interface {
	ListBookedSlots(ctx context.Context, practitionerID string) ([]BookedSlot, error)
}

// AppointmentStore is the sole write path for materialized appointments. The
// batch is all-or-nothing: any rejection fails the whole submission.
type AppointmentStore interface {
	InsertBatch(ctx context.Context, appointments []models.Appointment) error
}
