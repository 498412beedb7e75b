package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"practice-scheduler-server/internal/models"
	"practice-scheduler-server/internal/scheduling"
)

// GormStore backs the scheduling collaborator interfaces with the MySQL
// database. It implements scheduling.ClientDirectory, BookedSlotSource and
// AppointmentStore.
type GormStore struct {
	DB *gorm.DB
}

// New creates a GormStore.
func New(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// GetClient looks up a client for the booking form. Returns nil (no error)
// when the client does not exist or is archived.
func (s *GormStore) GetClient(ctx context.Context, id string) (*scheduling.ClientInfo, error) {
	var client models.Client
	err := s.DB.WithContext(ctx).First(&client, "id = ? AND archived = ?", id, false).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup client %s: %w", id, err)
	}

	info := &scheduling.ClientInfo{
		ID:   client.ID,
		Name: client.FullName(),
	}
	if client.DefaultSessionPrice.Valid {
		price := client.DefaultSessionPrice.Decimal
		info.DefaultSessionPrice = &price
	}
	return info, nil
}

// ListBookedSlots returns every scheduled appointment of the practitioner as
// a comparison slot, ordered by start time. Cancelled and past-state
// appointments do not block new bookings.
func (s *GormStore) ListBookedSlots(ctx context.Context, practitionerID string) ([]scheduling.BookedSlot, error) {
	var appointments []models.Appointment
	err := s.DB.WithContext(ctx).
		Where("practitioner_id = ? AND status = ?", practitionerID, models.StatusScheduled).
		Order("start_time asc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}

	slots := make([]scheduling.BookedSlot, 0, len(appointments))
	for _, a := range appointments {
		slots = append(slots, scheduling.BookedSlot{
			Date:  a.StartTime,
			Start: scheduling.TimeOfDay{Hour: a.StartTime.Hour(), Minute: a.StartTime.Minute()},
			End:   scheduling.TimeOfDay{Hour: a.EndTime.Hour(), Minute: a.EndTime.Minute()},
			Label: a.Title,
		})
	}
	return slots, nil
}

// InsertBatch writes a materialized batch in a single transaction. Any
// rejection rolls back the whole batch and is reported as a persistence
// error; partial commits never happen.
func (s *GormStore) InsertBatch(ctx context.Context, appointments []models.Appointment) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&appointments).Error
	})
	if err != nil {
		return &scheduling.PersistenceError{Reason: err.Error()}
	}
	return nil
}
