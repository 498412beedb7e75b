package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of a booked appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents one committed occurrence on the practitioner's
// calendar. Appointments belonging to the same recurring series share a
// RecurrenceGroupID; standalone appointments have none.
type Appointment struct {
	BaseModel
	PractitionerID         string              `gorm:"size:36;index" json:"practitionerId"`
	ClientID               *string             `gorm:"size:36;index" json:"clientId"`
	Title                  string              `gorm:"size:255" json:"title"`
	StartTime              time.Time           `gorm:"index" json:"startTime"`
	EndTime                time.Time           `json:"endTime"`
	SessionKind            string              `gorm:"size:20" json:"sessionKind"`
	Kind                   string              `gorm:"size:20" json:"kind"`
	VideoLink              string              `gorm:"size:512" json:"videoLink,omitempty"`
	Price                  decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"price"`
	CreatesFinancialRecord bool                `gorm:"default:true" json:"createsFinancialRecord"`
	RecurrenceGroupID      *string             `gorm:"size:36;index" json:"recurrenceGroupId"`
	Status                 AppointmentStatus   `gorm:"size:20;default:'scheduled'" json:"status"`
	Notes                  string              `gorm:"type:text" json:"notes"`

	// Relations
	Practitioner User    `gorm:"foreignKey:PractitionerID" json:"-"`
	Client       *Client `gorm:"foreignKey:ClientID" json:"-"`
}
