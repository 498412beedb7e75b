package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a person the practitioner sees. The stored default
// session price pre-fills the booking form when the client is selected.
type Client struct {
	BaseModel
	PractitionerID      string              `gorm:"size:36;index" json:"practitionerId"`
	FirstName           string              `gorm:"size:100;not null" json:"firstName"`
	LastName            string              `gorm:"size:100" json:"lastName"`
	Email               string              `gorm:"size:255" json:"email,omitempty"`
	PhoneNumber         string              `gorm:"size:50" json:"phoneNumber,omitempty"`
	DateOfBirth         *time.Time          `json:"dateOfBirth,omitempty"`
	DefaultSessionPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"defaultSessionPrice"`
	Notes               string              `gorm:"type:text" json:"notes,omitempty"`
	Archived            bool                `gorm:"default:false" json:"archived"`

	// Relations
	Practitioner User          `gorm:"foreignKey:PractitionerID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:ClientID" json:"-"`
}

// FullName returns the client's display name.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
