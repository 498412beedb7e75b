package models

import (
	"time"
)

// RefreshToken is a stored refresh token for a practitioner session. Tokens
// are rotated on every refresh; the superseded row is revoked, not deleted.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
