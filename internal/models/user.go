package models

import (
	"fmt"
	"time"
)

// TypeUser is the document type tag stored on every user record.
const TypeUser = "user"

// User is an identity created from a successful OAuth callback. The primary
// key is derived from the provider and the provider-assigned user ID, so the
// same external identity always maps to the same record.
type User struct {
	ID         string    `gorm:"type:varchar(255);primarykey" json:"id"`
	Type       string    `gorm:"type:varchar(20);not null;default:'user'" json:"type"`
	Provider   string    `gorm:"type:varchar(50);not null" json:"provider"`
	ExternalID string    `gorm:"type:varchar(191);not null" json:"external_id"`
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Squads []Squad `gorm:"foreignKey:UserID" json:"-"`
}

// UserID derives the stable primary key for a (provider, external ID) pair.
// The provider is part of the key so identities from different providers
// never collide.
func UserID(provider, externalID string) string {
	return fmt.Sprintf("user-%s-%s", provider, externalID)
}
