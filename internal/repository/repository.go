package repository

import (
	"github.com/xwingdb/squad-api/internal/models"
)

// UserRepository defines the interface for identity data access
type UserRepository interface {
	// GetOrCreate returns the user for (provider, externalID), inserting it
	// from the supplied profile on first sight. Idempotent under concurrent
	// duplicate calls for the same key.
	GetOrCreate(provider, externalID string, profile Profile) (*models.User, error)

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)
}

// Profile carries the provider-supplied fields persisted on first login.
type Profile struct {
	Name  string
	Email string
}

// SquadRepository defines the interface for squad data access
type SquadRepository interface {
	// Create inserts a new squad. The unique (user_id, name) index rejects
	// duplicates; the violation surfaces as gorm.ErrDuplicatedKey.
	Create(squad *models.Squad) error

	// FindByID finds a squad by ID
	FindByID(id string) (*models.Squad, error)

	// Update persists all mutable fields of a squad
	Update(squad *models.Squad) error

	// Delete permanently removes a squad
	Delete(id string) error

	// ExistsByOwnerAndName reports whether the owner already has a squad
	// with that exact name
	ExistsByOwnerAndName(ownerID, name string) (bool, error)

	// ListAll returns every squad ordered by (user_id, faction, name)
	ListAll() ([]models.Squad, error)

	// ListByOwner returns one owner's squads in the same order
	ListByOwner(ownerID string) ([]models.Squad, error)
}
