package repository

import (
	"errors"
	"fmt"

	"github.com/xwingdb/squad-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// GetOrCreate returns the user for (provider, externalID), inserting it on
// first sight. The insert uses ON CONFLICT DO NOTHING on the primary key and
// re-fetches, so two racing calls for the same key both observe the one
// record that won.
func (r *GormUserRepository) GetOrCreate(provider, externalID string, profile Profile) (*models.User, error) {
	id := models.UserID(provider, externalID)

	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user %s: %w", id, err)
	}

	user = models.User{
		ID:         id,
		Type:       models.TypeUser,
		Provider:   provider,
		ExternalID: externalID,
		Name:       profile.Name,
		Email:      profile.Email,
	}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", id, err)
	}

	// Re-fetch so a caller that lost the insert race still gets the
	// committed record.
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user %s after create: %w", id, err)
	}
	return &user, nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
