package repository

import (
	"github.com/xwingdb/squad-api/internal/models"
	"gorm.io/gorm"
)

// GormSquadRepository is a GORM implementation of SquadRepository
type GormSquadRepository struct {
	db *gorm.DB
}

// NewSquadRepository creates a new SquadRepository
func NewSquadRepository(db *gorm.DB) SquadRepository {
	return &GormSquadRepository{db: db}
}

// Create inserts a new squad. A (user_id, name) collision surfaces as
// gorm.ErrDuplicatedKey via the unique index.
func (r *GormSquadRepository) Create(squad *models.Squad) error {
	return r.db.Create(squad).Error
}

// FindByID finds a squad by ID
func (r *GormSquadRepository) FindByID(id string) (*models.Squad, error) {
	var squad models.Squad
	if err := r.db.First(&squad, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &squad, nil
}

// Update persists all mutable fields of a squad
func (r *GormSquadRepository) Update(squad *models.Squad) error {
	return r.db.Save(squad).Error
}

// Delete permanently removes a squad
func (r *GormSquadRepository) Delete(id string) error {
	return r.db.Delete(&models.Squad{}, "id = ?", id).Error
}

// ExistsByOwnerAndName reports whether the owner already has a squad with
// that exact name. Case-sensitive point lookup on the unique index prefix.
func (r *GormSquadRepository) ExistsByOwnerAndName(ownerID, name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Squad{}).
		Where("user_id = ? AND name = ?", ownerID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll returns every squad ordered by (user_id, faction, name), the
// natural order of the composite index both list views are built on.
func (r *GormSquadRepository) ListAll() ([]models.Squad, error) {
	var squads []models.Squad
	err := r.db.
		Order("user_id ASC, faction ASC, name ASC").
		Find(&squads).Error
	if err != nil {
		return nil, err
	}
	return squads, nil
}

// ListByOwner returns one owner's squads in the same order as ListAll,
// restricted by the owner prefix of the composite index.
func (r *GormSquadRepository) ListByOwner(ownerID string) ([]models.Squad, error) {
	var squads []models.Squad
	err := r.db.
		Where("user_id = ?", ownerID).
		Order("user_id ASC, faction ASC, name ASC").
		Find(&squads).Error
	if err != nil {
		return nil, err
	}
	return squads, nil
}
