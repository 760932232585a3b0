package services

import (
	"errors"
	"strings"

	"github.com/xwingdb/squad-api/internal/models"
	"github.com/xwingdb/squad-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSquadNotFound  = errors.New("squad not found")
	ErrNotOwner       = errors.New("you don't own that squad")
	ErrDuplicateName  = errors.New("you already have a squad with that name")
	ErrInvalidName    = errors.New("squad name cannot be empty")
	ErrInvalidFaction = errors.New("unknown faction")
	ErrInvalidPayload = errors.New("serialized squad cannot be empty")
	// ErrPersistence hides storage detail behind a generic retry-later
	// message; the wrapped cause stays server-side.
	ErrPersistence = errors.New("something bad happened saving that squad, try again later")
)

// SquadService provides business logic for squad operations: ownership-scoped
// mutation plus the two faction-grouped list views.
type SquadService struct {
	squadRepo repository.SquadRepository
}

// NewSquadService creates a new SquadService.
func NewSquadService(squadRepo repository.SquadRepository) *SquadService {
	return &SquadService{
		squadRepo: squadRepo,
	}
}

// SquadInput represents the mutable fields of a squad as supplied by the
// caller. AdditionalData may be nil, meaning "no value".
type SquadInput struct {
	Name           string
	Faction        string
	Serialized     string
	AdditionalData models.JSONMap
}

func (in *SquadInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Faction = strings.TrimSpace(in.Faction)
	in.Serialized = strings.TrimSpace(in.Serialized)

	if in.Name == "" {
		return ErrInvalidName
	}
	if in.Serialized == "" {
		return ErrInvalidPayload
	}
	if !models.IsValidFaction(in.Faction) {
		return ErrInvalidFaction
	}
	return nil
}

// Create stores a new squad for ownerID and returns its assigned ID.
//
// The exists pre-check produces the friendly duplicate error in the common
// case; the authoritative rejection is the unique (user_id, name) index,
// which closes the race between two concurrent creates for the same name.
func (s *SquadService) Create(ownerID string, input SquadInput) (string, error) {
	if err := input.validate(); err != nil {
		return "", err
	}

	exists, err := s.squadRepo.ExistsByOwnerAndName(ownerID, input.Name)
	if err != nil {
		return "", ErrPersistence
	}
	if exists {
		return "", ErrDuplicateName
	}

	squad := &models.Squad{
		ID:             models.NewSquadID(),
		Type:           models.TypeSquad,
		UserID:         ownerID,
		Name:           input.Name,
		Faction:        models.Faction(input.Faction),
		Serialized:     input.Serialized,
		AdditionalData: input.AdditionalData,
	}

	if err := s.squadRepo.Create(squad); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrDuplicateName
		}
		return "", ErrPersistence
	}

	return squad.ID, nil
}

// Get fetches a squad by ID.
func (s *SquadService) Get(id string) (*models.Squad, error) {
	squad, err := s.squadRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSquadNotFound
		}
		return nil, ErrPersistence
	}
	return squad, nil
}

// loadOwned fetches a squad and verifies callerID owns it. Shared by Update
// and Delete so the not-found/not-owner ordering is identical on both paths.
func (s *SquadService) loadOwned(id, callerID string) (*models.Squad, error) {
	squad, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if squad.UserID != callerID {
		return nil, ErrNotOwner
	}
	return squad, nil
}

// Update replaces all mutable fields (name, faction, serialized,
// additional_data) of a squad owned by callerID.
func (s *SquadService) Update(id, callerID string, input SquadInput) error {
	if err := input.validate(); err != nil {
		return err
	}

	squad, err := s.loadOwned(id, callerID)
	if err != nil {
		return err
	}

	squad.Name = input.Name
	squad.Faction = models.Faction(input.Faction)
	squad.Serialized = input.Serialized
	squad.AdditionalData = input.AdditionalData

	if err := s.squadRepo.Update(squad); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return ErrPersistence
	}
	return nil
}

// Delete permanently removes a squad owned by callerID.
func (s *SquadService) Delete(id, callerID string) error {
	squad, err := s.loadOwned(id, callerID)
	if err != nil {
		return err
	}

	if err := s.squadRepo.Delete(squad.ID); err != nil {
		return ErrPersistence
	}
	return nil
}

// SquadEntry is one row of a faction-grouped list view. Serialized and
// AdditionalData are pointers so records missing either render a literal
// JSON null rather than dropping the key.
type SquadEntry struct {
	Name           string         `json:"name"`
	Serialized     *string        `json:"serialized"`
	AdditionalData models.JSONMap `json:"additional_data"`
}

// FactionLists maps every known faction to its (possibly empty) entries.
type FactionLists map[models.Faction][]SquadEntry

// ListAll returns every owner's squads grouped by faction. Entry order
// within each faction follows the repository order: owner, then name.
func (s *SquadService) ListAll() (FactionLists, error) {
	squads, err := s.squadRepo.ListAll()
	if err != nil {
		return nil, ErrPersistence
	}
	return groupByFaction(squads), nil
}

// ListForOwner returns one owner's squads grouped by faction.
func (s *SquadService) ListForOwner(ownerID string) (FactionLists, error) {
	squads, err := s.squadRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, ErrPersistence
	}
	return groupByFaction(squads), nil
}

func groupByFaction(squads []models.Squad) FactionLists {
	out := make(FactionLists, len(models.Factions))
	for _, faction := range models.Factions {
		out[faction] = []SquadEntry{}
	}

	for _, squad := range squads {
		entry := SquadEntry{
			Name:           squad.Name,
			AdditionalData: squad.AdditionalData,
		}
		if squad.Serialized != "" {
			serialized := squad.Serialized
			entry.Serialized = &serialized
		}
		out[squad.Faction] = append(out[squad.Faction], entry)
	}

	return out
}
