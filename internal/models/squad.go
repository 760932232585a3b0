package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TypeSquad is the document type tag stored on every squad record.
const TypeSquad = "squad"

// Faction is one of the closed set of top-level groupings squads are
// partitioned by in both list views.
type Faction string

const (
	FactionRebel  Faction = "Rebel Alliance"
	FactionEmpire Faction = "Galactic Empire"
)

// Factions lists the known factions in the order list views present them.
var Factions = []Faction{FactionRebel, FactionEmpire}

// IsValidFaction reports whether f is one of the known factions.
func IsValidFaction(f string) bool {
	for _, known := range Factions {
		if Faction(f) == known {
			return true
		}
	}
	return false
}

// Squad is the owned resource: a named, faction-tagged container for an
// opaque serialized payload plus optional structured extra data.
//
// The unique index on (user_id, name) is the authoritative guard against two
// squads with the same name for one owner; the index on
// (user_id, faction, name) backs both list views and their ordering.
// Deletes are permanent so a freed name is immediately reusable.
type Squad struct {
	ID             string    `gorm:"type:varchar(255);primarykey" json:"id"`
	Type           string    `gorm:"type:varchar(20);not null;default:'squad'" json:"type"`
	UserID         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_squads_owner_name;index:idx_squads_owner_faction_name,priority:1" json:"user_id"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_squads_owner_name;index:idx_squads_owner_faction_name,priority:3" json:"name"`
	Faction        Faction   `gorm:"type:varchar(50);not null;index:idx_squads_owner_faction_name,priority:2" json:"faction"`
	Serialized     string    `gorm:"type:text" json:"serialized"`
	AdditionalData JSONMap   `gorm:"type:text" json:"additional_data"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewSquadID generates a fresh squad primary key.
func NewSquadID() string {
	return "squad_" + uuid.NewString()
}

// JSONMap is a loosely-typed JSON object column. A nil map is stored as SQL
// NULL and marshals to a JSON null, which keeps "no value" distinguishable
// from an empty object.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return nil, fmt.Errorf("failed to encode json map: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json map column type %T", value)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode json map: %w", err)
	}
	*m = out
	return nil
}
