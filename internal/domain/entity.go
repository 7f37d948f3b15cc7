package domain

import (
	"fmt"
	"strings"
	"time"
)

// EntityType identifies one synchronizable business entity family.
// Each entity type mirrors onto exactly one remote board.
type EntityType string

const (
	EntityMember    EntityType = "member"
	EntityEmployee  EntityType = "employee"
	EntityContract  EntityType = "contract"
	EntityPayment   EntityType = "payment"
	EntityInventory EntityType = "inventory"
	EntitySchedule  EntityType = "schedule"
)

// AllEntityTypes lists every entity type the sync engine manages.
var AllEntityTypes = []EntityType{
	EntityMember,
	EntityEmployee,
	EntityContract,
	EntityPayment,
	EntityInventory,
	EntitySchedule,
}

// ParseEntityType converts a route/query parameter into an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	et := EntityType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllEntityTypes {
		if et == known {
			return et, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
}

// Record is a business entity as stored in the system of record: an opaque
// document (field bag) plus the sync metadata the engine maintains.
// Field semantics belong to the CRUD layer; the sync engine only reads and
// writes fields through the column mapping for the record's entity type.
type Record struct {
	ID         string         `json:"id"`
	EntityType EntityType     `json:"entity_type"`
	Name       string         `json:"name"`
	Fields     map[string]any `json:"fields"`
	Active     bool           `json:"active"`
	Version    int64          `json:"version"`
	SyncState  SyncState      `json:"sync_state"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Field returns a field value by local field name.
func (r *Record) Field(name string) (any, bool) {
	if r.Fields == nil {
		return nil, false
	}
	v, ok := r.Fields[name]
	return v, ok
}
