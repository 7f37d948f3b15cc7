package sync

import (
	"fmt"

	"github.com/ironloft/gymboard/internal/domain"
)

// Registry resolves sync managers by entity type or by board id. Webhook
// routing is board-id based; API routes are entity-type based.
type Registry struct {
	byEntity map[domain.EntityType]Manager
	byBoard  map[int64]Manager
}

// NewRegistry indexes the given managers. A duplicate entity type or board id
// is a wiring bug and returns an error.
func NewRegistry(managers ...Manager) (*Registry, error) {
	r := &Registry{
		byEntity: make(map[domain.EntityType]Manager, len(managers)),
		byBoard:  make(map[int64]Manager, len(managers)),
	}
	for _, m := range managers {
		if _, exists := r.byEntity[m.EntityType()]; exists {
			return nil, fmt.Errorf("duplicate sync manager for entity type %s", m.EntityType())
		}
		if _, exists := r.byBoard[m.BoardID()]; exists {
			return nil, fmt.Errorf("duplicate sync manager for board %d", m.BoardID())
		}
		r.byEntity[m.EntityType()] = m
		r.byBoard[m.BoardID()] = m
	}
	return r, nil
}

// ManagerFor returns the manager for an entity type.
func (r *Registry) ManagerFor(entityType domain.EntityType) (Manager, error) {
	m, ok := r.byEntity[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBoardNotConfigured, entityType)
	}
	return m, nil
}

// ManagerForBoard returns the manager mirroring a board id.
func (r *Registry) ManagerForBoard(boardID int64) (Manager, error) {
	m, ok := r.byBoard[boardID]
	if !ok {
		return nil, fmt.Errorf("%w: board %d", domain.ErrBoardNotConfigured, boardID)
	}
	return m, nil
}

// Managers returns every registered manager.
func (r *Registry) Managers() []Manager {
	out := make([]Manager, 0, len(r.byEntity))
	for _, m := range r.byEntity {
		out = append(out, m)
	}
	return out
}
