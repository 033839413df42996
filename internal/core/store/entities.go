package store

import (
	"context"
	"slices"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func entityID(e domain.Entity) string { return e.ID }

// Entities returns a copy of the entity collection.
func (s *Store) Entities() []domain.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entities)
}

func (s *Store) SetEntities(entities []domain.Entity) {
	s.mu.Lock()
	s.entities = slices.Clone(entities)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionEntities, Kind: ChangeReplace})
}

// AddEntity prepends a record whose remote create already succeeded.
func (s *Store) AddEntity(entity domain.Entity) {
	s.mu.Lock()
	s.entities = prepend(s.entities, entity)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionEntities, Kind: ChangeAdd, ID: entity.ID})
}

// UpdateEntity mirrors UpdateDocument: confirm-then-apply, canonical record
// from the server, nothing applied on failure.
func (s *Store) UpdateEntity(ctx context.Context, id string, patch domain.EntityPatch) (domain.Entity, error) {
	canonical, err := s.apis.Entities.UpdateEntity(ctx, id, patch)
	if err != nil {
		return domain.Entity{}, domain.WrapError(domain.ErrRemoteUpdateFailed, "update entity", err)
	}

	s.mu.Lock()
	if i := indexByID(s.entities, id, entityID); i >= 0 {
		s.entities[i] = canonical
	}
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionEntities, Kind: ChangeUpdate, ID: id})
	return canonical, nil
}

// DeleteEntity mirrors DeleteDocument: optimistic removal with reinsert at
// the captured index when the remote rejects.
func (s *Store) DeleteEntity(ctx context.Context, id string) error {
	s.mu.Lock()
	i := indexByID(s.entities, id, entityID)
	if i < 0 {
		s.mu.Unlock()
		if err := s.apis.Entities.DeleteEntity(ctx, id); err != nil {
			return domain.WrapError(domain.ErrRemoteDeleteFailed, "delete entity", err)
		}
		return nil
	}
	removed := s.entities[i]
	s.entities = removeAt(s.entities, i)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionEntities, Kind: ChangeRemove, ID: id})

	if err := s.apis.Entities.DeleteEntity(ctx, id); err != nil {
		s.mu.Lock()
		s.entities = insertAt(s.entities, i, removed)
		s.mu.Unlock()
		s.publish(Change{Collection: CollectionEntities, Kind: ChangeRollback, ID: id})
		s.logger.Warn("entity delete rolled back", "entity_id", id, "error", err)
		return domain.WrapError(domain.ErrRemoteDeleteFailed, "delete entity", err)
	}
	return nil
}
