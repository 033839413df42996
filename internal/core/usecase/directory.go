package usecase

import (
	"context"
	"fmt"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/core/store"
)

// DirectoryUseCase covers entity creation: validate the kind-conditional
// fields, create remotely, cache the canonical record.
type DirectoryUseCase struct {
	store    *store.Store
	entities ports.EntityAPI
}

func NewDirectoryUseCase(st *store.Store, entities ports.EntityAPI) *DirectoryUseCase {
	return &DirectoryUseCase{store: st, entities: entities}
}

func (uc *DirectoryUseCase) CreateEntity(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	if err := entity.Validate(); err != nil {
		return domain.Entity{}, err
	}
	canonical, err := uc.entities.CreateEntity(ctx, entity)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("create entity: %w", err)
	}
	uc.store.AddEntity(canonical)
	return canonical, nil
}
