package backend

import (
	"context"
	"net/http"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func (c *Client) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	var response struct {
		Entities []domain.Entity `json:"entities"`
	}
	if err := c.getJSON(ctx, "/entities", &response); err != nil {
		return nil, err
	}
	return response.Entities, nil
}

func (c *Client) CreateEntity(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	var response struct {
		Entity domain.Entity `json:"entity"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/entities", entity, &response); err != nil {
		return domain.Entity{}, err
	}
	return response.Entity, nil
}

func (c *Client) UpdateEntity(ctx context.Context, id string, patch domain.EntityPatch) (domain.Entity, error) {
	var response struct {
		Entity domain.Entity `json:"entity"`
	}
	if err := c.sendJSON(ctx, http.MethodPatch, "/entities/"+id, patch, &response); err != nil {
		return domain.Entity{}, err
	}
	return response.Entity, nil
}

func (c *Client) DeleteEntity(ctx context.Context, id string) error {
	return c.delete(ctx, "/entities/"+id)
}
