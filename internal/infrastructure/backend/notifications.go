package backend

import (
	"context"
	"net/http"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var response struct {
		Notifications []domain.Notification `json:"notifications"`
	}
	if err := c.getJSON(ctx, "/notifications", &response); err != nil {
		return nil, err
	}
	return response.Notifications, nil
}

func (c *Client) GenerateNotifications(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/notifications/generate", nil, nil)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodPatch, "/notifications/"+id+"/read", nil, nil)
}
