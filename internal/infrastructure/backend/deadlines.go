package backend

import (
	"context"
	"net/http"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func (c *Client) ListDeadlines(ctx context.Context, documentID string) ([]domain.RawDeadline, error) {
	var response struct {
		Deadlines []domain.RawDeadline `json:"deadlines"`
	}
	if err := c.getJSON(ctx, "/documents/"+documentID+"/deadlines", &response); err != nil {
		return nil, err
	}
	return response.Deadlines, nil
}

func (c *Client) UpdateDeadline(ctx context.Context, documentID, deadlineID string, patch domain.DeadlinePatch) (domain.RawDeadline, error) {
	var response struct {
		Deadline domain.RawDeadline `json:"deadline"`
	}
	path := "/documents/" + documentID + "/deadlines/" + deadlineID
	if err := c.sendJSON(ctx, http.MethodPut, path, patch, &response); err != nil {
		return domain.RawDeadline{}, err
	}
	return response.Deadline, nil
}

func (c *Client) DeleteDeadline(ctx context.Context, documentID, deadlineID string) error {
	return c.delete(ctx, "/documents/"+documentID+"/deadlines/"+deadlineID)
}
