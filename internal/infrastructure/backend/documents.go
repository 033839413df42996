package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var response struct {
		Documents []domain.Document `json:"documents"`
	}
	if err := c.getJSON(ctx, "/documents", &response); err != nil {
		return nil, err
	}
	return response.Documents, nil
}

func (c *Client) GetProcessing(ctx context.Context, id string) (domain.ProcessingUpdate, error) {
	var response domain.ProcessingUpdate
	if err := c.getJSON(ctx, "/documents/"+id, &response); err != nil {
		return domain.ProcessingUpdate{}, err
	}
	return response, nil
}

func (c *Client) GetExtractedEntities(ctx context.Context, id string) (json.RawMessage, error) {
	var response struct {
		Entities json.RawMessage `json:"entities"`
	}
	if err := c.getJSON(ctx, "/documents/"+id+"/entities", &response); err != nil {
		return nil, err
	}
	return response.Entities, nil
}

func (c *Client) UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) (domain.Document, error) {
	var canonical domain.Document
	if err := c.sendJSON(ctx, http.MethodPatch, "/documents/"+id, patch, &canonical); err != nil {
		return domain.Document{}, err
	}
	return canonical, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.delete(ctx, "/documents/"+id)
}

func (c *Client) UploadDocument(ctx context.Context, file io.Reader, fileName, entityID string) (domain.Document, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return domain.Document{}, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.Document{}, fmt.Errorf("copy upload body: %w", err)
	}
	if entityID != "" {
		if err := writer.WriteField("entity_id", entityID); err != nil {
			return domain.Document{}, fmt.Errorf("write entity_id field: %w", err)
		}
	}
	if fileName != "" {
		if err := writer.WriteField("file_name", fileName); err != nil {
			return domain.Document{}, fmt.Errorf("write file_name field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return domain.Document{}, fmt.Errorf("close multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/documents/upload", &buf, writer.FormDataContentType())
	if err != nil {
		return domain.Document{}, err
	}
	defer resp.Body.Close()

	var response struct {
		Document domain.Document `json:"document"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return domain.Document{}, fmt.Errorf("decode upload response: %w", err)
	}
	return response.Document, nil
}
