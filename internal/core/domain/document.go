package domain

import (
	"encoding/json"
	"time"
)

type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusError      ProcessingStatus = "error"
)

// Terminal reports whether processing has finished and polling should stop.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Document is the client-held copy of a remote document record. The remote
// backend owns the durable truth; this copy is advisory.
type Document struct {
	ID                 string           `json:"id"`
	FileName           string           `json:"file_name"`
	FileType           string           `json:"file_type,omitempty"`
	FileSize           int64            `json:"file_size"`
	FileURL            string           `json:"file_url,omitempty"`
	EntityID           string           `json:"entity_id,omitempty"`
	Library            string           `json:"library,omitempty"`
	ProcessingStatus   ProcessingStatus `json:"processing_status"`
	ProcessingProgress int              `json:"processing_progress"`
	ProcessingError    string           `json:"processing_error,omitempty"`
	// ExtractedEntities is carried opaquely; extraction lives in the backend.
	ExtractedEntities json.RawMessage `json:"extracted_entities,omitempty"`
	ProcessedAt       *time.Time      `json:"processed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// DocumentPatch is a partial update sent to the remote backend. Nil fields
// are omitted from the request; the server returns the canonical record.
type DocumentPatch struct {
	FileName *string `json:"file_name,omitempty"`
	EntityID *string `json:"entity_id,omitempty"`
	Library  *string `json:"library,omitempty"`
}

// ProcessingUpdate is one polled status response for a document.
type ProcessingUpdate struct {
	Status   ProcessingStatus `json:"processing_status"`
	Progress int              `json:"processing_progress"`
	Error    string           `json:"processing_error,omitempty"`
}
