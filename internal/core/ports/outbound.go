package ports

import (
	"context"
	"encoding/json"
	"io"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

// DocumentAPI is the remote document service. It owns the durable truth;
// every method is one outbound call.
type DocumentAPI interface {
	ListDocuments(ctx context.Context) ([]domain.Document, error)
	GetProcessing(ctx context.Context, id string) (domain.ProcessingUpdate, error)
	GetExtractedEntities(ctx context.Context, id string) (json.RawMessage, error)
	UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) (domain.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	UploadDocument(ctx context.Context, file io.Reader, fileName, entityID string) (domain.Document, error)
}

// EntityAPI is the remote entity directory.
type EntityAPI interface {
	ListEntities(ctx context.Context) ([]domain.Entity, error)
	CreateEntity(ctx context.Context, entity domain.Entity) (domain.Entity, error)
	UpdateEntity(ctx context.Context, id string, patch domain.EntityPatch) (domain.Entity, error)
	DeleteEntity(ctx context.Context, id string) error
}

// DeadlineAPI serves per-document, confidence-scored deadlines.
type DeadlineAPI interface {
	ListDeadlines(ctx context.Context, documentID string) ([]domain.RawDeadline, error)
	UpdateDeadline(ctx context.Context, documentID, deadlineID string, patch domain.DeadlinePatch) (domain.RawDeadline, error)
	DeleteDeadline(ctx context.Context, documentID, deadlineID string) error
}

// NotificationAPI serves compliance reminders generated by the backend.
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	GenerateNotifications(ctx context.Context) error
	MarkNotificationRead(ctx context.Context, id string) error
}

// TokenSource yields the current bearer token for outbound calls. Token
// issuance and refresh belong to the auth provider, not this module.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RealtimeEvent is one message from the document feed.
type RealtimeEvent struct {
	Type   string           `json:"type"` // INSERT or DELETE
	Record *domain.Document `json:"record,omitempty"`
	Old    *domain.Document `json:"old,omitempty"`
}

const (
	RealtimeInsert = "INSERT"
	RealtimeDelete = "DELETE"
)

// RealtimeFeed pushes document INSERT/DELETE events until ctx is cancelled.
type RealtimeFeed interface {
	Consume(ctx context.Context, handler func(context.Context, RealtimeEvent) error) error
}

// SnapshotStore persists a serialized store snapshot between runs.
type SnapshotStore interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// Mirror receives replace-style writes of the canonical collections so
// local consumers can read them. Never a source of truth.
type Mirror interface {
	MirrorDocuments(ctx context.Context, docs []domain.Document) error
	MirrorEntities(ctx context.Context, entities []domain.Entity) error
	MirrorDeadlines(ctx context.Context, deadlines []domain.Deadline) error
}
