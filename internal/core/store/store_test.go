package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

type documentAPIFake struct {
	listFn    func(ctx context.Context) ([]domain.Document, error)
	processFn func(ctx context.Context, id string) (domain.ProcessingUpdate, error)
	extractFn func(ctx context.Context, id string) (json.RawMessage, error)
	updateFn  func(ctx context.Context, id string, patch domain.DocumentPatch) (domain.Document, error)
	deleteFn  func(ctx context.Context, id string) error
	uploadFn  func(ctx context.Context, file io.Reader, fileName, entityID string) (domain.Document, error)
}

func (f *documentAPIFake) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *documentAPIFake) GetProcessing(ctx context.Context, id string) (domain.ProcessingUpdate, error) {
	if f.processFn == nil {
		return domain.ProcessingUpdate{}, nil
	}
	return f.processFn(ctx, id)
}

func (f *documentAPIFake) GetExtractedEntities(ctx context.Context, id string) (json.RawMessage, error) {
	if f.extractFn == nil {
		return nil, nil
	}
	return f.extractFn(ctx, id)
}

func (f *documentAPIFake) UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) (domain.Document, error) {
	if f.updateFn == nil {
		return domain.Document{ID: id}, nil
	}
	return f.updateFn(ctx, id, patch)
}

func (f *documentAPIFake) DeleteDocument(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *documentAPIFake) UploadDocument(ctx context.Context, file io.Reader, fileName, entityID string) (domain.Document, error) {
	if f.uploadFn == nil {
		return domain.Document{}, nil
	}
	return f.uploadFn(ctx, file, fileName, entityID)
}

type entityAPIFake struct {
	listFn   func(ctx context.Context) ([]domain.Entity, error)
	createFn func(ctx context.Context, entity domain.Entity) (domain.Entity, error)
	updateFn func(ctx context.Context, id string, patch domain.EntityPatch) (domain.Entity, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *entityAPIFake) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *entityAPIFake) CreateEntity(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	if f.createFn == nil {
		return entity, nil
	}
	return f.createFn(ctx, entity)
}

func (f *entityAPIFake) UpdateEntity(ctx context.Context, id string, patch domain.EntityPatch) (domain.Entity, error) {
	if f.updateFn == nil {
		return domain.Entity{ID: id}, nil
	}
	return f.updateFn(ctx, id, patch)
}

func (f *entityAPIFake) DeleteEntity(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

type deadlineAPIFake struct {
	listFn   func(ctx context.Context, documentID string) ([]domain.RawDeadline, error)
	updateFn func(ctx context.Context, documentID, deadlineID string, patch domain.DeadlinePatch) (domain.RawDeadline, error)
	deleteFn func(ctx context.Context, documentID, deadlineID string) error
}

func (f *deadlineAPIFake) ListDeadlines(ctx context.Context, documentID string) ([]domain.RawDeadline, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, documentID)
}

func (f *deadlineAPIFake) UpdateDeadline(ctx context.Context, documentID, deadlineID string, patch domain.DeadlinePatch) (domain.RawDeadline, error) {
	if f.updateFn == nil {
		return domain.RawDeadline{ID: deadlineID, DocumentID: documentID}, nil
	}
	return f.updateFn(ctx, documentID, deadlineID, patch)
}

func (f *deadlineAPIFake) DeleteDeadline(ctx context.Context, documentID, deadlineID string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, documentID, deadlineID)
}

type notificationAPIFake struct {
	listFn     func(ctx context.Context) ([]domain.Notification, error)
	generateFn func(ctx context.Context) error
	markReadFn func(ctx context.Context, id string) error
}

func (f *notificationAPIFake) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *notificationAPIFake) GenerateNotifications(ctx context.Context) error {
	if f.generateFn == nil {
		return nil
	}
	return f.generateFn(ctx)
}

func (f *notificationAPIFake) MarkNotificationRead(ctx context.Context, id string) error {
	if f.markReadFn == nil {
		return nil
	}
	return f.markReadFn(ctx, id)
}

func newTestStore(t *testing.T, apis APIs) *Store {
	t.Helper()
	if apis.Documents == nil {
		apis.Documents = &documentAPIFake{}
	}
	if apis.Entities == nil {
		apis.Entities = &entityAPIFake{}
	}
	if apis.Deadlines == nil {
		apis.Deadlines = &deadlineAPIFake{}
	}
	if apis.Notifications == nil {
		apis.Notifications = &notificationAPIFake{}
	}
	return New(apis, slog.New(slog.DiscardHandler))
}

func documentIDs(docs []domain.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
