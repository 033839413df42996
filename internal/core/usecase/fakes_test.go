package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/store"
)

type documentAPIFake struct {
	mu sync.Mutex

	listFn    func(ctx context.Context) ([]domain.Document, error)
	uploadFn  func(ctx context.Context, file io.Reader, fileName, entityID string) (domain.Document, error)
	processFn func(ctx context.Context, id string) (domain.ProcessingUpdate, error)
	extractFn func(ctx context.Context, id string) (json.RawMessage, error)

	// processQueue, when non-empty, answers GetProcessing calls in order and
	// keeps returning the last element once drained.
	processQueue []processReply
	processCalls int
}

type processReply struct {
	upd domain.ProcessingUpdate
	err error
}

func (f *documentAPIFake) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *documentAPIFake) GetProcessing(ctx context.Context, id string) (domain.ProcessingUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processCalls++
	if len(f.processQueue) > 0 {
		reply := f.processQueue[0]
		if len(f.processQueue) > 1 {
			f.processQueue = f.processQueue[1:]
		}
		return reply.upd, reply.err
	}
	if f.processFn != nil {
		return f.processFn(ctx, id)
	}
	return domain.ProcessingUpdate{}, nil
}

func (f *documentAPIFake) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processCalls
}

func (f *documentAPIFake) GetExtractedEntities(ctx context.Context, id string) (json.RawMessage, error) {
	if f.extractFn == nil {
		return nil, nil
	}
	return f.extractFn(ctx, id)
}

func (f *documentAPIFake) UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) (domain.Document, error) {
	return domain.Document{ID: id}, nil
}

func (f *documentAPIFake) DeleteDocument(ctx context.Context, id string) error { return nil }

func (f *documentAPIFake) UploadDocument(ctx context.Context, file io.Reader, fileName, entityID string) (domain.Document, error) {
	if f.uploadFn == nil {
		return domain.Document{}, nil
	}
	return f.uploadFn(ctx, file, fileName, entityID)
}

type entityAPIFake struct {
	listFn   func(ctx context.Context) ([]domain.Entity, error)
	createFn func(ctx context.Context, entity domain.Entity) (domain.Entity, error)
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
	return domain.Entity{ID: id}, nil
}

func (f *entityAPIFake) DeleteEntity(ctx context.Context, id string) error { return nil }

type deadlineAPIFake struct {
	listFn func(ctx context.Context, documentID string) ([]domain.RawDeadline, error)
}

func (f *deadlineAPIFake) ListDeadlines(ctx context.Context, documentID string) ([]domain.RawDeadline, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, documentID)
}

func (f *deadlineAPIFake) UpdateDeadline(ctx context.Context, documentID, deadlineID string, patch domain.DeadlinePatch) (domain.RawDeadline, error) {
	return domain.RawDeadline{ID: deadlineID, DocumentID: documentID}, nil
}

func (f *deadlineAPIFake) DeleteDeadline(ctx context.Context, documentID, deadlineID string) error {
	return nil
}

type notificationAPIFake struct {
	listFn     func(ctx context.Context) ([]domain.Notification, error)
	generateFn func(ctx context.Context) error
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
	return nil
}

type testDeps struct {
	store         *store.Store
	documents     *documentAPIFake
	entities      *entityAPIFake
	deadlines     *deadlineAPIFake
	notifications *notificationAPIFake
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	deps := testDeps{
		documents:     &documentAPIFake{},
		entities:      &entityAPIFake{},
		deadlines:     &deadlineAPIFake{},
		notifications: &notificationAPIFake{},
	}
	deps.store = store.New(store.APIs{
		Documents:     deps.documents,
		Entities:      deps.entities,
		Deadlines:     deps.deadlines,
		Notifications: deps.notifications,
	}, slog.New(slog.DiscardHandler))
	return deps
}
