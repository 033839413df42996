package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/core/store"
)

// UploadUseCase forwards a file to the backend and caches the canonical
// record the backend returns. Storage and extraction are the backend's job;
// this side only carries bytes and state.
type UploadUseCase struct {
	store     *store.Store
	documents ports.DocumentAPI
	watcher   *ProcessingWatcher
	logger    *slog.Logger
}

func NewUploadUseCase(st *store.Store, documents ports.DocumentAPI, watcher *ProcessingWatcher, logger *slog.Logger) *UploadUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadUseCase{store: st, documents: documents, watcher: watcher, logger: logger}
}

// Upload sends the file, prepends the returned record to the local
// collection, and starts a background processing watch when the backend
// reports the document as not yet terminal.
func (uc *UploadUseCase) Upload(ctx context.Context, file io.Reader, fileName, entityID string) (domain.Document, error) {
	doc, err := uc.documents.UploadDocument(ctx, file, fileName, entityID)
	if err != nil {
		return domain.Document{}, fmt.Errorf("upload document: %w", err)
	}

	uc.store.AddDocument(doc)

	if uc.watcher != nil && !doc.ProcessingStatus.Terminal() {
		watchCtx := context.WithoutCancel(ctx)
		go func() {
			if err := uc.watcher.Watch(watchCtx, doc.ID); err != nil {
				uc.logger.Warn("processing watch ended", "document_id", doc.ID, "error", err)
			}
		}()
	}
	return doc, nil
}
