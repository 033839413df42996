package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/core/store"
)

// ProcessingWatcher polls a document's processing status until the backend
// reports a terminal state. Polling is bounded: a stuck backend job never
// keeps a watch alive forever.
type ProcessingWatcher struct {
	store     *store.Store
	documents ports.DocumentAPI
	deadlines ports.DeadlineAPI
	interval  time.Duration
	maxPolls  int
	logger    *slog.Logger
}

func NewProcessingWatcher(
	st *store.Store,
	documents ports.DocumentAPI,
	deadlines ports.DeadlineAPI,
	interval time.Duration,
	maxPolls int,
	logger *slog.Logger,
) *ProcessingWatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if maxPolls <= 0 {
		maxPolls = 150
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessingWatcher{
		store:     st,
		documents: documents,
		deadlines: deadlines,
		interval:  interval,
		maxPolls:  maxPolls,
		logger:    logger,
	}
}

// Watch polls until the document reaches a terminal status, applying every
// response to the store. On completion it refetches the document's deadlines,
// since extraction produces them server-side. Exceeding the poll budget
// returns ErrWatchTimeout and leaves local state as the last poll reported.
func (w *ProcessingWatcher) Watch(ctx context.Context, documentID string) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for poll := 0; poll < w.maxPolls; poll++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		upd, err := w.documents.GetProcessing(ctx, documentID)
		if err != nil {
			if domain.IsKind(err, domain.ErrNotFound) {
				// Deleted while processing; nothing left to watch.
				w.store.RemoveDocumentLocal(documentID)
				return nil
			}
			w.logger.Warn("processing poll failed", "document_id", documentID, "error", err)
			continue
		}

		w.store.ApplyProcessingUpdate(documentID, upd)

		if upd.Status.Terminal() {
			if upd.Status == domain.StatusCompleted {
				w.refreshDeadlines(ctx, documentID)
				w.refreshExtractedEntities(ctx, documentID)
			}
			return nil
		}
	}

	return domain.WrapError(domain.ErrWatchTimeout, "watch document", errPollBudgetExhausted)
}

var errPollBudgetExhausted = errors.New("poll budget exhausted")

func (w *ProcessingWatcher) refreshDeadlines(ctx context.Context, documentID string) {
	raws, err := w.deadlines.ListDeadlines(ctx, documentID)
	if err != nil {
		w.logger.Warn("post-processing deadline fetch failed", "document_id", documentID, "error", err)
		return
	}
	w.store.SetDocumentDeadlines(documentID, domain.NormalizeDeadlines(raws, time.Now()))
}

func (w *ProcessingWatcher) refreshExtractedEntities(ctx context.Context, documentID string) {
	entities, err := w.documents.GetExtractedEntities(ctx, documentID)
	if err != nil {
		w.logger.Warn("extracted entities fetch failed", "document_id", documentID, "error", err)
		return
	}
	if len(entities) == 0 {
		return
	}
	w.store.ApplyExtractedEntities(documentID, entities)
}
