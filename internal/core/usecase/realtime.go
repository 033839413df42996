package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/core/store"
)

var errMissingRecord = errors.New("event carries no record")

// RealtimeApplier folds feed events into the store. INSERT upserts by id,
// because the uploading client usually cached the record before the feed
// echoes it back. DELETE removes locally only: the remote already deleted,
// so re-issuing the delete would be wrong.
type RealtimeApplier struct {
	store  *store.Store
	logger *slog.Logger
}

func NewRealtimeApplier(st *store.Store, logger *slog.Logger) *RealtimeApplier {
	if logger == nil {
		logger = slog.Default()
	}
	return &RealtimeApplier{store: st, logger: logger}
}

func (a *RealtimeApplier) HandleEvent(_ context.Context, event ports.RealtimeEvent) error {
	switch event.Type {
	case ports.RealtimeInsert:
		if event.Record == nil {
			return domain.WrapError(domain.ErrInvalidInput, "realtime insert", errMissingRecord)
		}
		a.store.UpsertDocument(*event.Record)
	case ports.RealtimeDelete:
		if event.Old == nil {
			return domain.WrapError(domain.ErrInvalidInput, "realtime delete", errMissingRecord)
		}
		a.store.RemoveDocumentLocal(event.Old.ID)
	default:
		a.logger.Debug("realtime event ignored", "type", event.Type)
	}
	return nil
}
