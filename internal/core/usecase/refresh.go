package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/core/store"
)

// RefreshUseCase performs full reloads of the client collections from the
// remote source of truth.
type RefreshUseCase struct {
	store         *store.Store
	documents     ports.DocumentAPI
	entities      ports.EntityAPI
	deadlines     ports.DeadlineAPI
	notifications ports.NotificationAPI
	logger        *slog.Logger
}

func NewRefreshUseCase(
	st *store.Store,
	documents ports.DocumentAPI,
	entities ports.EntityAPI,
	deadlines ports.DeadlineAPI,
	notifications ports.NotificationAPI,
	logger *slog.Logger,
) *RefreshUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshUseCase{
		store:         st,
		documents:     documents,
		entities:      entities,
		deadlines:     deadlines,
		notifications: notifications,
		logger:        logger,
	}
}

// LoadAll replaces every collection. A collection-level fetch failure aborts
// the reload; a per-document deadline fetch failure is logged and skipped so
// one broken document does not empty the deadline view.
func (uc *RefreshUseCase) LoadAll(ctx context.Context) error {
	docs, err := uc.documents.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	uc.store.SetDocuments(docs)

	entities, err := uc.entities.ListEntities(ctx)
	if err != nil {
		return fmt.Errorf("load entities: %w", err)
	}
	uc.store.SetEntities(entities)

	now := time.Now()
	all := make([]domain.Deadline, 0, len(docs))
	for _, doc := range docs {
		raws, err := uc.deadlines.ListDeadlines(ctx, doc.ID)
		if err != nil {
			uc.logger.Warn("deadline load skipped", "document_id", doc.ID, "error", err)
			continue
		}
		all = append(all, domain.NormalizeDeadlines(raws, now)...)
	}
	uc.store.SetDeadlines(all)

	return uc.ReloadNotifications(ctx)
}

// ReloadNotifications replaces the notification collection.
func (uc *RefreshUseCase) ReloadNotifications(ctx context.Context) error {
	notifications, err := uc.notifications.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}
	uc.store.SetNotifications(notifications)
	return nil
}

// GenerateNotifications asks the backend to produce fresh reminders, then
// reloads the collection.
func (uc *RefreshUseCase) GenerateNotifications(ctx context.Context) error {
	if err := uc.notifications.GenerateNotifications(ctx); err != nil {
		return fmt.Errorf("generate notifications: %w", err)
	}
	return uc.ReloadNotifications(ctx)
}
