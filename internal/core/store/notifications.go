package store

import (
	"context"
	"slices"
	"time"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

// Notifications returns a copy of the notification collection.
func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notifications)
}

func (s *Store) SetNotifications(notifications []domain.Notification) {
	s.mu.Lock()
	s.notifications = slices.Clone(notifications)
	s.recomputeUnreadLocked()
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionNotifications, Kind: ChangeReplace})
}

// UnreadNotifications returns the memoized unread projection. The slice is
// rebuilt under the store lock whenever a read flag changes, never lazily,
// so the reference is stable between mutations. Callers must not mutate it.
func (s *Store) UnreadNotifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// recomputeUnreadLocked rebuilds the projection. Caller holds s.mu.
func (s *Store) recomputeUnreadLocked() {
	unread := make([]domain.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	s.unread = unread
}

// MarkNotificationRead flips the read flag locally and recomputes the unread
// projection in the same critical section. The remote confirmation is
// fire-and-forget: read-state is not safety-critical, so there is no
// rollback path. Unknown and already-read ids are no-ops.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) {
	s.mu.Lock()
	i := indexByID(s.notifications, id, func(n domain.Notification) string { return n.ID })
	if i < 0 || s.notifications[i].Read {
		s.mu.Unlock()
		return
	}
	s.notifications[i].Read = true
	s.recomputeUnreadLocked()
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionNotifications, Kind: ChangeRead, ID: id})

	go s.confirmRead(context.WithoutCancel(ctx), id)
}

func (s *Store) confirmRead(ctx context.Context, id string) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.apis.Notifications.MarkNotificationRead(ctx, id); err != nil {
		s.logger.Warn("notification read confirmation failed", "notification_id", id, "error", err)
	}
}
