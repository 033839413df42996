// Package store holds the client-side mirror of the remote document system:
// documents, entities, deadlines, and notifications. The remote backend owns
// the durable truth; the store applies mutations optimistically where the
// operation allows it and rolls back when the remote rejects.
package store

import (
	"log/slog"
	"sync"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/core/ports"
)

type Collection string

const (
	CollectionDocuments     Collection = "documents"
	CollectionEntities      Collection = "entities"
	CollectionDeadlines     Collection = "deadlines"
	CollectionNotifications Collection = "notifications"
)

type ChangeKind string

const (
	ChangeReplace  ChangeKind = "replace"
	ChangeAdd      ChangeKind = "add"
	ChangeUpdate   ChangeKind = "update"
	ChangeRemove   ChangeKind = "remove"
	ChangeRollback ChangeKind = "rollback"
	ChangeRead     ChangeKind = "read"
)

// Change describes one committed store mutation. ID is empty for
// replace-all changes.
type Change struct {
	Collection Collection
	Kind       ChangeKind
	ID         string
}

// APIs bundles the remote services the store confirms mutations against.
type APIs struct {
	Documents     ports.DocumentAPI
	Entities      ports.EntityAPI
	Deadlines     ports.DeadlineAPI
	Notifications ports.NotificationAPI
}

// Store is the single writer of the client-side collections. Consumers read
// copies via getters or follow the change feed; only store methods mutate.
type Store struct {
	apis   APIs
	logger *slog.Logger

	mu            sync.Mutex
	documents     []domain.Document
	entities      []domain.Entity
	deadlines     []domain.Deadline
	notifications []domain.Notification
	unread        []domain.Notification

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int
}

func New(apis APIs, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		apis:   apis,
		logger: logger,
		unread: []domain.Notification{},
		subs:   make(map[int]chan Change),
	}
}

// Subscribe returns a change feed and a cancel function. Sends never block:
// a subscriber that falls behind misses events rather than stalling a
// mutation.
func (s *Store) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) publish(change Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// indexByID returns the position of the record with the given id, or -1.
func indexByID[R any](records []R, id string, idOf func(R) string) int {
	for i, record := range records {
		if idOf(record) == id {
			return i
		}
	}
	return -1
}

// removeAt deletes position i, returning the shrunk slice.
func removeAt[R any](records []R, i int) []R {
	out := make([]R, 0, len(records)-1)
	out = append(out, records[:i]...)
	return append(out, records[i+1:]...)
}

// insertAt reinserts a record at the position it was removed from, clamped
// in case concurrent mutations shrank the slice in the meantime.
func insertAt[R any](records []R, i int, record R) []R {
	if i > len(records) {
		i = len(records)
	}
	out := make([]R, 0, len(records)+1)
	out = append(out, records[:i]...)
	out = append(out, record)
	return append(out, records[i:]...)
}

// prepend puts the newest record first, matching the remote list order.
func prepend[R any](records []R, record R) []R {
	out := make([]R, 0, len(records)+1)
	out = append(out, record)
	return append(out, records...)
}
