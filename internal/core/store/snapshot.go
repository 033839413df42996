package store

import (
	"slices"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

// Snapshot is a serializable copy of the full store state, used for the
// optional on-disk persistence between runs.
type Snapshot struct {
	Documents     []domain.Document     `json:"documents"`
	Entities      []domain.Entity       `json:"entities"`
	Deadlines     []domain.Deadline     `json:"deadlines"`
	Notifications []domain.Notification `json:"notifications"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Documents:     slices.Clone(s.documents),
		Entities:      slices.Clone(s.entities),
		Deadlines:     slices.Clone(s.deadlines),
		Notifications: slices.Clone(s.notifications),
	}
}

// Restore replaces every collection from a snapshot, recomputing the unread
// projection. The snapshot is a stale cache; callers follow up with a full
// refresh from the remote source.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	s.documents = slices.Clone(snap.Documents)
	s.entities = slices.Clone(snap.Entities)
	s.deadlines = slices.Clone(snap.Deadlines)
	s.notifications = slices.Clone(snap.Notifications)
	s.recomputeUnreadLocked()
	s.mu.Unlock()

	for _, c := range []Collection{CollectionDocuments, CollectionEntities, CollectionDeadlines, CollectionNotifications} {
		s.publish(Change{Collection: c, Kind: ChangeReplace})
	}
}

// Sizes reports the current collection lengths, for the metrics gauges.
func (s *Store) Sizes() map[Collection]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[Collection]int{
		CollectionDocuments:     len(s.documents),
		CollectionEntities:      len(s.entities),
		CollectionDeadlines:     len(s.deadlines),
		CollectionNotifications: len(s.notifications),
	}
}
