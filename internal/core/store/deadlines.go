package store

import (
	"context"
	"slices"
	"time"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func deadlineID(d domain.Deadline) string { return d.ID }

// Deadlines returns a copy of the normalized deadline collection.
func (s *Store) Deadlines() []domain.Deadline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.deadlines)
}

func (s *Store) SetDeadlines(deadlines []domain.Deadline) {
	s.mu.Lock()
	s.deadlines = slices.Clone(deadlines)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDeadlines, Kind: ChangeReplace})
}

// SetDocumentDeadlines replaces the slice belonging to one document, keeping
// every other document's deadlines in place. Used after a per-document fetch
// (initial load and the post-processing refresh).
func (s *Store) SetDocumentDeadlines(documentID string, deadlines []domain.Deadline) {
	s.mu.Lock()
	kept := make([]domain.Deadline, 0, len(s.deadlines)+len(deadlines))
	for _, d := range s.deadlines {
		if d.DocumentID != documentID {
			kept = append(kept, d)
		}
	}
	s.deadlines = append(kept, deadlines...)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDeadlines, Kind: ChangeReplace, ID: documentID})
}

// UpdateDeadline is confirm-then-apply. The server returns the canonical raw
// record, which is re-normalized before it replaces the local copy.
func (s *Store) UpdateDeadline(ctx context.Context, documentID, id string, patch domain.DeadlinePatch) (domain.Deadline, error) {
	raw, err := s.apis.Deadlines.UpdateDeadline(ctx, documentID, id, patch)
	if err != nil {
		return domain.Deadline{}, domain.WrapError(domain.ErrRemoteUpdateFailed, "update deadline", err)
	}
	canonical := domain.NormalizeDeadline(raw, time.Now())

	s.mu.Lock()
	if i := indexByID(s.deadlines, id, deadlineID); i >= 0 {
		s.deadlines[i] = canonical
	}
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDeadlines, Kind: ChangeUpdate, ID: id})
	return canonical, nil
}

// DeleteDeadline removes optimistically and reinserts on remote rejection.
func (s *Store) DeleteDeadline(ctx context.Context, documentID, id string) error {
	s.mu.Lock()
	i := indexByID(s.deadlines, id, deadlineID)
	if i < 0 {
		s.mu.Unlock()
		if err := s.apis.Deadlines.DeleteDeadline(ctx, documentID, id); err != nil {
			return domain.WrapError(domain.ErrRemoteDeleteFailed, "delete deadline", err)
		}
		return nil
	}
	removed := s.deadlines[i]
	s.deadlines = removeAt(s.deadlines, i)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDeadlines, Kind: ChangeRemove, ID: id})

	if err := s.apis.Deadlines.DeleteDeadline(ctx, documentID, id); err != nil {
		s.mu.Lock()
		s.deadlines = insertAt(s.deadlines, i, removed)
		s.mu.Unlock()
		s.publish(Change{Collection: CollectionDeadlines, Kind: ChangeRollback, ID: id})
		s.logger.Warn("deadline delete rolled back", "deadline_id", id, "error", err)
		return domain.WrapError(domain.ErrRemoteDeleteFailed, "delete deadline", err)
	}
	return nil
}
