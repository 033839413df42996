package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func TestSetDocumentDeadlinesReplacesOnlyThatDocument(t *testing.T) {
	s := newTestStore(t, APIs{})
	s.SetDeadlines([]domain.Deadline{
		{ID: "d1", DocumentID: "doc-a", Title: "File return"},
		{ID: "d2", DocumentID: "doc-b", Title: "Renew license"},
		{ID: "d3", DocumentID: "doc-a", Title: "Pay advance tax"},
	})

	s.SetDocumentDeadlines("doc-a", []domain.Deadline{
		{ID: "d4", DocumentID: "doc-a", Title: "File revised return"},
	})

	got := s.Deadlines()
	if len(got) != 2 {
		t.Fatalf("expected 2 deadlines, got %d: %+v", len(got), got)
	}
	if got[0].ID != "d2" || got[1].ID != "d4" {
		t.Fatalf("expected doc-b kept and doc-a replaced, got %+v", got)
	}
}

func TestUpdateDeadlineNormalizesServerRecord(t *testing.T) {
	due := time.Now().Add(72 * time.Hour)
	api := &deadlineAPIFake{
		updateFn: func(ctx context.Context, documentID, deadlineID string, patch domain.DeadlinePatch) (domain.RawDeadline, error) {
			// Server echoes the canonical raw form with nullable fields unset.
			return domain.RawDeadline{ID: deadlineID, DocumentID: documentID, DueDate: &due}, nil
		},
	}
	s := newTestStore(t, APIs{Deadlines: api})
	s.SetDeadlines([]domain.Deadline{
		{ID: "d1", DocumentID: "doc-a", Title: "File return", Priority: domain.PriorityHigh},
	})

	got, err := s.UpdateDeadline(context.Background(), "doc-a", "d1", domain.DeadlinePatch{Title: "File return", DueDate: &due})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "No title" {
		t.Fatalf("expected normalized fallback title, got %q", got.Title)
	}
	if got.Priority != domain.PriorityMedium {
		t.Fatalf("expected null confidence to normalize to medium, got %q", got.Priority)
	}
	if stored := s.Deadlines()[0]; stored.Title != "No title" {
		t.Fatalf("expected local copy replaced with the normalized record, got %+v", stored)
	}
}

func TestUpdateDeadlineFailureLeavesLocalUntouched(t *testing.T) {
	api := &deadlineAPIFake{
		updateFn: func(ctx context.Context, documentID, deadlineID string, patch domain.DeadlinePatch) (domain.RawDeadline, error) {
			return domain.RawDeadline{}, errors.New("conflict")
		},
	}
	s := newTestStore(t, APIs{Deadlines: api})
	s.SetDeadlines([]domain.Deadline{
		{ID: "d1", DocumentID: "doc-a", Title: "File return"},
	})

	_, err := s.UpdateDeadline(context.Background(), "doc-a", "d1", domain.DeadlinePatch{Title: "Changed"})
	if !errors.Is(err, domain.ErrRemoteUpdateFailed) {
		t.Fatalf("expected ErrRemoteUpdateFailed, got %v", err)
	}
	if got := s.Deadlines()[0].Title; got != "File return" {
		t.Fatalf("expected local record untouched, got %q", got)
	}
}

func TestDeleteDeadlineRollsBackOnRemoteFailure(t *testing.T) {
	api := &deadlineAPIFake{
		deleteFn: func(ctx context.Context, documentID, deadlineID string) error {
			return errors.New("still referenced")
		},
	}
	s := newTestStore(t, APIs{Deadlines: api})
	s.SetDeadlines([]domain.Deadline{
		{ID: "d1", DocumentID: "doc-a"},
		{ID: "d2", DocumentID: "doc-a"},
	})

	err := s.DeleteDeadline(context.Background(), "doc-a", "d1")
	if !errors.Is(err, domain.ErrRemoteDeleteFailed) {
		t.Fatalf("expected ErrRemoteDeleteFailed, got %v", err)
	}
	got := s.Deadlines()
	if len(got) != 2 || got[0].ID != "d1" {
		t.Fatalf("expected record restored at its original position, got %+v", got)
	}
}
