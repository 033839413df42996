package localfs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "snapshot.json")
	store, err := New(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte(`{"documents":[{"id":"doc-a"}]}`)
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("unexpected snapshot content: %s", got)
	}

	// Overwrite keeps only the latest state.
	if err := store.Save(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "{}" {
		t.Fatalf("expected latest snapshot, got %s", got)
	}
}

func TestLoadMissingSnapshotReportsNotFound(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
