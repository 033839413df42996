package store

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

func documentID(d domain.Document) string { return d.ID }

// Documents returns a copy of the document collection.
func (s *Store) Documents() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.documents)
}

// SetDocuments replaces the collection after a full reload from the remote
// source. Always succeeds locally.
func (s *Store) SetDocuments(docs []domain.Document) {
	s.mu.Lock()
	s.documents = slices.Clone(docs)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDocuments, Kind: ChangeReplace})
}

// AddDocument prepends a record whose remote create already succeeded. Pure
// cache update; no remote call, no rollback path.
func (s *Store) AddDocument(doc domain.Document) {
	s.mu.Lock()
	s.documents = prepend(s.documents, doc)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDocuments, Kind: ChangeAdd, ID: doc.ID})
}

// UpsertDocument replaces the record with the same id, or prepends when it
// is absent. Used by the realtime INSERT path, where the record may already
// be present from the upload that triggered the event.
func (s *Store) UpsertDocument(doc domain.Document) {
	s.mu.Lock()
	kind := ChangeAdd
	if i := indexByID(s.documents, doc.ID, documentID); i >= 0 {
		s.documents[i] = doc
		kind = ChangeUpdate
	} else {
		s.documents = prepend(s.documents, doc)
	}
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDocuments, Kind: kind, ID: doc.ID})
}

// UpdateDocument is confirm-then-apply: the patch goes to the remote first,
// and only the server's canonical record ever lands in the local collection.
// A failure leaves the local record untouched.
func (s *Store) UpdateDocument(ctx context.Context, id string, patch domain.DocumentPatch) (domain.Document, error) {
	canonical, err := s.apis.Documents.UpdateDocument(ctx, id, patch)
	if err != nil {
		return domain.Document{}, domain.WrapError(domain.ErrRemoteUpdateFailed, "update document", err)
	}

	s.mu.Lock()
	if i := indexByID(s.documents, id, documentID); i >= 0 {
		s.documents[i] = canonical
	}
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDocuments, Kind: ChangeUpdate, ID: id})
	return canonical, nil
}

// DeleteDocument removes the record optimistically, then confirms with the
// remote. On rejection the removed record is reinserted at its prior
// position. Each call captures only its own record and index, so concurrent
// deletes of different ids roll back independently.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	i := indexByID(s.documents, id, documentID)
	if i < 0 {
		s.mu.Unlock()
		// Not cached locally; still forward the delete to the remote owner.
		if err := s.apis.Documents.DeleteDocument(ctx, id); err != nil {
			return domain.WrapError(domain.ErrRemoteDeleteFailed, "delete document", err)
		}
		return nil
	}
	removed := s.documents[i]
	s.documents = removeAt(s.documents, i)
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDocuments, Kind: ChangeRemove, ID: id})

	if err := s.apis.Documents.DeleteDocument(ctx, id); err != nil {
		s.mu.Lock()
		s.documents = insertAt(s.documents, i, removed)
		s.mu.Unlock()
		s.publish(Change{Collection: CollectionDocuments, Kind: ChangeRollback, ID: id})
		s.logger.Warn("document delete rolled back", "document_id", id, "error", err)
		return domain.WrapError(domain.ErrRemoteDeleteFailed, "delete document", err)
	}
	return nil
}

// RemoveDocumentLocal drops a record from the cache without a remote call.
// Used when the realtime feed reports a DELETE the remote already performed.
func (s *Store) RemoveDocumentLocal(id string) {
	s.mu.Lock()
	i := indexByID(s.documents, id, documentID)
	if i >= 0 {
		s.documents = removeAt(s.documents, i)
	}
	s.mu.Unlock()
	if i >= 0 {
		s.publish(Change{Collection: CollectionDocuments, Kind: ChangeRemove, ID: id})
	}
}

// ApplyExtractedEntities attaches the backend's extraction payload to the
// cached record. The payload stays opaque; extraction lives server-side.
func (s *Store) ApplyExtractedEntities(id string, entities json.RawMessage) bool {
	s.mu.Lock()
	i := indexByID(s.documents, id, documentID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.documents[i].ExtractedEntities = entities
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDocuments, Kind: ChangeUpdate, ID: id})
	return true
}

// ApplyProcessingUpdate folds one polled status response into the cached
// record. Progress never decreases while the document is processing, and a
// record already in a terminal state ignores further updates. Returns false
// when nothing changed.
func (s *Store) ApplyProcessingUpdate(id string, upd domain.ProcessingUpdate) bool {
	s.mu.Lock()
	i := indexByID(s.documents, id, documentID)
	if i < 0 || s.documents[i].ProcessingStatus.Terminal() {
		s.mu.Unlock()
		return false
	}

	doc := s.documents[i]
	if upd.Status != "" {
		doc.ProcessingStatus = upd.Status
	}
	if upd.Progress > doc.ProcessingProgress {
		doc.ProcessingProgress = upd.Progress
	}
	if upd.Error != "" {
		doc.ProcessingError = upd.Error
	}
	s.documents[i] = doc
	s.mu.Unlock()
	s.publish(Change{Collection: CollectionDocuments, Kind: ChangeUpdate, ID: id})
	return true
}
