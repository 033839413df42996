package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
	"github.com/DocuuAI/docsyncd/internal/infrastructure/auth"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := New(server.URL, auth.NewStaticTokenSource("token-123"), Options{})
	return client, server
}

func TestClientAttachesAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(map[string]any{"documents": []any{}})
	}))

	if _, err := client.ListDocuments(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("expected bearer token attached, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("expected a request id on every call")
	}
}

func TestClientReportsRequestDurations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[]}`))
	}))
	t.Cleanup(server.Close)

	var operations []string
	client := New(server.URL, auth.NewStaticTokenSource("token-123"), Options{
		ObserveRequest: func(operation string, _ time.Duration) {
			operations = append(operations, operation)
		},
	})

	if _, err := client.ListDocuments(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(operations) != 1 || operations[0] != "GET /documents" {
		t.Fatalf("unexpected observed operations: %v", operations)
	}
}

func TestListDocumentsDecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"documents":[{"id":"doc-a","file_name":"invoice.pdf","processing_status":"completed"}]}`))
	}))

	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-a" || docs[0].ProcessingStatus != domain.StatusCompleted {
		t.Fatalf("unexpected documents: %+v", docs)
	}
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{status: http.StatusUnauthorized, want: domain.ErrUnauthorized},
		{status: http.StatusForbidden, want: domain.ErrUnauthorized},
		{status: http.StatusNotFound, want: domain.ErrNotFound},
		{status: http.StatusBadGateway, want: domain.ErrRemoteUnavailable},
		{status: http.StatusInternalServerError, want: domain.ErrRemoteUnavailable},
	}

	for _, tc := range cases {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tc.status)
		}))
		_, err := client.ListDocuments(context.Background())
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v in chain, got %v", tc.status, tc.want, err)
		}
	}
}

func TestStatusCodeMappingClientError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "field file_name is required", http.StatusUnprocessableEntity)
	}))

	_, err := client.UpdateDocument(context.Background(), "doc-a", domain.DocumentPatch{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	for _, kind := range []error{domain.ErrUnauthorized, domain.ErrNotFound, domain.ErrRemoteUnavailable} {
		if errors.Is(err, kind) {
			t.Fatalf("expected a plain client error, got kind %v", kind)
		}
	}
	if !strings.Contains(err.Error(), "422") {
		t.Fatalf("expected the status code in the message, got %v", err)
	}
}

func TestUnreachableBackendMapsToRemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listens anymore
	client := New(server.URL, auth.NewStaticTokenSource("token-123"), Options{})

	_, err := client.ListDocuments(context.Background())
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestTokenFailureShortCircuitsRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	t.Cleanup(server.Close)
	client := New(server.URL, auth.NewStaticTokenSource(""), Options{})

	_, err := client.ListDocuments(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no request without a token, got %d", requests)
	}
}

func TestUpdateDocumentSendsPatchAndReturnsCanonical(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/documents/doc-a" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		if patch["file_name"] != "renamed.pdf" {
			t.Errorf("unexpected patch payload: %v", patch)
		}
		if _, ok := patch["library"]; ok {
			t.Errorf("expected nil fields omitted, got %v", patch)
		}
		w.Write([]byte(`{"id":"doc-a","file_name":"renamed.pdf","library":"tax","processing_status":"completed"}`))
	}))

	name := "renamed.pdf"
	got, err := client.UpdateDocument(context.Background(), "doc-a", domain.DocumentPatch{FileName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Library != "tax" {
		t.Fatalf("expected the canonical record decoded, got %+v", got)
	}
}

func TestUploadDocumentSendsMultipartForm(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/documents/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("entity_id"); got != "e1" {
			t.Errorf("unexpected entity_id %q", got)
		}
		if got := r.FormValue("file_name"); got != "invoice.pdf" {
			t.Errorf("unexpected file_name %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			file.Close()
			if header.Filename != "invoice.pdf" {
				t.Errorf("unexpected filename %q", header.Filename)
			}
		}
		w.Write([]byte(`{"document":{"id":"doc-new","file_name":"invoice.pdf","processing_status":"pending"}}`))
	}))

	doc, err := client.UploadDocument(context.Background(), strings.NewReader("%PDF-1.4"), "invoice.pdf", "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "doc-new" || doc.ProcessingStatus != domain.StatusPending {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestGetProcessingDecodesStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/doc-a" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"processing_status":"processing","processing_progress":70}`))
	}))

	upd, err := client.GetProcessing(context.Background(), "doc-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.Status != domain.StatusProcessing || upd.Progress != 70 {
		t.Fatalf("unexpected update: %+v", upd)
	}
}

func TestDeleteDocumentIssuesDelete(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteDocument(context.Background(), "doc-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/documents/doc-a" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
}
