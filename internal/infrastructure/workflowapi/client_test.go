package workflowapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
	"github.com/ggh0223/lias-client-sub001/internal/infrastructure/resilience"
)

func newTestClient(serverURL string) *Client {
	cfg := resilience.DefaultConfig()
	cfg.RetryMaxAttempts = 1
	cfg.BreakerEnabled = false
	return New(serverURL, resilience.NewExecutor(cfg), nil)
}

func TestClientSendsBearerToken(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"documents":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.List(context.Background(), "tok-123"); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if captured != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", captured)
	}
}

func TestClientDecodesDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"documents":[{"id":"d-1","title":"one","status":"DRAFT"}]}`))
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).List(context.Background(), "tok")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "d-1" || docs[0].Status != domain.StatusDraft {
		t.Fatalf("unexpected documents: %+v", docs)
	}
}

func TestClientSubmitPostsPayload(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/d-1/submit" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"id":"d-1","status":"PENDING","document_number":"EXP-1"}`))
	}))
	defer server.Close()

	doc, err := newTestClient(server.URL).Submit(context.Background(), "tok", "d-1", domain.DocumentSubmission{ApprovalLineVersionID: "line-7"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if payload["approval_line_version_id"] != "line-7" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if doc.Status != domain.StatusPending || doc.DocumentNumber != "EXP-1" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestClientMapsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).List(context.Background(), "stale")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(err.Error(), "token expired") {
		t.Fatalf("expected engine message preserved, got %v", err)
	}
}

func TestClientMapsValidationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"title is required"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Create(context.Background(), "tok", domain.DocumentDraft{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if domain.IsKind(err, domain.ErrRemote) {
		t.Fatalf("expected validation failure not to read as remote, got %v", err)
	}
	if !strings.Contains(err.Error(), "title is required") {
		t.Fatalf("expected engine message preserved, got %v", err)
	}
}

func TestClientMapsUnprocessableAsValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"approval line has no steps"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Submit(context.Background(), "tok", "d-1", domain.DocumentSubmission{ApprovalLineVersionID: "line-1"})
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClientMapsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such document"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Get(context.Background(), "tok", "missing")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientWrapsRetryableStatusAsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Approve(context.Background(), "tok", "s-1", "ok")
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
}

func TestClientMapsPlainFailureAsRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"document is not editable"}`, http.StatusConflict)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Update(context.Background(), "tok", "d-1", domain.DocumentPatch{})
	if !domain.IsKind(err, domain.ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
	if !strings.Contains(err.Error(), "document is not editable") {
		t.Fatalf("expected engine message preserved, got %v", err)
	}
}

func TestClientRetriesRetryableStatus(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			http.Error(w, "try again", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"steps":[]}`))
	}))
	defer server.Close()

	cfg := resilience.DefaultConfig()
	cfg.RetryMaxAttempts = 2
	cfg.RetryInitialBackoff = 1
	cfg.BreakerEnabled = false
	client := New(server.URL, resilience.NewExecutor(cfg), nil)

	if _, err := client.PendingSteps(context.Background(), "tok"); err != nil {
		t.Fatalf("PendingSteps() error = %v", err)
	}
	if hits != 2 {
		t.Fatalf("expected retry, hits=%d", hits)
	}
}

func TestHTTPStatusErrorMessageFallsBackToBody(t *testing.T) {
	err := &HTTPStatusError{Operation: "get document", Status: "500 Internal Server Error", StatusCode: 500, Body: "plain text failure"}
	if err.Message() != "plain text failure" {
		t.Fatalf("unexpected message: %q", err.Message())
	}
	empty := &HTTPStatusError{Operation: "get document", Status: "500 Internal Server Error", StatusCode: 500}
	if !strings.Contains(empty.Error(), "500") {
		t.Fatalf("expected status in error, got %q", empty.Error())
	}
}
