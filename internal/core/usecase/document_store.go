package usecase

import (
	"context"
	"sync"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
	"github.com/ggh0223/lias-client-sub001/internal/core/ports"
)

// DocumentStore owns the in-memory view of the signed-in user's documents
// and the single focused document. All mutations funnel through its
// operations; consumers read snapshots and may subscribe for change
// notifications. A failed remote call never partially mutates published
// state: either the whole replace happens or none of it does.
type DocumentStore struct {
	gateway ports.DocumentGateway

	mu        sync.RWMutex
	documents []domain.Document
	focused   *domain.Document
	lastErr   string
	loading   bool

	notifier notifier
}

var _ ports.DocumentService = (*DocumentStore)(nil)

func NewDocumentStore(gateway ports.DocumentGateway) *DocumentStore {
	return &DocumentStore{gateway: gateway}
}

// Load replaces the document collection wholesale.
func (s *DocumentStore) Load(ctx context.Context, token string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	docs, err := s.gateway.List(ctx, token)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.documents = docs
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return nil
}

// LoadOne fetches one document and sets it as the focused document.
func (s *DocumentStore) LoadOne(ctx context.Context, token, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	doc, err := s.gateway.Get(ctx, token, id)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.focused = doc
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return nil
}

// Create drafts a new document and prepends it to the collection.
func (s *DocumentStore) Create(ctx context.Context, token string, draft domain.DocumentDraft) (*domain.Document, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	doc, err := s.gateway.Create(ctx, token, draft)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.documents = append([]domain.Document{*doc}, s.documents...)
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return doc, nil
}

// Update patches a DRAFT document. The engine enforces the DRAFT-only rule;
// on success the matching collection entry is replaced in place, and the
// focused document too when it addresses the same id. The collection is
// always written before the focus so a reader never sees a focus pointing
// at an entry absent from the collection.
func (s *DocumentStore) Update(ctx context.Context, token, id string, patch domain.DocumentPatch) (*domain.Document, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	doc, err := s.gateway.Update(ctx, token, id, patch)
	if err != nil {
		return nil, s.fail(err)
	}
	s.replaceDocument(*doc)
	return doc, nil
}

// Submit moves a DRAFT into its approval line (DRAFT -> PENDING engine-side)
// and replaces the local entry with the engine's post-submission view, which
// now carries the document number and submission timestamp.
func (s *DocumentStore) Submit(ctx context.Context, token, id string, submission domain.DocumentSubmission) (*domain.Document, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	doc, err := s.gateway.Submit(ctx, token, id, submission)
	if err != nil {
		return nil, s.fail(err)
	}
	s.replaceDocument(*doc)
	return doc, nil
}

// Delete removes a DRAFT document, clearing the focus when it addressed the
// deleted document.
func (s *DocumentStore) Delete(ctx context.Context, token, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gateway.Delete(ctx, token, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	kept := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	s.documents = kept
	if s.focused != nil && s.focused.ID == id {
		s.focused = nil
	}
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return nil
}

// Documents returns a snapshot copy of the collection.
func (s *DocumentStore) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

func (s *DocumentStore) Focused() *domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focused == nil {
		return nil
	}
	doc := *s.focused
	return &doc
}

func (s *DocumentStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *DocumentStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers a change-notification channel. The returned cancel
// func must be called when the consumer goes away.
func (s *DocumentStore) Subscribe() (<-chan struct{}, func()) {
	return s.notifier.subscribe()
}

func (s *DocumentStore) replaceDocument(doc domain.Document) {
	s.mu.Lock()
	for i := range s.documents {
		if s.documents[i].ID == doc.ID {
			s.documents[i] = doc
			break
		}
	}
	if s.focused != nil && s.focused.ID == doc.ID {
		s.focused = &doc
	}
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
}

func (s *DocumentStore) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.notifier.notify()
	return err
}

func (s *DocumentStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
