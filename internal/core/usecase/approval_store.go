package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
	"github.com/ggh0223/lias-client-sub001/internal/core/ports"
)

// DocumentSteps is the optional per-document step list held for display.
type DocumentSteps struct {
	DocumentID string
	Steps      []domain.ApprovalStepSnapshot
}

// ApprovalStore owns the signed-in user's pending-step queue and an optional
// by-document step list. Step availability depends on engine-side sequencing
// rules this layer does not know, so every successful mutating action
// refetches the queue instead of patching it locally. Cancel is
// document-scoped and intentionally does not refresh the queue.
type ApprovalStore struct {
	gateway ports.ApprovalGateway

	mu            sync.RWMutex
	pending       []domain.ApprovalStepSnapshot
	documentSteps *DocumentSteps
	lastErr       string
	loading       bool

	notifier notifier
}

var _ ports.ApprovalService = (*ApprovalStore)(nil)

func NewApprovalStore(gateway ports.ApprovalGateway) *ApprovalStore {
	return &ApprovalStore{gateway: gateway}
}

// RefreshPending replaces the pending queue wholesale, preserving the
// engine's ordering.
func (s *ApprovalStore) RefreshPending(ctx context.Context, token string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	steps, err := s.gateway.PendingSteps(ctx, token)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.pending = steps
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return nil
}

// Approve records a positive APPROVAL decision on a step.
func (s *ApprovalStore) Approve(ctx context.Context, token, stepID, comment string) error {
	return s.act(ctx, token, "approve", func(ctx context.Context) error {
		return s.gateway.Approve(ctx, token, stepID, comment)
	})
}

// Reject records a negative APPROVAL decision. A non-empty comment is a
// local precondition: a whitespace-only comment fails before any remote
// call is made.
func (s *ApprovalStore) Reject(ctx context.Context, token, stepID, comment string) error {
	if strings.TrimSpace(comment) == "" {
		err := domain.WrapError(domain.ErrValidation, "reject", fmt.Errorf("rejection comment is required"))
		return s.fail(err)
	}
	return s.act(ctx, token, "reject", func(ctx context.Context) error {
		return s.gateway.Reject(ctx, token, stepID, comment)
	})
}

// CompleteAgreement closes an AGREEMENT step.
func (s *ApprovalStore) CompleteAgreement(ctx context.Context, token, stepID, comment string) error {
	return s.act(ctx, token, "complete agreement", func(ctx context.Context) error {
		return s.gateway.CompleteAgreement(ctx, token, stepID, comment)
	})
}

// CompleteImplementation closes an IMPLEMENTATION step.
func (s *ApprovalStore) CompleteImplementation(ctx context.Context, token, stepID, comment string) error {
	return s.act(ctx, token, "complete implementation", func(ctx context.Context) error {
		return s.gateway.CompleteImplementation(ctx, token, stepID, comment)
	})
}

// Cancel withdraws the whole document's in-flight approval. Callers that
// display cancellation status must reload their document lists separately.
func (s *ApprovalStore) Cancel(ctx context.Context, token, documentID, reason string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gateway.Cancel(ctx, token, documentID, reason); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return nil
}

// FetchDocumentSteps populates the by-document list, independent of the
// pending queue.
func (s *ApprovalStore) FetchDocumentSteps(ctx context.Context, token, documentID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	steps, err := s.gateway.StepsForDocument(ctx, token, documentID)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.documentSteps = &DocumentSteps{DocumentID: documentID, Steps: steps}
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return nil
}

// Pending returns a snapshot copy of the queue in engine order.
func (s *ApprovalStore) Pending() []domain.ApprovalStepSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ApprovalStepSnapshot, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *ApprovalStore) DocumentSteps() (string, []domain.ApprovalStepSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.documentSteps == nil {
		return "", nil, false
	}
	steps := make([]domain.ApprovalStepSnapshot, len(s.documentSteps.Steps))
	copy(steps, s.documentSteps.Steps)
	return s.documentSteps.DocumentID, steps, true
}

func (s *ApprovalStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *ApprovalStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ApprovalStore) Subscribe() (<-chan struct{}, func()) {
	return s.notifier.subscribe()
}

// act runs one mutating step action and, on success, refetches the pending
// queue so the local view reflects engine-side side effects, such as the
// next sequential approver becoming newly pending.
func (s *ApprovalStore) act(ctx context.Context, token, operation string, fn func(context.Context) error) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := fn(ctx); err != nil {
		return s.fail(err)
	}

	steps, err := s.gateway.PendingSteps(ctx, token)
	if err != nil {
		return s.fail(fmt.Errorf("%s succeeded but pending refresh failed: %w", operation, err))
	}

	s.mu.Lock()
	s.pending = steps
	s.lastErr = ""
	s.mu.Unlock()
	s.notifier.notify()
	return nil
}

func (s *ApprovalStore) fail(err error) error {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.notifier.notify()
	return err
}

func (s *ApprovalStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
