package ports

import (
	"context"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

// DocumentService is the inbound contract of the document lifecycle store.
type DocumentService interface {
	Load(ctx context.Context, token string) error
	LoadOne(ctx context.Context, token, id string) error
	Create(ctx context.Context, token string, draft domain.DocumentDraft) (*domain.Document, error)
	Update(ctx context.Context, token, id string, patch domain.DocumentPatch) (*domain.Document, error)
	Submit(ctx context.Context, token, id string, submission domain.DocumentSubmission) (*domain.Document, error)
	Delete(ctx context.Context, token, id string) error

	Documents() []domain.Document
	Focused() *domain.Document
	LastError() string
}

// ApprovalService is the inbound contract of the approval process store.
type ApprovalService interface {
	RefreshPending(ctx context.Context, token string) error
	Approve(ctx context.Context, token, stepID, comment string) error
	Reject(ctx context.Context, token, stepID, comment string) error
	CompleteAgreement(ctx context.Context, token, stepID, comment string) error
	CompleteImplementation(ctx context.Context, token, stepID, comment string) error
	Cancel(ctx context.Context, token, documentID, reason string) error
	FetchDocumentSteps(ctx context.Context, token, documentID string) error

	Pending() []domain.ApprovalStepSnapshot
	DocumentSteps() (string, []domain.ApprovalStepSnapshot, bool)
	LastError() string
}
