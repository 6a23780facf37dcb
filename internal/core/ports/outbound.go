package ports

import (
	"context"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

// DocumentGateway is the document half of the remote workflow engine. Every
// call carries the signed-in user's bearer token; the engine, not this
// layer, enforces status transitions such as "update only while DRAFT".
type DocumentGateway interface {
	List(ctx context.Context, token string) ([]domain.Document, error)
	Get(ctx context.Context, token, id string) (*domain.Document, error)
	Create(ctx context.Context, token string, draft domain.DocumentDraft) (*domain.Document, error)
	Update(ctx context.Context, token, id string, patch domain.DocumentPatch) (*domain.Document, error)
	Submit(ctx context.Context, token, id string, submission domain.DocumentSubmission) (*domain.Document, error)
	Delete(ctx context.Context, token, id string) error
}

// ApprovalGateway is the approval-step half of the remote workflow engine.
type ApprovalGateway interface {
	PendingSteps(ctx context.Context, token string) ([]domain.ApprovalStepSnapshot, error)
	StepsForDocument(ctx context.Context, token, documentID string) ([]domain.ApprovalStepSnapshot, error)
	Approve(ctx context.Context, token, stepID, comment string) error
	Reject(ctx context.Context, token, stepID, comment string) error
	CompleteAgreement(ctx context.Context, token, stepID, comment string) error
	CompleteImplementation(ctx context.Context, token, stepID, comment string) error
	Cancel(ctx context.Context, token, documentID, reason string) error
}

// StepEventSource delivers engine-side step-change notifications so pending
// queues can be refreshed without polling.
type StepEventSource interface {
	SubscribeStepChanges(ctx context.Context, handler func(ctx context.Context, userID string) error) error
}
