package workflowapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

type commentPayload struct {
	Comment string `json:"comment,omitempty"`
}

type cancelPayload struct {
	Reason string `json:"reason"`
}

// PendingSteps fetches the token user's personal queue of steps awaiting
// action, in the engine's order.
func (c *Client) PendingSteps(ctx context.Context, token string) ([]domain.ApprovalStepSnapshot, error) {
	var out struct {
		Steps []domain.ApprovalStepSnapshot `json:"steps"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/approvals/pending", token, nil, &out, "pending steps"); err != nil {
		return nil, err
	}
	return out.Steps, nil
}

func (c *Client) StepsForDocument(ctx context.Context, token, documentID string) ([]domain.ApprovalStepSnapshot, error) {
	var out struct {
		Steps []domain.ApprovalStepSnapshot `json:"steps"`
	}
	path := "/api/documents/" + url.PathEscape(documentID) + "/steps"
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out, "document steps"); err != nil {
		return nil, err
	}
	return out.Steps, nil
}

func (c *Client) Approve(ctx context.Context, token, stepID, comment string) error {
	return c.stepAction(ctx, token, stepID, "approve", comment)
}

func (c *Client) Reject(ctx context.Context, token, stepID, comment string) error {
	return c.stepAction(ctx, token, stepID, "reject", comment)
}

func (c *Client) CompleteAgreement(ctx context.Context, token, stepID, comment string) error {
	return c.stepAction(ctx, token, stepID, "complete-agreement", comment)
}

func (c *Client) CompleteImplementation(ctx context.Context, token, stepID, comment string) error {
	return c.stepAction(ctx, token, stepID, "complete-implementation", comment)
}

func (c *Client) Cancel(ctx context.Context, token, documentID, reason string) error {
	path := "/api/documents/" + url.PathEscape(documentID) + "/cancel"
	return c.doJSON(ctx, http.MethodPost, path, token, cancelPayload{Reason: reason}, nil, "cancel document")
}

func (c *Client) stepAction(ctx context.Context, token, stepID, action, comment string) error {
	path := "/api/approvals/" + url.PathEscape(stepID) + "/" + action
	return c.doJSON(ctx, http.MethodPost, path, token, commentPayload{Comment: comment}, nil, action+" step")
}
