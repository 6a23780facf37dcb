package workflowapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

// List fetches all documents drafted by the token's user.
func (c *Client) List(ctx context.Context, token string) ([]domain.Document, error) {
	var out struct {
		Documents []domain.Document `json:"documents"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents", token, nil, &out, "list documents"); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

func (c *Client) Get(ctx context.Context, token, id string) (*domain.Document, error) {
	var doc domain.Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents/"+url.PathEscape(id), token, nil, &doc, "get document"); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Create(ctx context.Context, token string, draft domain.DocumentDraft) (*domain.Document, error) {
	var doc domain.Document
	if err := c.doJSON(ctx, http.MethodPost, "/api/documents", token, draft, &doc, "create document"); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Update(ctx context.Context, token, id string, patch domain.DocumentPatch) (*domain.Document, error) {
	var doc domain.Document
	if err := c.doJSON(ctx, http.MethodPatch, "/api/documents/"+url.PathEscape(id), token, patch, &doc, "update document"); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Submit(ctx context.Context, token, id string, submission domain.DocumentSubmission) (*domain.Document, error) {
	var doc domain.Document
	if err := c.doJSON(ctx, http.MethodPost, "/api/documents/"+url.PathEscape(id)+"/submit", token, submission, &doc, "submit document"); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Delete(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/documents/"+url.PathEscape(id), token, nil, nil, "delete document")
}
