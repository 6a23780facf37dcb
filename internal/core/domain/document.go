package domain

import "time"

type DocumentStatus string

const (
	StatusDraft       DocumentStatus = "DRAFT"
	StatusPending     DocumentStatus = "PENDING"
	StatusApproved    DocumentStatus = "APPROVED"
	StatusRejected    DocumentStatus = "REJECTED"
	StatusCancelled   DocumentStatus = "CANCELLED"
	StatusImplemented DocumentStatus = "IMPLEMENTED"
)

// Document is the drafter-side view of one approval document. DocumentNumber
// and SubmittedAt are assigned by the workflow engine when the document
// leaves DRAFT; both stay empty before that.
type Document struct {
	ID             string         `json:"id"`
	FormVersionID  string         `json:"form_version_id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Status         DocumentStatus `json:"status"`
	DrafterID      string         `json:"drafter_id"`
	DocumentNumber string         `json:"document_number,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	SubmittedAt    *time.Time     `json:"submitted_at,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

func (d Document) IsEditable() bool {
	return d.Status == StatusDraft
}

// DocumentDraft is the payload for creating a new DRAFT document.
type DocumentDraft struct {
	FormVersionID string `json:"form_version_id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
}

// DocumentPatch carries partial updates for a DRAFT document. Nil fields are
// left unchanged by the engine.
type DocumentPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// DocumentSubmission moves a DRAFT into the approval line. The engine
// resolves assignee rules and freezes the step snapshots at this point.
type DocumentSubmission struct {
	ApprovalLineVersionID string `json:"approval_line_version_id"`
}
