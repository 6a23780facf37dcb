package domain

import "time"

type StepType string

const (
	StepAgreement      StepType = "AGREEMENT"
	StepApproval       StepType = "APPROVAL"
	StepImplementation StepType = "IMPLEMENTATION"
	StepReference      StepType = "REFERENCE"
)

type StepStatus string

const (
	StepPending   StepStatus = "PENDING"
	StepApproved  StepStatus = "APPROVED"
	StepRejected  StepStatus = "REJECTED"
	StepCompleted StepStatus = "COMPLETED"
)

// ApprovalStepSnapshot is one decision point of a document's approval line,
// frozen at submission time. StepType, StepOrder and the approver identity
// never change after creation; only Status, Comment and ApprovedAt move.
type ApprovalStepSnapshot struct {
	ID                 string     `json:"id"`
	DocumentID         string     `json:"document_id"`
	StepOrder          int        `json:"step_order"`
	StepType           StepType   `json:"step_type"`
	ApproverID         string     `json:"approver_id"`
	ApproverName       string     `json:"approver_name"`
	ApproverDepartment string     `json:"approver_department,omitempty"`
	ApproverPosition   string     `json:"approver_position,omitempty"`
	Status             StepStatus `json:"status"`
	IsRequired         bool       `json:"is_required"`
	Comment            string     `json:"comment,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
}

// Actionable reports whether this layer may route a user action to the step.
// REFERENCE steps are notify-only and never actioned.
func (s ApprovalStepSnapshot) Actionable() bool {
	return s.Status == StepPending && s.StepType != StepReference
}

// ApprovalStepTemplate is one entry of an approval-line template version.
// DefaultApprover is the resolved assignee name when the rule could already
// be evaluated, otherwise empty.
type ApprovalStepTemplate struct {
	StepType        StepType `json:"step_type"`
	StepOrder       int      `json:"step_order"`
	AssigneeRule    string   `json:"assignee_rule"`
	DefaultApprover string   `json:"default_approver,omitempty"`
}

// ApprovalLineTemplateVersion is immutable once loaded into this layer.
type ApprovalLineTemplateVersion struct {
	Name  string                 `json:"name"`
	Type  string                 `json:"type"`
	Steps []ApprovalStepTemplate `json:"steps"`
}

// DocumentTypeInfo is the template-projector view of a document type.
type DocumentTypeInfo struct {
	Name       string `json:"name"`
	NumberCode string `json:"number_code"`
}
