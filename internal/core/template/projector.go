// Package template projects structured approval-line data into a free-form
// document template by substituting {{token}} placeholders.
package template

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
)

const (
	fallbackNoLine           = "line not assigned"
	fallbackNoApprovalSteps  = "no approval steps"
	fallbackNoAgreementSteps = "no agreement steps"
	fallbackNoImplementation = "no implementation steps"
	fallbackNoReference      = "no reference steps"

	decisionSeparator = " → "
	notifySeparator   = ", "
)

// Context carries the data a template may reference. Nil fields leave their
// tokens unreplaced so a partially-filled preview stays recognizable.
type Context struct {
	DocumentType *domain.DocumentTypeInfo
	ApprovalLine *domain.ApprovalLineTemplateVersion
	Now          time.Time
}

type resolver func(ctx Context) (string, bool)

// resolvers maps token names to their derivations. Tokens never nest, so a
// resolved value is inserted as literal text and never re-scanned.
var resolvers = map[string]resolver{
	"documentType": func(ctx Context) (string, bool) {
		if ctx.DocumentType == nil {
			return "", false
		}
		return ctx.DocumentType.Name, true
	},
	"documentNumberCode": func(ctx Context) (string, bool) {
		if ctx.DocumentType == nil {
			return "", false
		}
		return ctx.DocumentType.NumberCode, true
	},
	"approvalLineName": func(ctx Context) (string, bool) {
		if ctx.ApprovalLine == nil {
			return "", false
		}
		return ctx.ApprovalLine.Name, true
	},
	"approvalLineType": func(ctx Context) (string, bool) {
		if ctx.ApprovalLine == nil {
			return "", false
		}
		return ctx.ApprovalLine.Type, true
	},
	"approvalSteps": func(ctx Context) (string, bool) {
		if ctx.ApprovalLine == nil {
			return "", false
		}
		steps := sortedSteps(ctx.ApprovalLine.Steps)
		if len(steps) == 0 {
			return fallbackNoLine, true
		}
		parts := make([]string, 0, len(steps))
		for _, step := range steps {
			parts = append(parts, fmt.Sprintf("%s (%s)", stepName(step), step.StepType))
		}
		return strings.Join(parts, decisionSeparator), true
	},
	"approvalStepsOnly": func(ctx Context) (string, bool) {
		return joinStepNames(ctx, domain.StepApproval, decisionSeparator, fallbackNoApprovalSteps)
	},
	"agreementStepsOnly": func(ctx Context) (string, bool) {
		return joinStepNames(ctx, domain.StepAgreement, decisionSeparator, fallbackNoAgreementSteps)
	},
	"implementationSteps": func(ctx Context) (string, bool) {
		return joinStepNames(ctx, domain.StepImplementation, notifySeparator, fallbackNoImplementation)
	},
	"referenceSteps": func(ctx Context) (string, bool) {
		return joinStepNames(ctx, domain.StepReference, notifySeparator, fallbackNoReference)
	},
	"currentDate": func(ctx Context) (string, bool) {
		return ctx.Now.Format("2006-01-02"), true
	},
	"documentNumber": func(ctx Context) (string, bool) {
		return previewDocumentNumber(ctx), true
	},
}

// Project replaces every occurrence of each recognized {{token}} with its
// derived value in a single left-to-right scan. Unrecognized tokens, and
// recognized tokens whose context value is absent, are left untouched.
func Project(tmpl string, ctx Context) string {
	var out strings.Builder
	out.Grow(len(tmpl))

	rest := tmpl
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			out.WriteString(rest)
			return out.String()
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			out.WriteString(rest)
			return out.String()
		}
		end += open

		token := rest[open+2 : end]
		out.WriteString(rest[:open])

		if resolve, ok := resolvers[token]; ok {
			if value, present := resolve(ctx); present {
				out.WriteString(value)
			} else {
				out.WriteString(rest[open : end+2])
			}
		} else {
			out.WriteString(rest[open : end+2])
		}
		rest = rest[end+2:]
	}
}

// previewDocumentNumber synthesizes a display-only number from the type's
// number code and the low six digits of now's epoch milliseconds. It is
// never the engine-assigned document number and must not be persisted.
func previewDocumentNumber(ctx Context) string {
	code := "DOC"
	if ctx.DocumentType != nil && ctx.DocumentType.NumberCode != "" {
		code = ctx.DocumentType.NumberCode
	}
	return fmt.Sprintf("%s-%06d", code, ctx.Now.UnixMilli()%1_000_000)
}

func joinStepNames(ctx Context, stepType domain.StepType, separator, fallback string) (string, bool) {
	if ctx.ApprovalLine == nil {
		return "", false
	}
	var names []string
	for _, step := range sortedSteps(ctx.ApprovalLine.Steps) {
		if step.StepType == stepType {
			names = append(names, stepName(step))
		}
	}
	if len(names) == 0 {
		return fallback, true
	}
	return strings.Join(names, separator), true
}

func sortedSteps(steps []domain.ApprovalStepTemplate) []domain.ApprovalStepTemplate {
	out := make([]domain.ApprovalStepTemplate, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StepOrder < out[j].StepOrder })
	return out
}

func stepName(step domain.ApprovalStepTemplate) string {
	if step.DefaultApprover != "" {
		return step.DefaultApprover
	}
	return step.AssigneeRule
}
