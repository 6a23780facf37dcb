package httpadapter

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/ggh0223/lias-client-sub001/internal/config"
	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
	"github.com/ggh0223/lias-client-sub001/internal/core/pagination"
	"github.com/ggh0223/lias-client-sub001/internal/core/template"
	"github.com/ggh0223/lias-client-sub001/internal/infrastructure/report"
	"github.com/ggh0223/lias-client-sub001/internal/observability/metrics"
)

// TextExtractor turns an uploaded file into draft content.
type TextExtractor interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

type Router struct {
	cfg       config.Config
	sessions  *Sessions
	extractor TextExtractor
	metrics   *metrics.HTTPServerMetrics
	now       func() time.Time
}

func NewRouter(cfg config.Config, sessions *Sessions, extractor TextExtractor, m *metrics.HTTPServerMetrics) *Router {
	return &Router{
		cfg:       cfg,
		sessions:  sessions,
		extractor: extractor,
		metrics:   m,
		now:       time.Now,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	mux.HandleFunc("GET /v1/documents", rt.listDocuments)
	mux.HandleFunc("POST /v1/documents", rt.createDocument)
	mux.HandleFunc("POST /v1/documents/import", rt.importDocument)
	mux.HandleFunc("GET /v1/documents/{id}", rt.getDocument)
	mux.HandleFunc("PATCH /v1/documents/{id}", rt.updateDocument)
	mux.HandleFunc("DELETE /v1/documents/{id}", rt.deleteDocument)
	mux.HandleFunc("POST /v1/documents/{id}/submit", rt.submitDocument)
	mux.HandleFunc("POST /v1/documents/{id}/cancel", rt.cancelDocument)
	mux.HandleFunc("GET /v1/documents/{id}/steps", rt.documentSteps)

	mux.HandleFunc("GET /v1/approvals/pending", rt.pendingSteps)
	mux.HandleFunc("POST /v1/approvals/{stepId}/{action}", rt.stepAction)

	mux.HandleFunc("GET /v1/reports/documents.xlsx", rt.documentRegister)
	mux.HandleFunc("POST /v1/templates/preview", rt.previewTemplate)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, time.Duration(rt.cfg.APIQueueWaitMillis)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = metricsMiddleware(handler, rt.metrics, "gateway")
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type pageMeta struct {
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalItems int                `json:"total_items"`
	TotalPages int                `json:"total_pages"`
	FirstItem  int                `json:"first_item"`
	LastItem   int                `json:"last_item"`
	Window     []pagination.Entry `json:"window"`
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}
	if err := session.Documents.Load(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	docs := session.Documents.Documents()
	page, pageSize := rt.pageParams(r)
	totalItems := len(docs)
	totalPages := pagination.TotalPages(totalItems, pageSize)
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start < 0 || start > totalItems {
		start = 0
	}
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	first, last := pagination.ItemRange(page, totalItems, pageSize)
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": docs[start:end],
		"pagination": pageMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: totalItems,
			TotalPages: totalPages,
			FirstItem:  first,
			LastItem:   last,
			Window:     pagination.Window(page, totalItems, pageSize),
		},
	})
}

func (rt *Router) createDocument(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}

	var draft domain.DocumentDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(draft.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	doc, err := session.Documents.Create(r.Context(), token, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}
	if err := session.Documents.LoadOne(r.Context(), token, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Documents.Focused())
}

func (rt *Router) updateDocument(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}

	var patch domain.DocumentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	doc, err := session.Documents.Update(r.Context(), token, r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}
	if err := session.Documents.Delete(r.Context(), token, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) submitDocument(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}

	var submission domain.DocumentSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	doc, err := session.Documents.Submit(r.Context(), token, r.PathValue("id"), submission)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) cancelDocument(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if err := session.Approvals.Cancel(r.Context(), token, r.PathValue("id"), req.Reason); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) documentSteps(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}
	documentID := r.PathValue("id")
	if err := session.Approvals.FetchDocumentSteps(r.Context(), token, documentID); err != nil {
		writeError(w, err)
		return
	}
	id, steps, _ := session.Approvals.DocumentSteps()
	writeJSON(w, http.StatusOK, map[string]any{"document_id": id, "steps": steps})
}

func (rt *Router) pendingSteps(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}
	if err := session.Approvals.RefreshPending(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"steps": session.Approvals.Pending()})
}

func (rt *Router) stepAction(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
	}

	stepID := r.PathValue("stepId")
	ctx := r.Context()

	var err error
	switch r.PathValue("action") {
	case "approve":
		err = session.Approvals.Approve(ctx, token, stepID, req.Comment)
	case "reject":
		err = session.Approvals.Reject(ctx, token, stepID, req.Comment)
	case "complete-agreement":
		err = session.Approvals.CompleteAgreement(ctx, token, stepID, req.Comment)
	case "complete-implementation":
		err = session.Approvals.CompleteImplementation(ctx, token, stepID, req.Comment)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown step action"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"steps": session.Approvals.Pending()})
}

func (rt *Router) importDocument(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(rt.cfg.PDFImportMaxBytes))
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read upload"})
		return
	}

	text, err := rt.extractor.ExtractText(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		writeError(w, err)
		return
	}

	title := strings.TrimSuffix(path.Base(header.Filename), path.Ext(header.Filename))
	if title == "" {
		title = "Imported document"
	}
	doc, err := session.Documents.Create(r.Context(), token, domain.DocumentDraft{
		FormVersionID: r.FormValue("form_version_id"),
		Title:         title,
		Content:       text,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (rt *Router) documentRegister(w http.ResponseWriter, r *http.Request) {
	token, session, ok := rt.session(w, r)
	if !ok {
		return
	}
	if err := session.Documents.Load(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.xlsx"`)
	if err := report.WriteDocumentRegister(w, session.Documents.Documents()); err != nil {
		// Headers are already out; the access log records the failure.
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (rt *Router) previewTemplate(w http.ResponseWriter, r *http.Request) {
	// No session state is involved, but the endpoint is still caller-only.
	if bearerToken(r) == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bearer token is required"})
		return
	}

	var req struct {
		Template     string                              `json:"template"`
		DocumentType *domain.DocumentTypeInfo            `json:"document_type,omitempty"`
		ApprovalLine *domain.ApprovalLineTemplateVersion `json:"approval_line,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	preview := template.Project(req.Template, template.Context{
		DocumentType: req.DocumentType,
		ApprovalLine: req.ApprovalLine,
		Now:          rt.now(),
	})
	writeJSON(w, http.StatusOK, map[string]string{"preview": preview})
}

func (rt *Router) session(w http.ResponseWriter, r *http.Request) (string, *Session, bool) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bearer token is required"})
		return "", nil, false
	}
	return token, rt.sessions.Get(token), true
}

func (rt *Router) pageParams(r *http.Request) (page, pageSize int) {
	page = queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = queryInt(r, "pageSize", rt.cfg.DefaultPageSize)
	if pageSize < 1 {
		pageSize = rt.cfg.DefaultPageSize
	}
	if rt.cfg.MaxPageSize > 0 && pageSize > rt.cfg.MaxPageSize {
		pageSize = rt.cfg.MaxPageSize
	}
	return page, pageSize
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
