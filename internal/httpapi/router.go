// Package httpapi exposes the upload-link intake operations over HTTP.
package httpapi

//go:generate mockgen -source=router.go -destination=mocks/mocks.go -package=mocks Intake

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Lllllllleong/identityverification/internal/models"
)

// Intake defines the operations behind the upload UI.
type Intake interface {
	CreateDocument(ctx context.Context, req *models.CreateDocumentRequest) (*models.CreateDocumentResponse, error)
	DocumentStatus(ctx context.Context, id string) (*models.DocumentStatusResponse, error)
	UploadURL(ctx context.Context, id, mimetype string) (*models.UploadURLResponse, error)
	CompleteUpload(ctx context.Context, id string) (*models.DocumentStatusResponse, error)
}

// Handler is the thin HTTP layer over Intake.
type Handler struct {
	intake Intake
	logger *slog.Logger
}

func NewHandler(intake Intake, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{intake: intake, logger: logger}
}

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/status", h.handleStatus)
	r.Route("/api", func(r chi.Router) {
		r.Post("/create-document", h.handleCreateDocument)
		r.Get("/document-status/{documentId}", h.handleDocumentStatus)
		r.Get("/upload-url/{documentId}", h.handleUploadURL)
		r.Post("/upload-complete/{documentId}", h.handleUploadComplete)
	})
	return r
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Could not decode request body", "error", err)
		writeError(w, http.StatusBadRequest, "could not parse JSON")
		return
	}
	res, err := h.intake.CreateDocument(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleDocumentStatus(w http.ResponseWriter, r *http.Request) {
	res, err := h.intake.DocumentStatus(r.Context(), chi.URLParam(r, "documentId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	res, err := h.intake.UploadURL(r.Context(), chi.URLParam(r, "documentId"), r.URL.Query().Get("mimetype"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleUploadComplete(w http.ResponseWriter, r *http.Request) {
	res, err := h.intake.CompleteUpload(r.Context(), chi.URLParam(r, "documentId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// fail maps domain errors onto status codes. Internal error text is logged, not returned.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logCtx := h.logger.With("path", r.URL.Path, "requestId", middleware.GetReqID(r.Context()), "status", status)
	if status == http.StatusInternalServerError {
		logCtx.Error("Request failed", "error", err)
		writeError(w, status, "internal error")
		return
	}
	logCtx.Warn("Request rejected", "error", err)
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
