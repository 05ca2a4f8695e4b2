package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/server/middleware"
	"github.com/jdewit/bettrack/internal/service"
)

// ExportService defines the methods the export handler requires from the
// service layer.
type ExportService interface {
	Export(ctx context.Context, ownerID string) (service.ExportResult, error)
	ListExports(ctx context.Context, ownerID string) ([]domain.BlobInfo, error)
	DeleteExport(ctx context.Context, ownerID, path string) error
}

// ExportHandler serves the CSV export endpoints.
type ExportHandler struct {
	exports ExportService
	logger  *slog.Logger
}

// NewExportHandler creates an ExportHandler with the given service and
// logger.
func NewExportHandler(exports ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		logger:  logger,
	}
}

// Create snapshots the caller's full history to a CSV object and returns
// its key. A concurrent export for the same user answers 409.
// POST /api/export
func (h *ExportHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	result, err := h.exports.Export(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "export failed")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// listExportsResponse wraps the stored-exports listing.
type listExportsResponse struct {
	Exports []domain.BlobInfo `json:"exports"`
}

// List returns metadata for the caller's previous exports.
// GET /api/exports
func (h *ExportHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	infos, err := h.exports.ListExports(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list exports")
		return
	}
	if infos == nil {
		infos = []domain.BlobInfo{}
	}

	writeJSON(w, http.StatusOK, listExportsResponse{Exports: infos})
}

// Delete removes one of the caller's stored exports.
// DELETE /api/exports/{path...}
func (h *ExportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	path := pathParam(r, "path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing export path")
		return
	}

	if err := h.exports.DeleteExport(r.Context(), user.ID, path); err != nil {
		writeServiceError(w, r, h.logger, err, "failed to delete export")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
