package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/server/middleware"
	"github.com/jdewit/bettrack/internal/stats"
)

// TipService defines the methods the tips handler requires from the service
// layer.
type TipService interface {
	Share(ctx context.Context, userID, betID string, isPublic bool) (domain.TipView, error)
	ListVisible(ctx context.Context, userID string) ([]domain.TipView, error)
	Delete(ctx context.Context, userID, tipID string) error
}

// TipHandler serves the shared-tips endpoints.
type TipHandler struct {
	tips   TipService
	logger *slog.Logger
}

// NewTipHandler creates a TipHandler with the given service and logger.
func NewTipHandler(tips TipService, logger *slog.Logger) *TipHandler {
	return &TipHandler{
		tips:   tips,
		logger: logger,
	}
}

// listTipsResponse wraps one page of the tips feed.
type listTipsResponse struct {
	Tips       []domain.TipView `json:"tips"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	TotalTips  int              `json:"total_tips"`
}

// List returns one page of tips visible to the caller: all public tips plus
// the caller's own private ones, newest first.
// GET /api/tips?page=1
func (h *TipHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	tips, err := h.tips.ListVisible(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list tips")
		return
	}

	page := parsePage(r)
	totalPages := (len(tips) + stats.TipsPageSize - 1) / stats.TipsPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * stats.TipsPageSize
	end := start + stats.TipsPageSize
	if end > len(tips) {
		end = len(tips)
	}

	writeJSON(w, http.StatusOK, listTipsResponse{
		Tips:       tips[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalTips:  len(tips),
	})
}

// shareTipRequest is the wire form of a share. is_public defaults to true
// when omitted.
type shareTipRequest struct {
	BetID    string `json:"bet_id"`
	IsPublic *bool  `json:"is_public"`
}

// Share publishes one of the caller's bets as a tip.
// POST /api/tips
func (h *TipHandler) Share(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var req shareTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BetID == "" {
		writeError(w, http.StatusBadRequest, "bet_id is required")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	tip, err := h.tips.Share(r.Context(), user.ID, req.BetID, isPublic)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to share tip")
		return
	}

	writeJSON(w, http.StatusCreated, tip)
}

// Delete removes a tip created by the caller.
// DELETE /api/tips/{id}
func (h *TipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tip id")
		return
	}

	if err := h.tips.Delete(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, r, h.logger, err, "failed to delete tip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
