package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/server/middleware"
	"github.com/jdewit/bettrack/internal/service"
	"github.com/jdewit/bettrack/internal/stats"
)

// BetService defines the bet mutation methods the handler requires from the
// service layer.
type BetService interface {
	Create(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error)
	Update(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// HistoryService produces the filtered, sorted, paginated bet history.
type HistoryService interface {
	History(ctx context.Context, ownerID string, f stats.Filter, field stats.SortField, dir stats.SortDirection, page int) (service.HistoryPage, error)
}

// BetHandler serves the bet CRUD and history endpoints.
type BetHandler struct {
	bets    BetService
	history HistoryService
	logger  *slog.Logger
}

// NewBetHandler creates a BetHandler with the given services and logger.
func NewBetHandler(bets BetService, history HistoryService, logger *slog.Logger) *BetHandler {
	return &BetHandler{
		bets:    bets,
		history: history,
		logger:  logger,
	}
}

// betRequest is the wire form of a bet create or update.
type betRequest struct {
	Website     string   `json:"website"`
	Description string   `json:"description"`
	Odds        float64  `json:"odds"`
	BoostedOdds *float64 `json:"boosted_odds"`
	Amount      float64  `json:"amount"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Outcome     string   `json:"outcome"`
	Note        *string  `json:"note"`
}

// toBet converts the request body to a domain bet. An unparseable date is
// left zero so domain validation reports it as a field error.
func (req betRequest) toBet() domain.Bet {
	b := domain.Bet{
		Website:     req.Website,
		Description: req.Description,
		Odds:        req.Odds,
		BoostedOdds: req.BoostedOdds,
		Amount:      req.Amount,
		Outcome:     domain.Outcome(req.Outcome),
		Note:        req.Note,
	}
	if t, err := time.Parse(dateLayout, req.Date); err == nil {
		b.Date = t
	}
	return b
}

// List returns one page of the caller's bet history with its summary.
// GET /api/bets?outcome=&search=&date_from=&date_to=&sort=&dir=&page=
func (h *BetHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	q := r.URL.Query()

	page, err := h.history.History(r.Context(), user.ID,
		parseFilter(r),
		stats.SortField(q.Get("sort")),
		stats.SortDirection(q.Get("dir")),
		parsePage(r))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to list bets")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Create logs a new bet for the caller.
// POST /api/bets
func (h *BetHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var req betRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bet, err := h.bets.Create(r.Context(), user.ID, req.toBet())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to create bet")
		return
	}

	writeJSON(w, http.StatusCreated, bet)
}

// Update replaces an existing bet owned by the caller.
// PUT /api/bets/{id}
func (h *BetHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bet id")
		return
	}

	var req betRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bet := req.toBet()
	bet.ID = id

	updated, err := h.bets.Update(r.Context(), user.ID, bet)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to update bet")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a bet owned by the caller.
// DELETE /api/bets/{id}
func (h *BetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	id := pathParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bet id")
		return
	}

	if err := h.bets.Delete(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, r, h.logger, err, "failed to delete bet")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
