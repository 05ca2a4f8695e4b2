package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jdewit/bettrack/internal/server/middleware"
	"github.com/jdewit/bettrack/internal/service"
)

// StrategyService computes the personalized strategy blocks for a user.
type StrategyService interface {
	StrategyView(ctx context.Context, ownerID string) (service.Strategy, error)
}

// StrategyHandler serves the strategy page: a static article, extended with
// the caller's own numbers when a session is present.
type StrategyHandler struct {
	strategy StrategyService
	logger   *slog.Logger
}

// NewStrategyHandler creates a StrategyHandler with the given service and
// logger.
func NewStrategyHandler(strategy StrategyService, logger *slog.Logger) *StrategyHandler {
	return &StrategyHandler{
		strategy: strategy,
		logger:   logger,
	}
}

// articleSection is one titled block of the strategy article.
type articleSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// strategyResponse is the strategy page payload. Stats is nil for anonymous
// readers.
type strategyResponse struct {
	Title    string            `json:"title"`
	Sections []articleSection  `json:"sections"`
	Stats    *service.Strategy `json:"stats,omitempty"`
}

// strategyArticle is the static content shown to every reader.
var strategyArticle = strategyResponse{
	Title: "Betting with an edge",
	Sections: []articleSection{
		{
			Title: "Expected value over gut feeling",
			Body: "Every bet carries an implied probability: at decimal odds of 2.00 the " +
				"bookmaker prices the outcome at 50%, minus their margin. A bet is only " +
				"worth placing when your estimate of the true probability beats that " +
				"implied figure. Tracking expected value per bet makes the margin " +
				"visible and keeps one lucky weekend from hiding a losing approach.",
		},
		{
			Title: "Boosted odds are the edge",
			Body: "Promotional odds boosts shift the price in your favour without " +
				"changing the outcome. A boost from 2.00 to 2.50 on the same selection " +
				"adds half a stake of payout for free. Logging the base and the boosted " +
				"price separately shows exactly how much of your profit the boosts " +
				"contribute; for most recreational bettors it is all of it.",
		},
		{
			Title: "Flat stakes, long horizon",
			Body: "Variance dominates small samples. Keep stakes flat, judge the " +
				"approach on expected value rather than on the last result, and review " +
				"the per-site breakdown monthly: a site where the realized profit sits " +
				"far below the accumulated expected value is bad luck, one where the " +
				"expected value itself is negative is a bad habit.",
		},
	},
}

// Get returns the strategy article, with the caller's per-site breakdown and
// scatter attached when the request carries a valid session.
// GET /api/strategy
func (h *StrategyHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := strategyArticle

	if user, ok := middleware.UserFrom(r.Context()); ok {
		view, err := h.strategy.StrategyView(r.Context(), user.ID)
		if err != nil {
			// The article still renders without the personal numbers.
			h.logger.WarnContext(r.Context(), "handler: strategy stats failed",
				slog.String("user_id", user.ID),
				slog.String("error", err.Error()),
			)
		} else {
			resp.Stats = &view
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
