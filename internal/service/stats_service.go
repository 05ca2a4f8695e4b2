package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/stats"
)

// StatsService derives the dashboard, history and strategy payloads from a
// user's bet list.
type StatsService struct {
	bets   *BetService
	logger *slog.Logger
}

// NewStatsService creates a StatsService reading bets through the given
// BetService so every view shares its cache.
func NewStatsService(bets *BetService, logger *slog.Logger) *StatsService {
	return &StatsService{bets: bets, logger: logger}
}

// HistoryPage is one page of the filterable, sortable bet history.
type HistoryPage struct {
	Bets       []domain.Bet  `json:"bets"`
	Summary    stats.Summary `json:"summary"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalBets  int           `json:"total_bets"`
}

// History applies filter, sort and pagination to the user's bets. The
// summary covers the whole filtered set, not just the returned page.
func (s *StatsService) History(ctx context.Context, ownerID string, f stats.Filter, field stats.SortField, dir stats.SortDirection, page int) (HistoryPage, error) {
	bets, err := s.bets.List(ctx, ownerID)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("stats_service: history: %w", err)
	}

	filtered := f.Apply(bets)
	if field == "" {
		stats.SortDefault(filtered)
	} else {
		stats.Sort(filtered, field, dir)
	}

	paged, page, totalPages := stats.Page(filtered, page, stats.HistoryPageSize)
	return HistoryPage{
		Bets:       paged,
		Summary:    stats.Summarize(filtered),
		Page:       page,
		TotalPages: totalPages,
		TotalBets:  len(filtered),
	}, nil
}

// recentBets is how many of the newest filtered bets the dashboard previews.
const recentBets = 5

// Dashboard bundles everything the dashboard view renders for one filter
// state. All blocks are computed from the same filtered subset.
type Dashboard struct {
	Summary    stats.Summary        `json:"summary"`
	Websites   []stats.WebsiteStats `json:"websites"`
	Cumulative []stats.SeriesPoint  `json:"cumulative"`
	Daily      []stats.PeriodStats  `json:"daily"`
	Weekly     []stats.PeriodStats  `json:"weekly"`
	Monthly    []stats.PeriodStats  `json:"monthly"`
	Scatter    stats.Scatter        `json:"scatter"`
	Recent     []domain.Bet         `json:"recent"`
}

// Dashboard produces the full dashboard payload for one filter state. The
// chart blocks are independent of one another, so they are computed
// concurrently over the same filtered slice.
func (s *StatsService) Dashboard(ctx context.Context, ownerID string, f stats.Filter) (Dashboard, error) {
	bets, err := s.bets.List(ctx, ownerID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("stats_service: dashboard: %w", err)
	}

	filtered := f.Apply(bets)
	stats.SortDefault(filtered)

	recent := filtered
	if len(recent) > recentBets {
		recent = recent[:recentBets]
	}

	d := Dashboard{Recent: recent}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Summary = stats.Summarize(filtered)
		d.Websites = stats.GroupByWebsite(filtered)
		return nil
	})
	g.Go(func() error {
		d.Cumulative = stats.CumulativeSeries(filtered)
		d.Scatter = stats.EVProfitScatter(filtered)
		return nil
	})
	g.Go(func() error {
		d.Daily = stats.PeriodPerformance(filtered, stats.PeriodDaily)
		d.Weekly = stats.PeriodPerformance(filtered, stats.PeriodWeekly)
		d.Monthly = stats.PeriodPerformance(filtered, stats.PeriodMonthly)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("stats_service: dashboard: %w", err)
	}
	return d, nil
}

// Strategy is the per-operator breakdown view with the EV scatter.
type Strategy struct {
	Websites []stats.WebsiteStats `json:"websites"`
	Scatter  stats.Scatter        `json:"scatter"`
}

// StrategyView returns the analysis payload backing the strategy page.
func (s *StatsService) StrategyView(ctx context.Context, ownerID string) (Strategy, error) {
	bets, err := s.bets.List(ctx, ownerID)
	if err != nil {
		return Strategy{}, fmt.Errorf("stats_service: strategy: %w", err)
	}
	return Strategy{
		Websites: stats.GroupByWebsite(bets),
		Scatter:  stats.EVProfitScatter(bets),
	}, nil
}
