package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
)

// Page sizes of the two paginated views.
const (
	HistoryPageSize = 15
	TipsPageSize    = 12
)

// OutcomeFilter selects which outcomes a view shows.
type OutcomeFilter string

const (
	FilterAll     OutcomeFilter = "all"
	FilterWin     OutcomeFilter = "win"
	FilterLoss    OutcomeFilter = "loss"
	FilterPending OutcomeFilter = "pending"
)

// Filter is the immutable view state a render cycle operates on. The zero
// value (with Outcome defaulted to all) matches everything.
type Filter struct {
	Outcome  OutcomeFilter
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time // inclusive through 23:59:59.999 of that day
}

// Match reports whether a single bet passes the filter.
func (f Filter) Match(b domain.Bet) bool {
	if f.Outcome != "" && f.Outcome != FilterAll && string(f.Outcome) != string(b.Outcome) {
		return false
	}

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		hit := strings.Contains(strings.ToLower(b.Website), term) ||
			strings.Contains(strings.ToLower(b.Description), term) ||
			(b.Note != nil && strings.Contains(strings.ToLower(*b.Note), term))
		if !hit {
			return false
		}
	}

	if f.DateFrom != nil && b.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil {
		end := endOfDay(*f.DateTo)
		if b.Date.After(end) {
			return false
		}
	}
	return true
}

// Apply returns the bets passing the filter, in their incoming order.
func (f Filter) Apply(bets []domain.Bet) []domain.Bet {
	out := make([]domain.Bet, 0, len(bets))
	for _, b := range bets {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// SortDefault orders bets for the history view: newest date first, and on the
// same date pending bets before settled ones. The sort is stable, so further
// ties keep insertion order.
func SortDefault(bets []domain.Bet) {
	sort.SliceStable(bets, func(i, j int) bool {
		a, b := bets[i], bets[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Outcome == domain.OutcomePending && b.Outcome != domain.OutcomePending
	})
}

// Page extracts one page of size pageSize from bets, clamping the page number
// into range. It returns the page slice, the clamped page number, and the
// total page count (at least 1).
func Page(bets []domain.Bet, page, pageSize int) ([]domain.Bet, int, int) {
	if pageSize <= 0 {
		pageSize = HistoryPageSize
	}
	totalPages := (len(bets) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(bets) {
		start = len(bets)
	}
	if end > len(bets) {
		end = len(bets)
	}
	return bets[start:end], page, totalPages
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
