package stats

import (
	"math"
	"sort"

	"github.com/jdewit/bettrack/internal/domain"
)

// SortField names a sortable history column.
type SortField string

const (
	SortDate          SortField = "date"
	SortOdds          SortField = "odds"
	SortEffectiveOdds SortField = "boosted_odds" // boosted odds, falling back to base
	SortAmount        SortField = "amount"
	SortProfitLoss    SortField = "profit_loss"
	SortExpectedValue SortField = "ev"
	SortBoostPercent  SortField = "boost_value"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort orders bets in place by the given column. Two quirks are kept from
// the product's history table: sorting by profit/loss ranks pending bets as
// negative infinity in both directions, and sorting by date keeps pending
// bets ahead of settled ones on the same day regardless of direction. Equal
// keys keep their prior order.
func Sort(bets []domain.Bet, field SortField, dir SortDirection) {
	desc := dir == Desc

	if field == SortDate {
		sort.SliceStable(bets, func(i, j int) bool {
			a, b := bets[i], bets[j]
			if a.Date.Equal(b.Date) {
				return a.Outcome == domain.OutcomePending && b.Outcome != domain.OutcomePending
			}
			if desc {
				return a.Date.After(b.Date)
			}
			return a.Date.Before(b.Date)
		})
		return
	}

	key := sortKey(field)
	sort.SliceStable(bets, func(i, j int) bool {
		a, b := key(bets[i]), key(bets[j])
		if desc {
			return a > b
		}
		return a < b
	})
}

func sortKey(field SortField) func(domain.Bet) float64 {
	switch field {
	case SortOdds:
		return func(b domain.Bet) float64 { return b.Odds }
	case SortEffectiveOdds:
		return func(b domain.Bet) float64 { return b.EffectiveOdds() }
	case SortAmount:
		return func(b domain.Bet) float64 { return b.Amount }
	case SortProfitLoss:
		return func(b domain.Bet) float64 {
			if b.Outcome == domain.OutcomePending {
				return math.Inf(-1)
			}
			return ProfitLoss(b)
		}
	case SortExpectedValue:
		return ExpectedValue
	case SortBoostPercent:
		return func(b domain.Bet) float64 {
			// Boosted bets rank above unboosted ones even when the boost
			// percentage itself would tie at zero.
			if b.BoostedOdds == nil {
				return 0
			}
			v := BoostPercent(b)
			if v == 0 {
				return math.SmallestNonzeroFloat64
			}
			return v
		}
	default:
		return func(domain.Bet) float64 { return 0 }
	}
}
