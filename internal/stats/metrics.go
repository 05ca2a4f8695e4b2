// Package stats is the derived-statistics engine: pure functions that turn a
// user's bet list plus the current filter state into the numbers and series
// the dashboard renders. Nothing in this package touches storage or does IO;
// every value is recomputed from the full list on each call.
package stats

import "github.com/jdewit/bettrack/internal/domain"

// Margin is the operator's assumed built-in edge on the standard price. The
// expected-value formula removes it from the standard odds to approximate the
// true win probability. This is a deliberate simplification baked into the
// product's strategy content, not an exact devigging method; do not tune it.
const Margin = 0.95

// ProfitLoss returns the realized profit of a settled bet. Wins pay out at
// the effective (possibly boosted) odds minus the returned stake, losses
// forfeit the stake, and pending bets contribute zero.
func ProfitLoss(b domain.Bet) float64 {
	switch b.Outcome {
	case domain.OutcomeWin:
		return b.Amount*b.EffectiveOdds() - b.Amount
	case domain.OutcomeLoss:
		return -b.Amount
	default:
		return 0
	}
}

// ExpectedValue returns the modeled average profit of a bet:
//
//	(0.95 / odds) * effectiveOdds * amount - amount
//
// The implied win probability always derives from the standard odds, so a
// boost raises the payout without changing the assumed probability. Pending
// bets have an expected value like any other; only realized profit waits for
// settlement.
func ExpectedValue(b domain.Bet) float64 {
	return (Margin/b.Odds)*b.EffectiveOdds()*b.Amount - b.Amount
}

// ExpectedValuePerStake is the expected value of one unit staked at the
// bet's prices, used by the normalized scatter view.
func ExpectedValuePerStake(b domain.Bet) float64 {
	return (Margin/b.Odds)*b.EffectiveOdds() - 1
}

// NonBoostedProfit is the counterfactual profit had the boost not existed:
// wins pay at the standard odds, losses and pending bets are unchanged.
func NonBoostedProfit(b domain.Bet) float64 {
	switch b.Outcome {
	case domain.OutcomeWin:
		return b.Amount*b.Odds - b.Amount
	case domain.OutcomeLoss:
		return -b.Amount
	default:
		return 0
	}
}

// BoostImpact is the realized gain attributable to the boost. It is zero for
// losses and pending bets: a lost stake costs the same at any odds.
func BoostImpact(b domain.Bet) float64 {
	return ProfitLoss(b) - NonBoostedProfit(b)
}

// BoostPercent is the relative improvement of the boosted odds over the
// standard odds, in percent. Zero when the bet has no boost.
func BoostPercent(b domain.Bet) float64 {
	if b.BoostedOdds == nil {
		return 0
	}
	return (*b.BoostedOdds - b.Odds) / b.Odds * 100
}

// Summary aggregates a filtered bet list.
type Summary struct {
	TotalBets          int     `json:"total_bets"`
	ActiveBets         int     `json:"active_bets"`
	CompletedBets      int     `json:"completed_bets"`
	TotalStake         float64 `json:"total_stake"`
	TotalProfitLoss    float64 `json:"total_profit_loss"`
	TotalExpectedValue float64 `json:"total_expected_value"`
	WinRate            float64 `json:"win_rate"` // percent
	ROI                float64 `json:"roi"`      // percent
}

// Summarize computes the aggregate totals over bets. The win rate divides by
// the full filtered count, pending bets included, matching what the product
// has always displayed. ROI and win rate are 0 on an empty list.
func Summarize(bets []domain.Bet) Summary {
	var s Summary
	var wins int
	for _, b := range bets {
		s.TotalBets++
		s.TotalStake += b.Amount
		s.TotalProfitLoss += ProfitLoss(b)
		s.TotalExpectedValue += ExpectedValue(b)
		switch b.Outcome {
		case domain.OutcomePending:
			s.ActiveBets++
		case domain.OutcomeWin:
			s.CompletedBets++
			wins++
		case domain.OutcomeLoss:
			s.CompletedBets++
		}
	}
	if s.TotalBets > 0 {
		s.WinRate = float64(wins) / float64(s.TotalBets) * 100
	}
	if s.TotalStake > 0 {
		s.ROI = s.TotalProfitLoss / s.TotalStake * 100
	}
	return s
}
