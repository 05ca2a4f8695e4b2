package stats

import (
	"github.com/jdewit/bettrack/internal/domain"
)

// minScatterBets is the smallest settled-bet count for which the EV-vs-profit
// chart is drawn; below it a trend line over the points is meaningless.
const minScatterBets = 3

// ScatterPoint is one settled bet on the EV-vs-profit chart, carried in both
// absolute euros and per-euro-staked form so the client can toggle views
// without recomputing.
type ScatterPoint struct {
	ExpectedValue         float64        `json:"expected_value"`
	Profit                float64        `json:"profit"`
	ExpectedValuePerStake float64        `json:"expected_value_per_stake"`
	ProfitPerStake        float64        `json:"profit_per_stake"`
	Website               string         `json:"website"`
	Description           string         `json:"description"`
	Date                  string         `json:"date"`
	Outcome               domain.Outcome `json:"outcome"`
	Stake                 float64        `json:"stake"`
}

// TrendLine is the ordinary-least-squares fit y = Slope*x + Intercept over a
// scatter. It is descriptive decoration for the chart, not an estimator with
// any statistical guarantee.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Scatter is the EV-vs-profit chart payload. Trend is the fit over the
// absolute points, TrendPerStake over the normalized ones; either is nil
// when the regression is degenerate (all x values identical).
type Scatter struct {
	Points        []ScatterPoint `json:"points"`
	Trend         *TrendLine     `json:"trend,omitempty"`
	TrendPerStake *TrendLine     `json:"trend_per_stake,omitempty"`
}

// EVProfitScatter emits one point per settled bet, pairing the modeled
// expected value with the realized profit. Fewer than three settled bets
// yield an empty scatter.
func EVProfitScatter(bets []domain.Bet) Scatter {
	var points []ScatterPoint
	for _, b := range bets {
		if !b.Settled() {
			continue
		}
		points = append(points, ScatterPoint{
			ExpectedValue:         ExpectedValue(b),
			Profit:                ProfitLoss(b),
			ExpectedValuePerStake: ExpectedValuePerStake(b),
			ProfitPerStake:        ProfitLoss(b) / b.Amount,
			Website:               b.Website,
			Description:           b.Description,
			Date:                  truncateDay(b.Date).Format(dayLabel),
			Outcome:               b.Outcome,
			Stake:                 b.Amount,
		})
	}
	if len(points) < minScatterBets {
		return Scatter{}
	}

	s := Scatter{Points: points}
	s.Trend = fitLine(points, func(p ScatterPoint) (float64, float64) {
		return p.ExpectedValue, p.Profit
	})
	s.TrendPerStake = fitLine(points, func(p ScatterPoint) (float64, float64) {
		return p.ExpectedValuePerStake, p.ProfitPerStake
	})
	return s
}

// fitLine computes the standard OLS slope and intercept over the projected
// points. A zero denominator (all x equal) has no defined slope; the caller
// simply skips drawing the line.
func fitLine(points []ScatterPoint, project func(ScatterPoint) (x, y float64)) *TrendLine {
	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x, y := project(p)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return &TrendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}
}
