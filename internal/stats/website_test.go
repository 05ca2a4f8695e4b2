package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdewit/bettrack/internal/domain"
)

func siteBet(site string, outcome domain.Outcome, odds float64, boosted *float64, amount float64, d string) domain.Bet {
	b := bet(outcome, odds, boosted, amount, d)
	b.Website = site
	return b
}

func TestGroupByWebsite(t *testing.T) {
	bets := []domain.Bet{
		siteBet("bwin", domain.OutcomeWin, 2.0, nil, 10, "2024-03-01"),
		siteBet("bwin", domain.OutcomeLoss, 3.0, nil, 20, "2024-03-02"),
		siteBet("bwin", domain.OutcomePending, 2.0, nil, 5, "2024-03-03"),
		siteBet("winamax", domain.OutcomeWin, 2.0, f64(2.5), 10, "2024-03-04"),
	}

	out := GroupByWebsite(bets)
	require.Len(t, out, 2)

	// Largest total staked first.
	bwin := out[0]
	assert.Equal(t, "bwin", bwin.Website)
	assert.Equal(t, 3, bwin.TotalBets)
	assert.Equal(t, 35.0, bwin.TotalAmount)
	assert.Equal(t, 1, bwin.Wins)
	assert.Equal(t, 1, bwin.Losses)
	assert.Equal(t, 1, bwin.Pending)
	assert.InDelta(t, -10.0, bwin.ProfitLoss, 1e-9) // +10 win, -20 loss, pending 0
	assert.InDelta(t, 100.0/3.0, bwin.WinRate, 1e-9)

	wmx := out[1]
	assert.Equal(t, "winamax", wmx.Website)
	assert.InDelta(t, 15.0, wmx.ProfitLoss, 1e-9)
	assert.InDelta(t, 10.0, wmx.NonBoostedProfit, 1e-9)
	assert.InDelta(t, 5.0, wmx.BoostImpact, 1e-9)
	assert.InDelta(t, 100.0, wmx.WinRate, 1e-9)
}

func TestGroupByWebsiteEmpty(t *testing.T) {
	assert.Empty(t, GroupByWebsite(nil))
}
