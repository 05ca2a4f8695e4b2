package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdewit/bettrack/internal/domain"
)

func note(s string) *string { return &s }

func TestFilter_Outcome(t *testing.T) {
	bets := []domain.Bet{
		bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-01"),
		bet(domain.OutcomeLoss, 2.00, nil, 10, "2024-03-02"),
		bet(domain.OutcomePending, 2.00, nil, 10, "2024-03-03"),
	}

	wins := Filter{Outcome: FilterWin}.Apply(bets)
	require.Len(t, wins, 1)
	assert.Equal(t, domain.OutcomeWin, wins[0].Outcome)

	// Filtering by win and then by all restores the full list.
	all := Filter{Outcome: FilterAll}.Apply(bets)
	assert.Equal(t, bets, all)
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	a := bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-01")
	a.Website = "SuperBooks"
	b := bet(domain.OutcomeLoss, 2.00, nil, 10, "2024-03-02")
	b.Description = "Liverpool to score"
	c := bet(domain.OutcomePending, 2.00, nil, 10, "2024-03-03")
	c.Note = note("liverpool boost offer")

	got := Filter{Search: "LIVERPOOL"}.Apply([]domain.Bet{a, b, c})
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)
}

func TestFilter_SearchSkipsMissingNote(t *testing.T) {
	a := bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-01")
	a.Note = nil
	got := Filter{Search: "anything"}.Apply([]domain.Bet{a})
	assert.Empty(t, got)
}

func TestFilter_DateRangeInclusiveEndOfDay(t *testing.T) {
	onEnd := bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-05")
	onEnd.Date = day("2024-03-05").Add(18 * time.Hour) // evening of the last day
	after := bet(domain.OutcomeLoss, 2.00, nil, 10, "2024-03-06")

	from := day("2024-03-01")
	to := day("2024-03-05")
	got := Filter{DateFrom: &from, DateTo: &to}.Apply([]domain.Bet{onEnd, after})
	require.Len(t, got, 1)
	assert.Equal(t, onEnd.ID, got[0].ID)
}

func TestFilter_DateFromExcludesEarlier(t *testing.T) {
	early := bet(domain.OutcomeWin, 2.00, nil, 10, "2024-02-28")
	late := bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-02")

	from := day("2024-03-01")
	got := Filter{DateFrom: &from}.Apply([]domain.Bet{early, late})
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID)
}

func TestSortDefault_NewestFirstPendingAhead(t *testing.T) {
	older := bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-01")
	settled := bet(domain.OutcomeLoss, 2.00, nil, 10, "2024-03-05")
	pending := bet(domain.OutcomePending, 2.00, nil, 10, "2024-03-05")

	bets := []domain.Bet{older, settled, pending}
	SortDefault(bets)

	assert.Equal(t, pending.ID, bets[0].ID, "pending sorts before settled on the same day")
	assert.Equal(t, settled.ID, bets[1].ID)
	assert.Equal(t, older.ID, bets[2].ID)
}

func TestSortDefault_StableOnFullTies(t *testing.T) {
	a := bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-05")
	a.ID = "first"
	b := bet(domain.OutcomeWin, 3.00, nil, 20, "2024-03-05")
	b.ID = "second"

	bets := []domain.Bet{a, b}
	SortDefault(bets)
	assert.Equal(t, "first", bets[0].ID)
	assert.Equal(t, "second", bets[1].ID)
}

func TestPage_Bounds(t *testing.T) {
	var bets []domain.Bet
	for i := 0; i < 32; i++ {
		bets = append(bets, bet(domain.OutcomeWin, 2.00, nil, 10, "2024-03-01"))
	}

	pageBets, page, total := Page(bets, 1, HistoryPageSize)
	assert.Len(t, pageBets, 15)
	assert.Equal(t, 1, page)
	assert.Equal(t, 3, total)

	pageBets, page, _ = Page(bets, 3, HistoryPageSize)
	assert.Len(t, pageBets, 2, "last page holds the remainder")
	assert.Equal(t, 3, page)

	_, page, _ = Page(bets, 99, HistoryPageSize)
	assert.Equal(t, 3, page, "out-of-range pages clamp to the last page")

	_, page, total = Page(nil, 1, HistoryPageSize)
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, total)
}
