package stats

import (
	"sort"

	"github.com/jdewit/bettrack/internal/domain"
)

// WebsiteStats is the per-operator breakdown card.
type WebsiteStats struct {
	Website          string  `json:"website"`
	TotalBets        int     `json:"total_bets"`
	TotalAmount      float64 `json:"total_amount"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Pending          int     `json:"pending"`
	ProfitLoss       float64 `json:"profit_loss"`
	ExpectedValue    float64 `json:"expected_value"`
	NonBoostedProfit float64 `json:"non_boosted_profit"`
	BoostImpact      float64 `json:"boost_impact"`
	WinRate          float64 `json:"win_rate"` // percent, over all bets on the site
}

// GroupByWebsite accumulates a breakdown per operator label. Results are
// sorted by total staked, largest first, to keep the card order stable no
// matter the map iteration order.
func GroupByWebsite(bets []domain.Bet) []WebsiteStats {
	sites := make(map[string]*WebsiteStats)
	order := make([]string, 0)

	for _, b := range bets {
		ws, ok := sites[b.Website]
		if !ok {
			ws = &WebsiteStats{Website: b.Website}
			sites[b.Website] = ws
			order = append(order, b.Website)
		}
		ws.TotalBets++
		ws.TotalAmount += b.Amount
		ws.ProfitLoss += ProfitLoss(b)
		ws.ExpectedValue += ExpectedValue(b)
		ws.NonBoostedProfit += NonBoostedProfit(b)
		ws.BoostImpact += BoostImpact(b)
		switch b.Outcome {
		case domain.OutcomeWin:
			ws.Wins++
		case domain.OutcomeLoss:
			ws.Losses++
		default:
			ws.Pending++
		}
	}

	out := make([]WebsiteStats, 0, len(sites))
	for _, site := range order {
		ws := sites[site]
		if ws.TotalBets > 0 {
			ws.WinRate = float64(ws.Wins) / float64(ws.TotalBets) * 100
		}
		out = append(out, *ws)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount > out[j].TotalAmount
	})
	return out
}
