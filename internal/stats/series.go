package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
)

// dayLabel is the calendar-day key and axis label of the time charts.
const dayLabel = "02/01/2006"

// SeriesPoint is one day on the cumulative chart. Profit, ExpectedValue and
// NonBoostedProfit are running totals up to and including that day.
type SeriesPoint struct {
	Label            string  `json:"label"`
	Profit           float64 `json:"profit"`
	ExpectedValue    float64 `json:"expected_value"`
	NonBoostedProfit float64 `json:"non_boosted_profit"`
}

// CumulativeSeries builds the cumulative profit / expected value chart from
// the filtered bets. Only settled bets contribute. Fewer than two distinct
// days of settled activity yield a nil series; the caller renders a
// "not enough data" placeholder instead of a one-point chart.
func CumulativeSeries(bets []domain.Bet) []SeriesPoint {
	days := make(map[string]*SeriesPoint)
	dayDates := make(map[string]time.Time)

	for _, b := range bets {
		if !b.Settled() {
			continue
		}
		day := truncateDay(b.Date)
		key := day.Format(dayLabel)
		p, ok := days[key]
		if !ok {
			p = &SeriesPoint{Label: key}
			days[key] = p
			dayDates[key] = day
		}
		p.Profit += ProfitLoss(b)
		p.ExpectedValue += ExpectedValue(b)
		p.NonBoostedProfit += NonBoostedProfit(b)
	}

	if len(days) < 2 {
		return nil
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return dayDates[keys[i]].Before(dayDates[keys[j]])
	})

	out := make([]SeriesPoint, 0, len(keys))
	var profit, ev, nonBoosted float64
	for _, k := range keys {
		d := days[k]
		profit += d.Profit
		ev += d.ExpectedValue
		nonBoosted += d.NonBoostedProfit
		out = append(out, SeriesPoint{
			Label:            k,
			Profit:           profit,
			ExpectedValue:    ev,
			NonBoostedProfit: nonBoosted,
		})
	}
	return out
}

// PeriodKind selects the bucket size of the performance chart.
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "daily"
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
)

// PeriodStats is one bar of the performance chart.
type PeriodStats struct {
	Period    string  `json:"period"`
	TotalBets int     `json:"total_bets"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	AmountBet float64 `json:"amount_bet"`
	Profit    float64 `json:"profit"`
	WinRate   float64 `json:"win_rate"` // percent
	ROI       float64 `json:"roi"`      // percent

	sortDate time.Time
}

// PeriodPerformance groups settled bets into daily, weekly or monthly
// buckets and returns them most recent first. Weeks are "week N of the
// calendar year" counted from January 1st, not ISO-8601 weeks; the tracker
// has always labeled them that way and switching definitions would renumber
// every historical bucket.
func PeriodPerformance(bets []domain.Bet, kind PeriodKind) []PeriodStats {
	buckets := make(map[string]*PeriodStats)
	order := make([]string, 0)

	for _, b := range bets {
		if !b.Settled() {
			continue
		}
		key, sortDate := periodKey(b.Date, kind)
		p, ok := buckets[key]
		if !ok {
			p = &PeriodStats{Period: key, sortDate: sortDate}
			buckets[key] = p
			order = append(order, key)
		}
		p.TotalBets++
		p.AmountBet += b.Amount
		switch b.Outcome {
		case domain.OutcomeWin:
			p.Wins++
		case domain.OutcomeLoss:
			p.Losses++
		}
		p.Profit += ProfitLoss(b)
	}

	out := make([]PeriodStats, 0, len(buckets))
	for _, k := range order {
		p := buckets[k]
		if p.TotalBets > 0 {
			p.WinRate = float64(p.Wins) / float64(p.TotalBets) * 100
		}
		if p.AmountBet > 0 {
			p.ROI = p.Profit / p.AmountBet * 100
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].sortDate.After(out[j].sortDate)
	})
	return out
}

func periodKey(t time.Time, kind PeriodKind) (string, time.Time) {
	day := truncateDay(t)
	switch kind {
	case PeriodMonthly:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return first.Format("Jan 2006"), first
	case PeriodWeekly:
		week := calendarWeek(day)
		return "Week " + strconv.Itoa(week) + ", " + strconv.Itoa(t.Year()), day
	default:
		return day.Format(dayLabel), day
	}
}

// calendarWeek numbers weeks from January 1st of the bet's year, offset by
// the weekday January 1st fell on, so that week boundaries track the weekly
// calendar rows of that year rather than the ISO definition.
func calendarWeek(day time.Time) int {
	jan1 := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
	pastDays := day.Sub(jan1).Hours() / 24
	return int(math.Ceil((pastDays + float64(jan1.Weekday()) + 1) / 7))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
