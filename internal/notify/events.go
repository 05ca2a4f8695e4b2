package notify

import (
	"fmt"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/stats"
)

// Event names a notification type. The configured notify.events list
// selects which of these actually reach the channels.
type Event string

const (
	EventBetSettled Event = "bet_settled"
	EventTipShared  Event = "tip_shared"
	EventExportDone Event = "export_done"
	EventError      Event = "error"
)

// BetSettledMessage formats the notification for a bet moving to a terminal
// outcome.
func BetSettledMessage(b domain.Bet) (title, message string) {
	pl := stats.ProfitLoss(b)
	verdict := "Won"
	if b.Outcome == domain.OutcomeLoss {
		verdict = "Lost"
	}
	title = fmt.Sprintf("%s: %s", verdict, b.Description)
	message = fmt.Sprintf("%s @ %.2f, stake %.2f, P/L %+.2f", b.Website, b.EffectiveOdds(), b.Amount, pl)
	return title, message
}

// TipSharedMessage formats the notification for a newly shared tip.
func TipSharedMessage(v domain.TipView) (title, message string) {
	visibility := "private"
	if v.IsPublic {
		visibility = "public"
	}
	title = "Tip shared: " + v.Description
	message = fmt.Sprintf("%s @ %.2f (%s) by %s", v.Website, v.Odds, visibility, v.TipperName)
	return title, message
}

// ErrorMessage formats the notification for a fatal application error.
func ErrorMessage(err error) (title, message string) {
	return "Tracker error", err.Error()
}

// ExportDoneMessage formats the notification for a finished history export.
func ExportDoneMessage(path string, betCount int) (title, message string) {
	title = "Export ready"
	message = fmt.Sprintf("%d bets written to %s", betCount, path)
	return title, message
}
