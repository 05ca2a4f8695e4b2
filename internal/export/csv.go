// Package export renders a user's bet history as CSV for download or
// archival to blob storage.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/stats"
)

// dateLayout matches the day format used across the API.
const dateLayout = "2006-01-02"

// header is the CSV column order. Derived columns (profit/loss, expected
// value) are included so the file is useful in a spreadsheet without
// re-deriving anything.
var header = []string{
	"date", "website", "description", "odds", "boosted_odds",
	"amount", "outcome", "profit_loss", "expected_value", "note",
}

// WriteCSV writes the bets as CSV to w, one row per bet, preserving the
// order of the input slice.
func WriteCSV(w io.Writer, bets []domain.Bet) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, b := range bets {
		boosted := ""
		if b.BoostedOdds != nil {
			boosted = formatFloat(*b.BoostedOdds)
		}
		note := ""
		if b.Note != nil {
			note = *b.Note
		}

		row := []string{
			b.Date.Format(dateLayout),
			b.Website,
			b.Description,
			formatFloat(b.Odds),
			boosted,
			formatFloat(b.Amount),
			string(b.Outcome),
			formatFloat(stats.ProfitLoss(b)),
			formatFloat(stats.ExpectedValue(b)),
			note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write bet %s: %w", b.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
