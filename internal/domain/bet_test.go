package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBet() Bet {
	return Bet{
		Website:     "bwin",
		Description: "over 2.5 goals",
		Odds:        2.0,
		Amount:      10,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Outcome:     OutcomePending,
	}
}

func TestBetValidate(t *testing.T) {
	assert.NoError(t, validBet().Validate())

	low := 1.0
	cases := []struct {
		name   string
		mutate func(*Bet)
		field  string
	}{
		{"missing website", func(b *Bet) { b.Website = "" }, "website"},
		{"missing description", func(b *Bet) { b.Description = "" }, "description"},
		{"odds below minimum", func(b *Bet) { b.Odds = 1.0 }, "odds"},
		{"boosted odds below minimum", func(b *Bet) { b.BoostedOdds = &low }, "boosted_odds"},
		{"zero amount", func(b *Bet) { b.Amount = 0 }, "amount"},
		{"negative amount", func(b *Bet) { b.Amount = -5 }, "amount"},
		{"zero date", func(b *Bet) { b.Date = time.Time{} }, "date"},
		{"unknown outcome", func(b *Bet) { b.Outcome = "void" }, "outcome"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBet()
			tc.mutate(&b)
			err := b.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestEffectiveOdds(t *testing.T) {
	b := validBet()
	assert.Equal(t, 2.0, b.EffectiveOdds())

	boost := 2.5
	b.BoostedOdds = &boost
	assert.Equal(t, 2.5, b.EffectiveOdds())
}

func TestSettled(t *testing.T) {
	b := validBet()
	assert.False(t, b.Settled())

	b.Outcome = OutcomeWin
	assert.True(t, b.Settled())

	b.Outcome = OutcomeLoss
	assert.True(t, b.Settled())
}
