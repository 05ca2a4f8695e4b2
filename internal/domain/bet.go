package domain

import "time"

// Outcome represents the settlement state of a bet. A bet starts pending and
// is settled to win or loss by an explicit edit. Settled bets can be edited
// back to pending; the tracker deliberately allows correcting entry mistakes
// rather than enforcing a one-way transition.
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
)

// Valid reports whether o is one of the known outcome values.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePending, OutcomeWin, OutcomeLoss:
		return true
	}
	return false
}

// MinOdds is the lowest accepted decimal odds value, for both the standard
// and the boosted price.
const MinOdds = 1.01

// Bet represents one wager logged by a user.
type Bet struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"` // user ID, set at creation and never changed
	Website     string    `json:"website"`
	Description string    `json:"description"`
	Odds        float64   `json:"odds"`
	BoostedOdds *float64  `json:"boosted_odds,omitempty"` // promotional odds; payout uses these when present
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"` // day granularity
	Outcome     Outcome   `json:"outcome"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EffectiveOdds returns the odds used for payout: the boosted odds when
// present, otherwise the standard odds.
func (b Bet) EffectiveOdds() float64 {
	if b.BoostedOdds != nil {
		return *b.BoostedOdds
	}
	return b.Odds
}

// Settled reports whether the bet has a terminal outcome.
func (b Bet) Settled() bool {
	return b.Outcome == OutcomeWin || b.Outcome == OutcomeLoss
}

// Validate checks the invariants a bet must satisfy before it is stored.
// It returns a *ValidationError naming the first offending field, so that
// malformed input is rejected at the entry boundary and never reaches the
// statistics aggregates.
func (b Bet) Validate() error {
	if b.Website == "" {
		return &ValidationError{Field: "website", Reason: "required"}
	}
	if b.Description == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if b.Odds < MinOdds {
		return &ValidationError{Field: "odds", Reason: "must be 1.01 or higher"}
	}
	if b.BoostedOdds != nil && *b.BoostedOdds < MinOdds {
		return &ValidationError{Field: "boosted_odds", Reason: "must be 1.01 or higher"}
	}
	if b.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	if b.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if !b.Outcome.Valid() {
		return &ValidationError{Field: "outcome", Reason: "must be pending, win or loss"}
	}
	return nil
}
