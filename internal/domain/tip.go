package domain

import "time"

// Tip is a user's voluntary sharing of one of their own bets. A bet can be
// shared at most once per user; the store rejects duplicates with
// ErrAlreadyExists. Tips are created and deleted, never edited.
type Tip struct {
	ID        string    `json:"id"`
	BetID     string    `json:"bet_id"`
	TipperID  string    `json:"tipper_id"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// VisibleTo reports whether the tip may be read by the given user: the
// creator always sees their own tips, everyone else only public ones.
func (t Tip) VisibleTo(userID string) bool {
	return t.IsPublic || t.TipperID == userID
}

// TipView is a tip joined with the display fields of its bet and the
// sharer's masked address, as listed on the tips page.
type TipView struct {
	Tip
	Website     string    `json:"website"`
	Description string    `json:"description"`
	Odds        float64   `json:"odds"`
	BoostedOdds *float64  `json:"boosted_odds,omitempty"`
	Outcome     Outcome   `json:"outcome"`
	BetDate     time.Time `json:"bet_date"`
	TipperName  string    `json:"tipper_name"` // masked email of the sharer
}
