package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdewit/bettrack/internal/domain"
)

// BetStore implements domain.BetStore using PostgreSQL.
type BetStore struct {
	pool *pgxpool.Pool
}

// NewBetStore creates a new BetStore backed by the given connection pool.
func NewBetStore(pool *pgxpool.Pool) *BetStore {
	return &BetStore{pool: pool}
}

var _ domain.BetStore = (*BetStore)(nil)

const betCols = `id, owner_id, website, description, odds, boosted_odds,
	amount, bet_date, outcome, note, created_at, updated_at`

// scanBet scans a single bet row into a domain.Bet.
func scanBet(row pgx.Row) (domain.Bet, error) {
	var b domain.Bet
	var outcome string
	err := row.Scan(
		&b.ID, &b.Owner, &b.Website, &b.Description,
		&b.Odds, &b.BoostedOdds, &b.Amount, &b.Date,
		&outcome, &b.Note, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Bet{}, err
	}
	b.Outcome = domain.Outcome(outcome)
	return b, nil
}

// Insert stores a new bet.
func (s *BetStore) Insert(ctx context.Context, b domain.Bet) error {
	const query = `
		INSERT INTO bets (
			id, owner_id, website, description, odds, boosted_odds,
			amount, bet_date, outcome, note, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, NOW(), NOW()
		)`

	_, err := s.pool.Exec(ctx, query,
		b.ID, b.Owner, b.Website, b.Description,
		b.Odds, b.BoostedOdds, b.Amount, b.Date,
		string(b.Outcome), b.Note,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert bet %s: %w", b.ID, err)
	}
	return nil
}

// ListByOwner returns every bet the user has logged, newest bet date first.
func (s *BetStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Bet, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+betCols+` FROM bets WHERE owner_id = $1 ORDER BY bet_date DESC, created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list bets: %w", err)
	}
	defer rows.Close()

	var bets []domain.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan bet: %w", err)
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list bets rows: %w", err)
	}
	return bets, nil
}

// GetByID retrieves one of the owner's bets by primary key.
func (s *BetStore) GetByID(ctx context.Context, ownerID, id string) (domain.Bet, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+betCols+` FROM bets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	b, err := scanBet(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Bet{}, domain.ErrNotFound
		}
		return domain.Bet{}, fmt.Errorf("postgres: get bet %s: %w", id, err)
	}
	return b, nil
}

// Update rewrites the mutable fields of one of the owner's bets.
func (s *BetStore) Update(ctx context.Context, ownerID string, b domain.Bet) error {
	const query = `
		UPDATE bets SET
			website      = $3,
			description  = $4,
			odds         = $5,
			boosted_odds = $6,
			amount       = $7,
			bet_date     = $8,
			outcome      = $9,
			note         = $10,
			updated_at   = NOW()
		WHERE id = $1 AND owner_id = $2`

	tag, err := s.pool.Exec(ctx, query,
		b.ID, ownerID,
		b.Website, b.Description, b.Odds, b.BoostedOdds,
		b.Amount, b.Date, string(b.Outcome), b.Note,
	)
	if err != nil {
		return fmt.Errorf("postgres: update bet %s: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes one of the owner's bets. Shared tips referencing the bet go
// with it via the foreign key cascade.
func (s *BetStore) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM bets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("postgres: delete bet %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
