package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdewit/bettrack/internal/domain"
)

// TipStore implements domain.TipStore using PostgreSQL.
type TipStore struct {
	pool *pgxpool.Pool
}

// NewTipStore creates a new TipStore backed by the given connection pool.
func NewTipStore(pool *pgxpool.Pool) *TipStore {
	return &TipStore{pool: pool}
}

var _ domain.TipStore = (*TipStore)(nil)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// Insert stores a new tip. Sharing the same bet twice trips the
// (bet_id, tipper_id) unique constraint and maps to ErrAlreadyExists.
func (s *TipStore) Insert(ctx context.Context, t domain.Tip) error {
	const query = `
		INSERT INTO tips (id, bet_id, tipper_id, is_public, created_at)
		VALUES ($1, $2, $3, $4, NOW())`

	_, err := s.pool.Exec(ctx, query, t.ID, t.BetID, t.TipperID, t.IsPublic)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("postgres: insert tip %s: %w", t.ID, err)
	}
	return nil
}

// ListVisible returns tips the user may see, newest first: public ones plus
// their own private ones, each joined with bet display fields and the
// sharer's masked address.
func (s *TipStore) ListVisible(ctx context.Context, userID string) ([]domain.TipView, error) {
	const query = `
		SELECT
			t.id, t.bet_id, t.tipper_id, t.is_public, t.created_at,
			b.website, b.description, b.odds, b.boosted_odds, b.outcome, b.bet_date,
			p.email
		FROM tips t
		JOIN bets b ON b.id = t.bet_id
		JOIN profiles p ON p.id = t.tipper_id
		WHERE t.is_public OR t.tipper_id = $1
		ORDER BY t.created_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: list tips: %w", err)
	}
	defer rows.Close()

	var views []domain.TipView
	for rows.Next() {
		var v domain.TipView
		var outcome, email string
		if err := rows.Scan(
			&v.ID, &v.BetID, &v.TipperID, &v.IsPublic, &v.CreatedAt,
			&v.Website, &v.Description, &v.Odds, &v.BoostedOdds, &outcome, &v.BetDate,
			&email,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan tip: %w", err)
		}
		v.Outcome = domain.Outcome(outcome)
		v.TipperName = domain.MaskEmail(email)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list tips rows: %w", err)
	}
	return views, nil
}

// GetByID retrieves a tip by primary key.
func (s *TipStore) GetByID(ctx context.Context, id string) (domain.Tip, error) {
	var t domain.Tip
	err := s.pool.QueryRow(ctx,
		`SELECT id, bet_id, tipper_id, is_public, created_at FROM tips WHERE id = $1`, id,
	).Scan(&t.ID, &t.BetID, &t.TipperID, &t.IsPublic, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Tip{}, domain.ErrNotFound
		}
		return domain.Tip{}, fmt.Errorf("postgres: get tip %s: %w", id, err)
	}
	return t, nil
}

// Delete removes a tip. Authorization (creator only) happens in the service
// layer, which loads the tip first.
func (s *TipStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete tip %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
