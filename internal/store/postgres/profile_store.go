package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdewit/bettrack/internal/domain"
)

// ProfileStore implements domain.ProfileStore using PostgreSQL.
type ProfileStore struct {
	pool *pgxpool.Pool
}

// NewProfileStore creates a new ProfileStore backed by the given connection pool.
func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

var _ domain.ProfileStore = (*ProfileStore)(nil)

// Upsert inserts or refreshes a user's profile row.
func (s *ProfileStore) Upsert(ctx context.Context, p domain.Profile) error {
	const query = `
		INSERT INTO profiles (id, email, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email      = EXCLUDED.email,
			updated_at = NOW()`

	if _, err := s.pool.Exec(ctx, query, p.ID, p.Email); err != nil {
		return fmt.Errorf("postgres: upsert profile %s: %w", p.ID, err)
	}
	return nil
}

// Get retrieves a profile by user ID.
func (s *ProfileStore) Get(ctx context.Context, id string) (domain.Profile, error) {
	var p domain.Profile
	err := s.pool.QueryRow(ctx,
		`SELECT id, email FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("postgres: get profile %s: %w", id, err)
	}
	return p, nil
}
