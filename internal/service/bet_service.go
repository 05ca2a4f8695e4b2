package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/notify"
)

// BetService handles the bet CRUD operations behind the history page.
type BetService struct {
	bets     domain.BetStore
	cache    domain.BetListCache
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewBetService creates a BetService with all required dependencies.
func NewBetService(
	bets domain.BetStore,
	cache domain.BetListCache,
	notifier *notify.Notifier,
	logger *slog.Logger,
) *BetService {
	return &BetService{
		bets:     bets,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns the user's full bet list, checking the cache first and
// falling back to the persistent store on a miss.
func (s *BetService) List(ctx context.Context, ownerID string) ([]domain.Bet, error) {
	bets, err := s.cache.Get(ctx, ownerID)
	if err == nil {
		return bets, nil
	}

	bets, err = s.bets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("bet_service: list: %w", err)
	}

	// Back-fill cache; log but do not fail on cache write errors.
	if cacheErr := s.cache.Set(ctx, ownerID, bets); cacheErr != nil {
		s.logger.WarnContext(ctx, "bet_service: cache set failed",
			slog.String("owner_id", ownerID),
			slog.String("error", cacheErr.Error()),
		)
	}
	return bets, nil
}

// Create validates and stores a new bet for the owner. The ID, owner and
// outcome default are assigned here, whatever the client sent.
func (s *BetService) Create(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error) {
	bet.ID = uuid.New().String()
	bet.Owner = ownerID
	if bet.Outcome == "" {
		bet.Outcome = domain.OutcomePending
	}

	if err := bet.Validate(); err != nil {
		return domain.Bet{}, err
	}

	if err := s.bets.Insert(ctx, bet); err != nil {
		return domain.Bet{}, fmt.Errorf("bet_service: create: %w", err)
	}
	s.invalidate(ctx, ownerID)

	s.logger.InfoContext(ctx, "bet_service: bet created",
		slog.String("bet_id", bet.ID),
		slog.String("owner_id", ownerID),
	)
	return bet, nil
}

// Get retrieves one of the owner's bets.
func (s *BetService) Get(ctx context.Context, ownerID, id string) (domain.Bet, error) {
	bet, err := s.bets.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Bet{}, err
	}
	return bet, nil
}

// Update validates and rewrites one of the owner's bets. When the edit
// settles a previously pending bet, a "bet settled" notification goes out.
func (s *BetService) Update(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error) {
	if err := bet.Validate(); err != nil {
		return domain.Bet{}, err
	}

	old, err := s.bets.GetByID(ctx, ownerID, bet.ID)
	if err != nil {
		return domain.Bet{}, err
	}

	bet.Owner = ownerID
	if err := s.bets.Update(ctx, ownerID, bet); err != nil {
		return domain.Bet{}, fmt.Errorf("bet_service: update: %w", err)
	}
	s.invalidate(ctx, ownerID)

	if !old.Settled() && bet.Settled() {
		title, message := notify.BetSettledMessage(bet)
		if nerr := s.notifier.Notify(ctx, notify.EventBetSettled, title, message); nerr != nil {
			s.logger.WarnContext(ctx, "bet_service: settle notification failed",
				slog.String("bet_id", bet.ID),
				slog.String("error", nerr.Error()),
			)
		}
	}
	return bet, nil
}

// Delete removes one of the owner's bets.
func (s *BetService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.bets.Delete(ctx, ownerID, id); err != nil {
		if err == domain.ErrNotFound {
			return err
		}
		return fmt.Errorf("bet_service: delete: %w", err)
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// invalidate drops the owner's cached list after any write. Non-fatal: the
// cache expires on its own.
func (s *BetService) invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.WarnContext(ctx, "bet_service: cache invalidate failed",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()),
		)
	}
}
