package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/notify"
)

// TipService handles sharing bets as tips and the shared tips feed.
type TipService struct {
	tips     domain.TipStore
	bets     domain.BetStore
	profiles domain.ProfileStore
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewTipService creates a TipService with all required dependencies.
func NewTipService(
	tips domain.TipStore,
	bets domain.BetStore,
	profiles domain.ProfileStore,
	notifier *notify.Notifier,
	logger *slog.Logger,
) *TipService {
	return &TipService{
		tips:     tips,
		bets:     bets,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
	}
}

// Share publishes one of the user's own bets as a tip. Sharing someone
// else's bet id surfaces as ErrNotFound (the owner-scoped lookup never sees
// it); sharing the same bet twice returns ErrAlreadyExists.
func (s *TipService) Share(ctx context.Context, userID, betID string, isPublic bool) (domain.TipView, error) {
	bet, err := s.bets.GetByID(ctx, userID, betID)
	if err != nil {
		return domain.TipView{}, err
	}

	tip := domain.Tip{
		ID:       uuid.New().String(),
		BetID:    bet.ID,
		TipperID: userID,
		IsPublic: isPublic,
	}
	if err := s.tips.Insert(ctx, tip); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.TipView{}, domain.ErrAlreadyExists
		}
		return domain.TipView{}, fmt.Errorf("tip_service: share: %w", err)
	}

	view := domain.TipView{
		Tip:         tip,
		Website:     bet.Website,
		Description: bet.Description,
		Odds:        bet.Odds,
		BoostedOdds: bet.BoostedOdds,
		Outcome:     bet.Outcome,
		BetDate:     bet.Date,
	}
	if profile, perr := s.profiles.Get(ctx, userID); perr == nil {
		view.TipperName = domain.MaskEmail(profile.Email)
	} else {
		view.TipperName = "Anonymous"
	}

	title, message := notify.TipSharedMessage(view)
	if nerr := s.notifier.Notify(ctx, notify.EventTipShared, title, message); nerr != nil {
		s.logger.WarnContext(ctx, "tip_service: share notification failed",
			slog.String("tip_id", tip.ID),
			slog.String("error", nerr.Error()),
		)
	}

	s.logger.InfoContext(ctx, "tip_service: tip shared",
		slog.String("tip_id", tip.ID),
		slog.String("bet_id", betID),
		slog.Bool("public", isPublic),
	)
	return view, nil
}

// ListVisible returns the tips feed for the user: all public tips plus
// their own private ones, newest first.
func (s *TipService) ListVisible(ctx context.Context, userID string) ([]domain.TipView, error) {
	views, err := s.tips.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("tip_service: list: %w", err)
	}
	return views, nil
}

// Delete removes a tip. Only its creator may delete it.
func (s *TipService) Delete(ctx context.Context, userID, tipID string) error {
	tip, err := s.tips.GetByID(ctx, tipID)
	if err != nil {
		return err
	}
	if tip.TipperID != userID {
		return domain.ErrForbidden
	}
	if err := s.tips.Delete(ctx, tipID); err != nil {
		return fmt.Errorf("tip_service: delete: %w", err)
	}
	return nil
}
