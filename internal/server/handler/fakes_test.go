package handler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/service"
	"github.com/jdewit/bettrack/internal/stats"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func f64(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeAuthService struct {
	session    domain.Session
	signInErr  error
	signedOut  []string
	signOutErr error
}

func (f *fakeAuthService) SignInWithGoogleToken(ctx context.Context, idToken string) (domain.Session, error) {
	if f.signInErr != nil {
		return domain.Session{}, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAuthService) SignOut(ctx context.Context, token string) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.signedOut = append(f.signedOut, token)
	return nil
}

type fakeBetService struct {
	created   []domain.Bet
	updated   []domain.Bet
	deleted   []string
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeBetService) Create(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error) {
	if f.createErr != nil {
		return domain.Bet{}, f.createErr
	}
	bet.ID = "bet-1"
	bet.Owner = ownerID
	f.created = append(f.created, bet)
	return bet, nil
}

func (f *fakeBetService) Update(ctx context.Context, ownerID string, bet domain.Bet) (domain.Bet, error) {
	if f.updateErr != nil {
		return domain.Bet{}, f.updateErr
	}
	bet.Owner = ownerID
	f.updated = append(f.updated, bet)
	return bet, nil
}

func (f *fakeBetService) Delete(ctx context.Context, ownerID, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeHistoryService struct {
	page       service.HistoryPage
	err        error
	gotFilter  stats.Filter
	gotField   stats.SortField
	gotDir     stats.SortDirection
	gotPage    int
	gotOwnerID string
}

func (f *fakeHistoryService) History(ctx context.Context, ownerID string, filter stats.Filter, field stats.SortField, dir stats.SortDirection, page int) (service.HistoryPage, error) {
	f.gotOwnerID = ownerID
	f.gotFilter = filter
	f.gotField = field
	f.gotDir = dir
	f.gotPage = page
	if f.err != nil {
		return service.HistoryPage{}, f.err
	}
	return f.page, nil
}

type fakeTipService struct {
	tips      []domain.TipView
	shared    domain.TipView
	shareErr  error
	listErr   error
	deleted   []string
	deleteErr error
	gotPublic bool
}

func (f *fakeTipService) Share(ctx context.Context, userID, betID string, isPublic bool) (domain.TipView, error) {
	f.gotPublic = isPublic
	if f.shareErr != nil {
		return domain.TipView{}, f.shareErr
	}
	return f.shared, nil
}

func (f *fakeTipService) ListVisible(ctx context.Context, userID string) ([]domain.TipView, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tips, nil
}

func (f *fakeTipService) Delete(ctx context.Context, userID, tipID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, tipID)
	return nil
}

type fakeDashboardService struct {
	dash      service.Dashboard
	err       error
	gotFilter stats.Filter
}

func (f *fakeDashboardService) Dashboard(ctx context.Context, ownerID string, filter stats.Filter) (service.Dashboard, error) {
	f.gotFilter = filter
	if f.err != nil {
		return service.Dashboard{}, f.err
	}
	return f.dash, nil
}

type fakeStrategyService struct {
	view service.Strategy
	err  error
}

func (f *fakeStrategyService) StrategyView(ctx context.Context, ownerID string) (service.Strategy, error) {
	if f.err != nil {
		return service.Strategy{}, f.err
	}
	return f.view, nil
}

type fakeExportService struct {
	result    service.ExportResult
	exportErr error
	infos     []domain.BlobInfo
	listErr   error
	deleted   []string
	deleteErr error
}

func (f *fakeExportService) Export(ctx context.Context, ownerID string) (service.ExportResult, error) {
	if f.exportErr != nil {
		return service.ExportResult{}, f.exportErr
	}
	return f.result, nil
}

func (f *fakeExportService) ListExports(ctx context.Context, ownerID string) ([]domain.BlobInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.infos, nil
}

func (f *fakeExportService) DeleteExport(ctx context.Context, ownerID, path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, path)
	return nil
}
