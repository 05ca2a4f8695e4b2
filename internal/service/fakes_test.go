package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jdewit/bettrack/internal/domain"
	"github.com/jdewit/bettrack/internal/notify"
)

// ---------------------------------------------------------------------------
// In-memory fakes for the domain interfaces.
// ---------------------------------------------------------------------------

type fakeBetStore struct {
	mu   sync.Mutex
	bets map[string]domain.Bet // by id
}

func newFakeBetStore() *fakeBetStore {
	return &fakeBetStore{bets: make(map[string]domain.Bet)}
}

func (f *fakeBetStore) Insert(_ context.Context, b domain.Bet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bets[b.ID] = b
	return nil
}

func (f *fakeBetStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Bet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Bet
	for _, b := range f.bets {
		if b.Owner == ownerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeBetStore) GetByID(_ context.Context, ownerID, id string) (domain.Bet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bets[id]
	if !ok || b.Owner != ownerID {
		return domain.Bet{}, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeBetStore) Update(_ context.Context, ownerID string, b domain.Bet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.bets[b.ID]
	if !ok || old.Owner != ownerID {
		return domain.ErrNotFound
	}
	b.Owner = ownerID
	f.bets[b.ID] = b
	return nil
}

func (f *fakeBetStore) Delete(_ context.Context, ownerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bets[id]
	if !ok || b.Owner != ownerID {
		return domain.ErrNotFound
	}
	delete(f.bets, id)
	return nil
}

type fakeBetCache struct {
	mu    sync.Mutex
	lists map[string][]domain.Bet
	sets  int
	drops int
}

func newFakeBetCache() *fakeBetCache {
	return &fakeBetCache{lists: make(map[string][]domain.Bet)}
}

func (f *fakeBetCache) Get(_ context.Context, ownerID string) ([]domain.Bet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bets, ok := f.lists[ownerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return bets, nil
}

func (f *fakeBetCache) Set(_ context.Context, ownerID string, bets []domain.Bet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[ownerID] = bets
	f.sets++
	return nil
}

func (f *fakeBetCache) Invalidate(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lists, ownerID)
	f.drops++
	return nil
}

type fakeTipStore struct {
	mu   sync.Mutex
	tips map[string]domain.Tip
	bets *fakeBetStore
}

func newFakeTipStore(bets *fakeBetStore) *fakeTipStore {
	return &fakeTipStore{tips: make(map[string]domain.Tip), bets: bets}
}

func (f *fakeTipStore) Insert(_ context.Context, t domain.Tip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tips {
		if existing.BetID == t.BetID && existing.TipperID == t.TipperID {
			return domain.ErrAlreadyExists
		}
	}
	f.tips[t.ID] = t
	return nil
}

func (f *fakeTipStore) ListVisible(_ context.Context, userID string) ([]domain.TipView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TipView
	for _, t := range f.tips {
		if !t.VisibleTo(userID) {
			continue
		}
		v := domain.TipView{Tip: t}
		if b, ok := f.bets.bets[t.BetID]; ok {
			v.Website = b.Website
			v.Description = b.Description
			v.Odds = b.Odds
			v.Outcome = b.Outcome
			v.BetDate = b.Date
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTipStore) GetByID(_ context.Context, id string) (domain.Tip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tips[id]
	if !ok {
		return domain.Tip{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeTipStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.tips, id)
	return nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]domain.Profile)}
}

func (f *fakeProfileStore) Upsert(_ context.Context, p domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileStore) Get(_ context.Context, id string) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]domain.Session)}
}

func (f *fakeSessionStore) Put(_ context.Context, s domain.Session, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

type fakeBlob struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (f *fakeBlob) Put(_ context.Context, path string, data io.Reader, contentType string) error {
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = body
	f.types[path] = contentType
	return nil
}

type fakeDeleter struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeDeleter) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	return nil
}

type fakeLocks struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: make(map[string]bool)}
}

func (f *fakeLocks) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[key] {
		return nil, domain.ErrLockHeld
	}
	f.held[key] = true
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.held[key] = false
	}, nil
}

// ---------------------------------------------------------------------------
// Shared test helpers.
// ---------------------------------------------------------------------------

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNotifier() *notify.Notifier {
	return notify.NewNotifier(nil, nil, testLogger())
}

func f64(v float64) *float64 { return &v }

func validBet(owner string, date time.Time) domain.Bet {
	return domain.Bet{
		Owner:       owner,
		Website:     "bwin",
		Description: "over 2.5 goals",
		Odds:        2.0,
		Amount:      10,
		Date:        date,
		Outcome:     domain.OutcomePending,
	}
}
