// Package daily manages the once-per-day challenge: its creation per calendar day, progress, completion, claim and
// the rolling 24 hour countdown.
package daily

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/store"
)

const (
	Title       = "Daily EQ Challenge"
	Description = "Complete 5 scenarios in a row without mistakes"
	RewardCoins = 100

	// Countdown is the length of the rolling countdown in seconds.
	Countdown    = 24 * 60 * 60
	ProgressStep = 20

	dateLayout = "2006-01-02"
)

type Config struct {
	Store store.Store
	Now   func() time.Time
}

// Manager owns the current challenge. It is safe for concurrent use.
type Manager struct {
	store store.Store
	now   func() time.Time

	mu sync.Mutex
	c  domain.Challenge
}

type snapshot struct {
	Date      string           `json:"date"`
	Challenge domain.Challenge `json:"challenge"`
}

func NewManager(c Config) *Manager {
	if c.Now == nil {
		c.Now = time.Now
	}

	return &Manager{
		store: c.Store,
		now:   c.Now,
	}
}

// DateKey returns the calendar-day key of t.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// GetOrCreate returns the persisted challenge of today, or replaces whatever is stored with a fresh one.
// A missing or corrupt snapshot counts as absent.
func (m *Manager) GetOrCreate(ctx context.Context, today time.Time) domain.Challenge {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := DateKey(today)
	if m.c.Date == key {
		return m.c
	}

	var snap snapshot
	ok, err := store.LoadJSON(ctx, m.store, store.KeyDailyChallenge, &snap)
	if err != nil {
		slog.WarnContext(ctx, "daily: load challenge failed", "error", err)
	}

	if ok && err == nil && snap.Date == key {
		m.c = snap.Challenge
		m.c.Date = key
		if m.c.SecondsLeft <= 0 || m.c.SecondsLeft > Countdown {
			m.c.SecondsLeft = Countdown
		}
		return m.c
	}

	m.c = domain.Challenge{
		Date:        key,
		Title:       Title,
		Description: Description,
		RewardCoins: RewardCoins,
		SecondsLeft: Countdown,
	}
	m.save(ctx)

	return m.c
}

// Current returns the challenge, creating today's when none is loaded yet.
func (m *Manager) Current(ctx context.Context) domain.Challenge {
	return m.GetOrCreate(ctx, m.now())
}

// Progress advances the challenge by one step. It reports whether this step completed it.
func (m *Manager) Progress(ctx context.Context) (domain.Challenge, bool, error) {
	m.ensure(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.c.Completed {
		return m.c, false, errors.FailedPrecondition("daily challenge already completed")
	}

	m.c.ProgressPercent = min(m.c.ProgressPercent+ProgressStep, 100)
	completed := m.c.ProgressPercent == 100
	if completed {
		m.c.Completed = true
	}
	m.save(ctx)

	return m.c, completed, nil
}

// Complete marks the challenge completed. The reward is the caller's to grant, once per completion.
func (m *Manager) Complete(ctx context.Context) (domain.Challenge, error) {
	m.ensure(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.c.Completed {
		return m.c, errors.FailedPrecondition("daily challenge already completed")
	}

	m.c.Completed = true
	m.c.ProgressPercent = 100
	m.save(ctx)

	return m.c, nil
}

// Claim marks a completed challenge claimed.
func (m *Manager) Claim(ctx context.Context) (domain.Challenge, error) {
	m.ensure(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case !m.c.Completed:
		return m.c, errors.FailedPrecondition("daily challenge not completed")
	case m.c.Claimed:
		return m.c, errors.FailedPrecondition("daily challenge already claimed")
	}

	m.c.Claimed = true
	m.save(ctx)

	return m.c, nil
}

// Tick decrements the countdown by one second. When it reaches zero the challenge restarts: progress 0, not
// completed, not claimed and a full countdown. It reports whether the restart happened.
func (m *Manager) Tick(ctx context.Context) (domain.Challenge, bool) {
	m.ensure(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.c.SecondsLeft--
	if m.c.SecondsLeft > 0 {
		return m.c, false
	}

	m.c.ProgressPercent = 0
	m.c.Completed = false
	m.c.Claimed = false
	m.c.SecondsLeft = Countdown
	m.save(ctx)

	return m.c, true
}

// Flush persists the challenge with its current countdown.
func (m *Manager) Flush(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.c.Date == "" {
		return
	}
	m.save(ctx)
}

// ensure loads today's challenge, rolling over to a fresh one once the calendar day changes.
func (m *Manager) ensure(ctx context.Context) {
	m.GetOrCreate(ctx, m.now())
}

func (m *Manager) save(ctx context.Context) {
	if err := store.SaveJSON(ctx, m.store, store.KeyDailyChallenge, snapshot{Date: m.c.Date, Challenge: m.c}); err != nil {
		slog.WarnContext(ctx, "daily: persist challenge failed", "error", err)
	}
}
