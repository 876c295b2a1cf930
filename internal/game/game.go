// Package game is the session state machine driving the quiz: phases, overlays, the question timer, scoring,
// achievements, power-ups and the daily challenge. Every operation runs to completion under one lock and flushes
// the session snapshot before returning.
package game

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/victornm/eqgame/internal/achievement"
	"github.com/victornm/eqgame/internal/audio"
	"github.com/victornm/eqgame/internal/daily"
	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/event"
	"github.com/victornm/eqgame/internal/leaderboard"
	"github.com/victornm/eqgame/internal/powerup"
	"github.com/victornm/eqgame/internal/question"
	"github.com/victornm/eqgame/internal/scoring"
	"github.com/victornm/eqgame/internal/settings"
	"github.com/victornm/eqgame/internal/store"
)

const (
	DefaultPlayer     = "Player"
	DefaultDifficulty = domain.DifficultyMedium

	maxNameLength = 32
)

type Config struct {
	Store       store.Store
	EventBus    *event.Bus
	Questions   *question.Bank
	Daily       *daily.Manager
	Leaderboard *leaderboard.Service
	Audio       audio.Player
	// Player is the name of a fresh session.
	Player        string
	Now           func() time.Time
	NewTickerFunc func(d time.Duration) Ticker
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type Game struct {
	id        string
	store     store.Store
	eb        *event.Bus
	bank      *question.Bank
	daily     *daily.Manager
	lb        *leaderboard.Service
	audio     audio.Player
	player    string
	now       func() time.Time
	newTicker func(d time.Duration) Ticker

	mu       sync.Mutex
	ctx      context.Context
	phase    domain.Phase
	overlays []domain.Overlay
	session  domain.Session
	settings domain.Settings
	answer   *Feedback
	hint     string
	final    *Result

	question  timer
	countdown timer
}

// Feedback is the outcome of the last resolved question.
type Feedback struct {
	Result domain.AnswerResult `json:"result"`
	// Selected is the chosen option, -1 on timeout.
	Selected int    `json:"selected"`
	Correct  int    `json:"correct"`
	Points   int    `json:"points"`
	Insight  string `json:"insight"`
}

// Result is the scoring of a finished game.
type Result struct {
	FinalScore   int  `json:"finalScore"`
	Rank         int  `json:"rank"`
	PersonalBest bool `json:"personalBest"`
}

func New(c Config) *Game {
	if c.Questions == nil {
		c.Questions = question.Default()
	}
	if c.Store == nil {
		c.Store = store.NewMemory()
	}
	if c.Daily == nil {
		c.Daily = daily.NewManager(daily.Config{Store: c.Store, Now: c.Now})
	}
	if c.Leaderboard == nil {
		c.Leaderboard = leaderboard.NewService(leaderboard.Config{Store: c.Store})
	}
	if c.Audio == nil {
		c.Audio = audio.NewLogPlayer(settings.Default().AudioSettings)
	}
	if c.Player == "" {
		c.Player = DefaultPlayer
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewTickerFunc == nil {
		c.NewTickerFunc = newTimeTicker
	}

	return &Game{
		id:        uuid.NewString(),
		store:     c.Store,
		eb:        c.EventBus,
		bank:      c.Questions,
		daily:     c.Daily,
		lb:        c.Leaderboard,
		audio:     c.Audio,
		player:    c.Player,
		now:       c.Now,
		newTicker: c.NewTickerFunc,
		ctx:       context.Background(),
		phase:     domain.PhaseMenu,
		session:   defaultSession(c.Player),
		settings:  settings.Default(),
	}
}

func (g *Game) ID() string {
	return g.id
}

// Init loads the persisted session and settings, falling back to defaults, starts the background music and the
// daily challenge countdown. The game starts in the menu.
func (g *Game) Init(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ctx = context.WithoutCancel(ctx)

	var s domain.Session
	ok, err := store.LoadJSON(ctx, g.store, store.KeySession, &s)
	switch {
	case err != nil:
		slog.WarnContext(ctx, "game: load session failed, using defaults", "error", err)
		g.session = defaultSession(g.player)
	case !ok:
		g.session = defaultSession(g.player)
	default:
		g.session = g.sanitize(s)
	}

	g.settings = settings.Load(ctx, g.store)
	g.audio.Configure(ctx, g.settings.AudioSettings)
	g.audio.PlayMusic(ctx)

	g.session.DailyChallengeCompleted = g.daily.GetOrCreate(ctx, g.now()).Completed

	g.phase = domain.PhaseMenu
	g.overlays = nil
	g.armCountdown()

	slog.InfoContext(ctx, "game: initialized", "game", g.id, "player", g.session.UserName)
}

// Teardown stops the timers and the music and flushes the final state.
func (g *Game) Teardown(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.question.disarm()
	g.countdown.disarm()
	g.session.TimerRunning = false

	g.save(ctx)
	g.daily.Flush(ctx)
	g.audio.StopMusic(ctx)

	slog.InfoContext(ctx, "game: teardown completed", "game", g.id)
}

func defaultSession(player string) domain.Session {
	return domain.Session{
		Level:                scoring.StartingLevel,
		Hearts:               scoring.StartingHearts,
		Difficulty:           DefaultDifficulty,
		UnlockedAchievements: domain.NewLedger(),
		UserName:             player,
		Timer:                scoring.StartingTimer(DefaultDifficulty),
	}
}

// sanitize repairs a loaded snapshot so that it holds the session invariants.
func (g *Game) sanitize(s domain.Session) domain.Session {
	s.Score = max(s.Score, 0)
	s.XP = max(s.XP, 0)
	s.Coins = max(s.Coins, 0)
	s.Streak = max(s.Streak, 0)
	s.PersonalBest = max(s.PersonalBest, 0)
	s.Level = max(s.Level, scoring.StartingLevel)

	if s.Hearts <= 0 {
		s.Hearts = scoring.StartingHearts
	}
	s.Hearts = min(s.Hearts, scoring.MaxHearts)

	if !s.Difficulty.Valid() {
		s.Difficulty = DefaultDifficulty
	}
	if s.CurrentQuestion < 0 || s.CurrentQuestion >= g.bank.Len() {
		s.CurrentQuestion = 0
	}
	if s.UserName == "" {
		s.UserName = g.player
	}

	s.UnlockedAchievements = achievement.Normalize(s.UnlockedAchievements)
	s.ActivePowerUps = slices.DeleteFunc(s.ActivePowerUps, func(id domain.PowerUpID) bool {
		_, ok := powerup.Lookup(id)
		return !ok
	})

	s.Timer = scoring.StartingTimer(s.Difficulty)
	s.TimerRunning = false
	return s
}

// save writes the session snapshot. A failed write is logged and reported on the bus, never returned.
func (g *Game) save(ctx context.Context) {
	if err := store.SaveJSON(ctx, g.store, store.KeySession, g.session); err != nil {
		slog.WarnContext(ctx, "game: persist snapshot failed", "key", store.KeySession, "error", err)
		g.eb.Publish(ctx, domain.EventPersistenceFailed{Key: store.KeySession, Err: err})
	}
}

func (g *Game) publish(ctx context.Context, e event.Event) {
	g.eb.Publish(ctx, e)
}

// record feeds the achievement tracker and announces the tiers that moved.
func (g *Game) record(ctx context.Context, events ...achievement.Event) {
	var unlocked []domain.AchievementID
	for _, e := range events {
		var bumped []domain.AchievementID
		g.session.UnlockedAchievements, bumped = achievement.Record(g.session.UnlockedAchievements, e)
		unlocked = append(unlocked, bumped...)
	}

	if len(unlocked) == 0 {
		return
	}

	g.publish(ctx, domain.EventAchievementUnlocked{
		Unlocked: unlocked,
		Ledger:   g.session.UnlockedAchievements.Clone(),
	})
}

func requirePhase(have domain.Phase, want ...domain.Phase) error {
	if slices.Contains(want, have) {
		return nil
	}
	return errors.FailedPrecondition("not allowed in phase %s", have)
}
