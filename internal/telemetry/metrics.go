package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/event"
)

const namespace = "eqgame"

// Metrics counts game events for prometheus.
type Metrics struct {
	Answers          *prometheus.CounterVec
	GamesFinished    *prometheus.CounterVec
	Achievements     *prometheus.CounterVec
	PowerUps         *prometheus.CounterVec
	DailyChallenges  *prometheus.CounterVec
	PersistenceFails *prometheus.CounterVec
	RPCs             *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Resolved questions by result.",
		}, []string{"result", "difficulty"}),
		GamesFinished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached game over, by difficulty.",
		}, []string{"difficulty"}),
		Achievements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_unlocked_total",
			Help:      "Achievement tier increments.",
		}, []string{"achievement"}),
		PowerUps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "powerups_activated_total",
			Help:      "Power-ups applied.",
		}, []string{"powerup"}),
		DailyChallenges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_challenges_total",
			Help:      "Daily challenge completions and claims.",
		}, []string{"action"}),
		PersistenceFails: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_errors_total",
			Help:      "Snapshot writes that failed.",
		}, []string{"key"}),
		RPCs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Unary gRPC calls by method and status code.",
		}, []string{"method", "code"}),
	}
}

// Subscribe counts the game events published on eb.
func (m *Metrics) Subscribe(eb *event.Bus) {
	eb.Subscribe(domain.EventNameAnswerResolved, func(_ context.Context, e event.Event) error {
		ev := e.(domain.EventAnswerResolved)
		m.Answers.WithLabelValues(string(ev.Result), string(ev.Difficulty)).Inc()
		return nil
	})

	eb.Subscribe(domain.EventNameGameFinished, func(_ context.Context, e event.Event) error {
		m.GamesFinished.WithLabelValues(string(e.(domain.EventGameFinished).Entry.Difficulty)).Inc()
		return nil
	})

	eb.Subscribe(domain.EventNameAchievementUnlocked, func(_ context.Context, e event.Event) error {
		for _, id := range e.(domain.EventAchievementUnlocked).Unlocked {
			m.Achievements.WithLabelValues(string(id)).Inc()
		}
		return nil
	})

	eb.Subscribe(domain.EventNamePowerUpActivated, func(_ context.Context, e event.Event) error {
		m.PowerUps.WithLabelValues(e.(domain.EventPowerUpActivated).Title).Inc()
		return nil
	})

	eb.Subscribe(domain.EventNameDailyChallengeCompleted, func(context.Context, event.Event) error {
		m.DailyChallenges.WithLabelValues("completed").Inc()
		return nil
	})

	eb.Subscribe(domain.EventNameDailyChallengeClaimed, func(context.Context, event.Event) error {
		m.DailyChallenges.WithLabelValues("claimed").Inc()
		return nil
	})

	eb.Subscribe(domain.EventNamePersistenceFailed, func(_ context.Context, e event.Event) error {
		m.PersistenceFails.WithLabelValues(e.(domain.EventPersistenceFailed).Key).Inc()
		return nil
	})
}
