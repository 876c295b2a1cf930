package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/event"
	"github.com/victornm/eqgame/internal/telemetry"
)

func TestMetrics_Subscribe(t *testing.T) {
	ctx := context.Background()
	eb := event.NewBus()
	m := telemetry.NewMetrics(prometheus.NewRegistry())
	m.Subscribe(eb)

	eb.Publish(ctx, domain.EventAnswerResolved{Result: domain.AnswerCorrect, Points: 450, Difficulty: domain.DifficultyMedium})
	eb.Publish(ctx, domain.EventAnswerResolved{Result: domain.AnswerCorrect, Points: 300, Difficulty: domain.DifficultyMedium})
	eb.Publish(ctx, domain.EventAnswerResolved{Result: domain.AnswerTimeout, Difficulty: domain.DifficultyMedium})
	eb.Publish(ctx, domain.EventGameFinished{Entry: domain.LeaderboardEntry{Difficulty: domain.DifficultyHard}, Rank: 1})
	eb.Publish(ctx, domain.EventAchievementUnlocked{Unlocked: []domain.AchievementID{
		domain.AchievementQuickThinker, domain.AchievementEmpathyMaster,
	}})
	eb.Publish(ctx, domain.EventDailyChallengeCompleted{})
	eb.Publish(ctx, domain.EventPersistenceFailed{Key: "sessionSnapshot", Err: errors.New("disk full")})
	eb.Stop()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Answers.WithLabelValues("correct", "medium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("timeout", "medium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesFinished.WithLabelValues("hard")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Achievements))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DailyChallenges.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistenceFails.WithLabelValues("sessionSnapshot")))
}
