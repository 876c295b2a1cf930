package achievement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/eqgame/internal/achievement"
	"github.com/victornm/eqgame/internal/domain"
)

func TestRecord(t *testing.T) {
	tests := map[string]struct {
		ledger func() domain.Ledger
		event  achievement.Event
		want   map[domain.AchievementID]int
		bumped []domain.AchievementID
	}{
		"quick correct answer bumps quick thinker": {
			event:  achievement.CorrectAnswer{TimeRemaining: 21, Streak: 1},
			want:   map[domain.AchievementID]int{domain.AchievementQuickThinker: 1},
			bumped: []domain.AchievementID{domain.AchievementQuickThinker},
		},
		"20 seconds left is not quick": {
			event: achievement.CorrectAnswer{TimeRemaining: 20, Streak: 1},
			want:  map[domain.AchievementID]int{domain.AchievementQuickThinker: 0},
		},
		"streak of exactly 5 bumps empathy master": {
			event:  achievement.CorrectAnswer{TimeRemaining: 10, Streak: 5},
			want:   map[domain.AchievementID]int{domain.AchievementEmpathyMaster: 1},
			bumped: []domain.AchievementID{domain.AchievementEmpathyMaster},
		},
		"streak of 6 does not bump empathy master": {
			event: achievement.CorrectAnswer{TimeRemaining: 10, Streak: 6},
			want:  map[domain.AchievementID]int{domain.AchievementEmpathyMaster: 0},
		},
		"level up bumps consistent performer": {
			event:  achievement.LevelUp{},
			want:   map[domain.AchievementID]int{domain.AchievementConsistentPerformer: 1},
			bumped: []domain.AchievementID{domain.AchievementConsistentPerformer},
		},
		"coin milestone below 1000 is ignored": {
			event: achievement.CoinMilestone{Coins: 999},
			want:  map[domain.AchievementID]int{domain.AchievementCoinCollector: 0},
		},
		"coin milestone at 1000 bumps coin collector": {
			event:  achievement.CoinMilestone{Coins: 1000},
			want:   map[domain.AchievementID]int{domain.AchievementCoinCollector: 1},
			bumped: []domain.AchievementID{domain.AchievementCoinCollector},
		},
		"mini-game win bumps champion": {
			event:  achievement.MiniGameWin{},
			want:   map[domain.AchievementID]int{domain.AchievementMiniGameChampion: 1},
			bumped: []domain.AchievementID{domain.AchievementMiniGameChampion},
		},
		"daily challenge bumps daily challenger": {
			ledger: func() domain.Ledger {
				l := domain.NewLedger()
				l[domain.AchievementDailyChallenger] = 2
				return l
			},
			event:  achievement.DailyChallengeComplete{},
			want:   map[domain.AchievementID]int{domain.AchievementDailyChallenger: 3},
			bumped: []domain.AchievementID{domain.AchievementDailyChallenger},
		},
		"tier 3 is the cap": {
			ledger: func() domain.Ledger {
				l := domain.NewLedger()
				l[domain.AchievementConsistentPerformer] = 3
				return l
			},
			event: achievement.LevelUp{},
			want:  map[domain.AchievementID]int{domain.AchievementConsistentPerformer: 3},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			in := domain.NewLedger()
			if tt.ledger != nil {
				in = tt.ledger()
			}
			before := in.Clone()

			got, bumped := achievement.Record(in, tt.event)

			for id, tier := range tt.want {
				assert.Equal(t, tier, got[id], "tier of %s", id)
			}
			assert.Equal(t, tt.bumped, bumped)
			assert.Equal(t, before, in, "input ledger must not be modified")
		})
	}
}

func TestRecord_TiersNeverDecreaseNorExceedCap(t *testing.T) {
	events := []achievement.Event{
		achievement.CorrectAnswer{TimeRemaining: 40, Streak: 5},
		achievement.LevelUp{},
		achievement.CoinMilestone{Coins: 5000},
		achievement.MiniGameWin{},
		achievement.DailyChallengeComplete{},
		achievement.CorrectAnswer{TimeRemaining: 3, Streak: 0},
	}

	ledger := domain.NewLedger()
	for i := 0; i < 10; i++ {
		for _, e := range events {
			next, _ := achievement.Record(ledger, e)
			for _, id := range domain.AchievementIDs() {
				require.GreaterOrEqual(t, next[id], ledger[id], "%s decreased", id)
				require.LessOrEqual(t, next[id], achievement.MaxTier, "%s above cap", id)
			}
			ledger = next
		}
	}

	for _, id := range []domain.AchievementID{
		domain.AchievementQuickThinker, domain.AchievementEmpathyMaster, domain.AchievementConsistentPerformer,
		domain.AchievementCoinCollector, domain.AchievementMiniGameChampion, domain.AchievementDailyChallenger,
	} {
		assert.Equal(t, achievement.MaxTier, ledger[id])
	}
	assert.Zero(t, ledger[domain.AchievementEQExpert])
	assert.Zero(t, ledger[domain.AchievementSocialButterfly])
}

func TestRecord_DailyChallengeCountsEveryCall(t *testing.T) {
	ledger := domain.NewLedger()

	ledger, _ = achievement.Record(ledger, achievement.DailyChallengeComplete{})
	ledger, _ = achievement.Record(ledger, achievement.DailyChallengeComplete{})

	assert.Equal(t, 2, ledger[domain.AchievementDailyChallenger])
}

func TestNormalize(t *testing.T) {
	got := achievement.Normalize(domain.Ledger{
		domain.AchievementQuickThinker:  7,
		domain.AchievementEmpathyMaster: -1,
		"retired":                       2,
	})

	assert.Len(t, got, len(domain.AchievementIDs()))
	assert.Equal(t, 3, got[domain.AchievementQuickThinker])
	assert.Equal(t, 0, got[domain.AchievementEmpathyMaster])
	assert.NotContains(t, got, domain.AchievementID("retired"))
}
