package achievement

import (
	"github.com/victornm/eqgame/internal/domain"
)

const (
	// MaxTier caps every achievement.
	MaxTier = 3

	quickAnswerSeconds = 20
	empathyStreak      = 5
	coinMilestone      = 1000
)

// Event is a gameplay event the tracker understands. The set is closed.
type Event interface {
	isEvent()
}

// CorrectAnswer is fired after a correct answer with the timer left and the streak after the answer.
type CorrectAnswer struct {
	TimeRemaining int
	Streak        int
}

type LevelUp struct{}

// CoinMilestone carries the coin balance after a gain.
type CoinMilestone struct {
	Coins int
}

type MiniGameWin struct{}

type DailyChallengeComplete struct{}

func (CorrectAnswer) isEvent()          {}
func (LevelUp) isEvent()                {}
func (CoinMilestone) isEvent()          {}
func (MiniGameWin) isEvent()            {}
func (DailyChallengeComplete) isEvent() {}

// Record applies e to ledger and returns the updated copy along with the achievements whose tier changed.
// The input ledger is never modified.
func Record(ledger domain.Ledger, e Event) (domain.Ledger, []domain.AchievementID) {
	next := ledger.Clone()

	var bumped []domain.AchievementID
	bump := func(id domain.AchievementID) {
		if next[id] >= MaxTier {
			return
		}
		next[id]++
		bumped = append(bumped, id)
	}

	switch e := e.(type) {
	case CorrectAnswer:
		if e.TimeRemaining > quickAnswerSeconds {
			bump(domain.AchievementQuickThinker)
		}
		if e.Streak == empathyStreak {
			bump(domain.AchievementEmpathyMaster)
		}
	case LevelUp:
		bump(domain.AchievementConsistentPerformer)
	case CoinMilestone:
		if e.Coins >= coinMilestone {
			bump(domain.AchievementCoinCollector)
		}
	case MiniGameWin:
		bump(domain.AchievementMiniGameChampion)
	case DailyChallengeComplete:
		bump(domain.AchievementDailyChallenger)
	}

	return next, bumped
}

// Normalize returns a ledger holding every known achievement with its tier clamped to [0, MaxTier].
// Unknown ids are dropped.
func Normalize(ledger domain.Ledger) domain.Ledger {
	n := domain.NewLedger()
	for id := range n {
		n[id] = min(max(ledger[id], 0), MaxTier)
	}
	return n
}
