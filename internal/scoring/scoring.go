// Package scoring holds the pure scoring formulas of the game. Arithmetic is done on decimals so
// that results like 45*10*1.4 round exactly instead of drifting through binary floats.
package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/victornm/eqgame/internal/domain"
)

const (
	// StartingHearts is the number of hearts of a fresh session.
	StartingHearts = 3
	// MaxHearts caps heart regeneration.
	MaxHearts = 5
	// StartingLevel is the level of a fresh session.
	StartingLevel = 1

	heartBonus     = 50
	levelBonus     = 100
	levelXPStep    = 1000
	basePointsRate = 10
	streakBonus    = "0.1"
)

var (
	multipliers = map[domain.Difficulty]decimal.Decimal{
		domain.DifficultyEasy:   decimal.NewFromInt(1),
		domain.DifficultyMedium: decimal.RequireFromString("1.5"),
		domain.DifficultyHard:   decimal.NewFromInt(2),
	}

	timers = map[domain.Difficulty]int{
		domain.DifficultyEasy:   45,
		domain.DifficultyMedium: 30,
		domain.DifficultyHard:   20,
	}
)

// DifficultyMultiplier returns 1.0, 1.5 and 2.0 for easy, medium and hard. Unknown difficulties score as easy.
func DifficultyMultiplier(d domain.Difficulty) decimal.Decimal {
	if m, ok := multipliers[d]; ok {
		return m
	}
	return multipliers[domain.DifficultyEasy]
}

// StartingTimer returns the seconds a question starts with: 45, 30 and 20 for easy, medium and hard.
func StartingTimer(d domain.Difficulty) int {
	if s, ok := timers[d]; ok {
		return s
	}
	return timers[domain.DifficultyMedium]
}

// CorrectAnswerPoints is round(timeRemaining * 10 * (1 + streak*0.1) * multiplier).
func CorrectAnswerPoints(timeRemaining, streak int, d domain.Difficulty) int {
	return round(
		decimal.NewFromInt(int64(timeRemaining)).
			Mul(decimal.NewFromInt(basePointsRate)).
			Mul(streakFactor(streak)).
			Mul(DifficultyMultiplier(d)),
	)
}

// DoublePoints is the bonus of the Double Points power-up: round(timer * 20 * (1 + streak*0.1)).
// It ignores the difficulty multiplier.
func DoublePoints(timeRemaining, streak int) int {
	return round(
		decimal.NewFromInt(int64(timeRemaining)).
			Mul(decimal.NewFromInt(2 * basePointsRate)).
			Mul(streakFactor(streak)),
	)
}

// CoinsEarned is round(points / 10).
func CoinsEarned(points int) int {
	return round(decimal.NewFromInt(int64(points)).Div(decimal.NewFromInt(10)))
}

// LevelThreshold is the xp needed to leave level.
func LevelThreshold(level int) int {
	return level * levelXPStep
}

// FinalScore is score + hearts*50 + level*100.
func FinalScore(score, hearts, level int) int {
	return score + hearts*heartBonus + level*levelBonus
}

func streakFactor(streak int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(streak)).Mul(decimal.RequireFromString(streakBonus)))
}

// round rounds half away from zero, which matches half-up for the non-negative values scored here.
func round(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
