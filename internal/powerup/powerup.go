// Package powerup implements the consumable power-ups bought in the shop and applied during a question.
package powerup

import (
	"slices"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/scoring"
)

const (
	TimeFreeze        domain.PowerUpID = 1
	Hint              domain.PowerUpID = 2
	DoublePoints      domain.PowerUpID = 3
	SkipQuestion      domain.PowerUpID = 4
	EmpathyBoost      domain.PowerUpID = 5
	StreakShield      domain.PowerUpID = 6
	HeartRegeneration domain.PowerUpID = 7
)

const (
	timeFreezeSeconds = 10
	empathyBoostScore = 50
)

type PowerUp struct {
	ID          domain.PowerUpID `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Cost        int              `json:"cost"`
}

var catalog = []PowerUp{
	{ID: TimeFreeze, Title: "Time Freeze", Description: "Add 10 seconds to the timer", Cost: 50},
	{ID: Hint, Title: "Hint", Description: "Get a hint for the correct answer", Cost: 100},
	{ID: DoublePoints, Title: "Double Points", Description: "Earn bonus points on the current question", Cost: 150},
	{ID: SkipQuestion, Title: "Skip Question", Description: "Skip the current question without penalty", Cost: 200},
	{ID: EmpathyBoost, Title: "Empathy Boost", Description: "Gain 50 points", Cost: 250},
	{ID: StreakShield, Title: "Streak Shield", Description: "Protects your streak from one wrong answer", Cost: 300},
	{ID: HeartRegeneration, Title: "Heart Regeneration", Description: "Regain one heart, up to 5", Cost: 500},
}

// Catalog returns the shop's power-ups ordered by id.
func Catalog() []PowerUp {
	return slices.Clone(catalog)
}

func Lookup(id domain.PowerUpID) (PowerUp, bool) {
	i := slices.IndexFunc(catalog, func(p PowerUp) bool { return p.ID == id })
	if i < 0 {
		return PowerUp{}, false
	}
	return catalog[i], true
}

// Purchase deducts the cost of id from the session's coins and adds one unit to its inventory.
// The session is left untouched on error.
func Purchase(s *domain.Session, id domain.PowerUpID) (PowerUp, error) {
	p, ok := Lookup(id)
	if !ok {
		return PowerUp{}, errors.InvalidArgument("unknown power-up %d", id)
	}

	if s.Coins < p.Cost {
		return PowerUp{}, errors.FailedPrecondition("%s costs %d coins, have %d", p.Title, p.Cost, s.Coins)
	}

	s.Coins -= p.Cost
	s.ActivePowerUps = append(s.ActivePowerUps, id)
	return p, nil
}

// Effect describes what applying a power-up did beyond the session fields it changed.
type Effect struct {
	PowerUp PowerUp
	// Hint is the hint text to reveal.
	Hint string
	// Skip asks the caller to advance to the next question.
	Skip        bool
	ScoreGained int
	CoinsGained int
}

// Apply consumes one held unit of id and applies it to the session. q is the question on screen.
// The session is left untouched on error.
func Apply(s *domain.Session, id domain.PowerUpID, q domain.Question) (Effect, error) {
	p, ok := Lookup(id)
	if !ok {
		return Effect{}, errors.InvalidArgument("unknown power-up %d", id)
	}

	i := slices.Index(s.ActivePowerUps, id)
	if i < 0 {
		return Effect{}, errors.FailedPrecondition("%s is not in the inventory", p.Title)
	}
	s.ActivePowerUps = slices.Delete(s.ActivePowerUps, i, i+1)

	eff := Effect{PowerUp: p}
	switch id {
	case TimeFreeze:
		s.Timer += timeFreezeSeconds
	case Hint:
		eff.Hint = q.Hint
	case DoublePoints:
		eff.ScoreGained = scoring.DoublePoints(s.Timer, s.Streak)
		eff.CoinsGained = scoring.CoinsEarned(eff.ScoreGained)
	case SkipQuestion:
		eff.Skip = true
	case EmpathyBoost:
		eff.ScoreGained = empathyBoostScore
	case StreakShield:
		// Has no effect on the streak: a wrong answer still resets it. Kept as sold until the shield
		// gets a real protection rule.
	case HeartRegeneration:
		s.Hearts = min(s.Hearts+1, scoring.MaxHearts)
	}

	s.Score += eff.ScoreGained
	s.Coins += eff.CoinsGained
	return eff, nil
}
