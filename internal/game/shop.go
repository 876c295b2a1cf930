package game

import (
	"context"
	"slices"

	"github.com/victornm/eqgame/internal/achievement"
	"github.com/victornm/eqgame/internal/audio"
	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/powerup"
)

type MiniGame string

const (
	MiniGameEmotionMatching MiniGame = "emotion-matching"
	MiniGameReactionTime    MiniGame = "reaction-time"
	MiniGameMemory          MiniGame = "memory"
)

// MaxMiniGameScore is the best score a mini-game can report.
const MaxMiniGameScore = 1000

var miniGames = []MiniGame{MiniGameEmotionMatching, MiniGameReactionTime, MiniGameMemory}

func (m MiniGame) Valid() bool {
	return slices.Contains(miniGames, m)
}

// PurchasePowerUp buys one unit of a power-up with the session's coins.
func (g *Game) PurchasePowerUp(ctx context.Context, id domain.PowerUpID) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := powerup.Purchase(&g.session, id); err != nil {
		return View{}, err
	}

	g.audio.PlayEffect(ctx, audio.EffectClick)
	g.save(ctx)
	return g.view(), nil
}

// ApplyPowerUp consumes one held unit of a power-up on the running question.
func (g *Game) ApplyPowerUp(ctx context.Context, id domain.PowerUpID) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := powerup.Lookup(id); !ok {
		return View{}, errors.InvalidArgument("unknown power-up %d", id)
	}
	if err := requirePhase(g.phase, domain.PhasePlaying); err != nil {
		return View{}, err
	}

	q, _ := g.bank.At(g.session.CurrentQuestion)
	eff, err := powerup.Apply(&g.session, id, q)
	if err != nil {
		return View{}, err
	}

	g.publish(ctx, domain.EventPowerUpActivated{PowerUp: id, Title: eff.PowerUp.Title})

	if eff.CoinsGained > 0 {
		g.record(ctx, achievement.CoinMilestone{Coins: g.session.Coins})
	}

	if eff.Hint != "" {
		g.hint = eff.Hint
		g.overlays = append(slices.DeleteFunc(g.overlays, func(o domain.Overlay) bool { return o == domain.OverlayHint }),
			domain.OverlayHint)
	}

	if eff.Skip {
		g.advance(ctx)
		return g.view(), nil
	}

	g.save(ctx)
	return g.view(), nil
}

// CompleteMiniGame credits the score of a finished mini-game as coins.
func (g *Game) CompleteMiniGame(ctx context.Context, kind MiniGame, score int) (View, error) {
	if !kind.Valid() {
		return View{}, errors.InvalidArgument("unknown mini-game %q", kind)
	}
	if score < 0 || score > MaxMiniGameScore {
		return View{}, errors.InvalidArgument("mini-game score %d out of range [0,%d]", score, MaxMiniGameScore)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.session.Coins += score
	g.record(ctx, achievement.MiniGameWin{}, achievement.CoinMilestone{Coins: g.session.Coins})
	g.overlays = slices.DeleteFunc(g.overlays, func(o domain.Overlay) bool { return o == domain.OverlayMiniGame })

	g.audio.PlayEffect(ctx, audio.EffectSuccess)
	g.save(ctx)
	return g.view(), nil
}
