package game

import (
	"context"

	"github.com/victornm/eqgame/internal/achievement"
	"github.com/victornm/eqgame/internal/audio"
	"github.com/victornm/eqgame/internal/domain"
)

func (g *Game) DailyChallenge(ctx context.Context) domain.Challenge {
	return g.daily.Current(ctx)
}

// ProgressDailyChallenge advances the daily challenge, completing it on the last step.
func (g *Game) ProgressDailyChallenge(ctx context.Context) (domain.Challenge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, completed, err := g.daily.Progress(ctx)
	if err != nil {
		return c, err
	}

	if completed {
		g.completeDaily(ctx, c)
	}
	return c, nil
}

// CompleteDailyChallenge completes the daily challenge and grants its reward.
func (g *Game) CompleteDailyChallenge(ctx context.Context) (domain.Challenge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, err := g.daily.Complete(ctx)
	if err != nil {
		return c, err
	}

	g.completeDaily(ctx, c)
	return c, nil
}

// ClaimDailyChallenge acknowledges a completed challenge. The reward was granted on completion.
func (g *Game) ClaimDailyChallenge(ctx context.Context) (domain.Challenge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, err := g.daily.Claim(ctx)
	if err != nil {
		return c, err
	}

	g.audio.PlayEffect(ctx, audio.EffectClick)
	g.publish(ctx, domain.EventDailyChallengeClaimed{Challenge: c})
	return c, nil
}

func (g *Game) completeDaily(ctx context.Context, c domain.Challenge) {
	g.session.Coins += c.RewardCoins
	g.session.DailyChallengeCompleted = true
	g.record(ctx, achievement.DailyChallengeComplete{}, achievement.CoinMilestone{Coins: g.session.Coins})

	g.audio.PlayEffect(ctx, audio.EffectSuccess)
	g.publish(ctx, domain.EventDailyChallengeCompleted{Challenge: c})
	g.save(ctx)
}

// TickDaily advances the daily challenge countdown by one second.
func (g *Game) TickDaily(ctx context.Context) domain.Challenge {
	return g.tickDaily(ctx)
}

func (g *Game) tickDaily(ctx context.Context) domain.Challenge {
	c, reset := g.daily.Tick(ctx)
	if !reset {
		return c
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.session.DailyChallengeCompleted = false
	g.save(ctx)
	return c
}
