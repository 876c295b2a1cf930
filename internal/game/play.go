package game

import (
	"context"
	"log/slog"
	"slices"

	"github.com/victornm/eqgame/internal/achievement"
	"github.com/victornm/eqgame/internal/audio"
	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/scoring"
	"github.com/victornm/eqgame/internal/store"
)

// Start leaves the menu for the first question of a fresh session.
func (g *Game) Start(ctx context.Context) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := requirePhase(g.phase, domain.PhaseMenu); err != nil {
		return View{}, err
	}

	g.begin(ctx)
	return g.view(), nil
}

// Restart begins a fresh session from the game over screen.
func (g *Game) Restart(ctx context.Context) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := requirePhase(g.phase, domain.PhaseGameOver); err != nil {
		return View{}, err
	}

	g.begin(ctx)
	return g.view(), nil
}

// begin resets the per-game state. Personal best, history, achievements and the player name carry over.
func (g *Game) begin(ctx context.Context) {
	s := &g.session
	s.CurrentQuestion = 0
	s.Score = 0
	s.XP = 0
	s.Level = scoring.StartingLevel
	s.Streak = 0
	s.Coins = 0
	s.Hearts = scoring.StartingHearts
	s.ActivePowerUps = nil
	s.DailyChallengeCompleted = g.daily.Current(ctx).Completed
	s.Timer = scoring.StartingTimer(s.Difficulty)

	g.answer = nil
	g.final = nil
	g.hint = ""
	g.overlays = nil

	g.audio.PlayEffect(ctx, audio.EffectClick)
	g.play(ctx)
}

// play shows the current question, or finishes the game when the bank is exhausted.
func (g *Game) play(ctx context.Context) {
	if _, ok := g.bank.At(g.session.CurrentQuestion); !ok {
		g.finish(ctx)
		g.save(ctx)
		return
	}

	g.phase = domain.PhasePlaying
	g.session.Timer = scoring.StartingTimer(g.session.Difficulty)
	g.armQuestion()
	g.save(ctx)
}

// SubmitAnswer resolves the current question with the option at index option.
func (g *Game) SubmitAnswer(ctx context.Context, option int) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := requirePhase(g.phase, domain.PhasePlaying); err != nil {
		return View{}, err
	}

	q, ok := g.bank.At(g.session.CurrentQuestion)
	if !ok {
		g.disarmQuestion()
		g.finish(ctx)
		g.save(ctx)
		return g.view(), nil
	}

	if option < 0 || option >= len(q.Options) {
		return View{}, errors.InvalidArgument("option %d out of range [0,%d)", option, len(q.Options))
	}

	g.disarmQuestion()

	if q.Options[option].Correct {
		g.resolveCorrect(ctx, q, option)
	} else {
		g.resolveMiss(ctx, q, option, domain.AnswerIncorrect)
	}

	g.save(ctx)
	return g.view(), nil
}

// Tick advances the question timer by one second, resolving the question as timed out at zero.
func (g *Game) Tick(ctx context.Context) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := requirePhase(g.phase, domain.PhasePlaying); err != nil {
		return View{}, err
	}
	if !g.session.TimerRunning {
		return View{}, errors.FailedPrecondition("timer is not running")
	}

	g.tickQuestion(ctx)
	return g.view(), nil
}

// tickQuestion reports whether the timer keeps running.
func (g *Game) tickQuestion(ctx context.Context) bool {
	if g.phase != domain.PhasePlaying || !g.session.TimerRunning {
		return false
	}

	g.session.Timer--
	if g.session.Timer > 0 {
		return true
	}

	g.session.Timer = 0
	g.disarmQuestion()

	q, _ := g.bank.At(g.session.CurrentQuestion)
	g.resolveMiss(ctx, q, -1, domain.AnswerTimeout)
	g.save(ctx)

	return false
}

func (g *Game) resolveCorrect(ctx context.Context, q domain.Question, option int) {
	s := &g.session

	points := scoring.CorrectAnswerPoints(s.Timer, s.Streak, s.Difficulty)
	s.Score += points
	s.XP += points
	s.Coins += scoring.CoinsEarned(points)
	s.Streak++

	var events []achievement.Event
	if s.XP >= scoring.LevelThreshold(s.Level) {
		s.Level++
		s.XP = 0
		g.publish(ctx, domain.EventLevelUp{Level: s.Level})
		events = append(events, achievement.LevelUp{})
	}
	events = append(events,
		achievement.CorrectAnswer{TimeRemaining: s.Timer, Streak: s.Streak},
		achievement.CoinMilestone{Coins: s.Coins},
	)
	g.record(ctx, events...)

	g.answer = &Feedback{
		Result:   domain.AnswerCorrect,
		Selected: option,
		Correct:  correctOption(q),
		Points:   points,
		Insight:  q.Insight,
	}
	g.phase = domain.PhaseFeedback

	g.audio.PlayEffect(ctx, audio.EffectSuccess)
	g.publish(ctx, domain.EventAnswerResolved{Result: domain.AnswerCorrect, Points: points, Difficulty: s.Difficulty})
}

// resolveMiss handles a wrong answer or a timeout. Losing the last heart ends the game.
func (g *Game) resolveMiss(ctx context.Context, q domain.Question, option int, result domain.AnswerResult) {
	s := &g.session
	s.Streak = 0
	s.Hearts = max(s.Hearts-1, 0)

	g.answer = &Feedback{
		Result:   result,
		Selected: option,
		Correct:  correctOption(q),
		Insight:  q.Insight,
	}
	g.phase = domain.PhaseFeedback

	g.audio.PlayEffect(ctx, audio.EffectFailure)
	g.publish(ctx, domain.EventAnswerResolved{Result: result, Difficulty: s.Difficulty})

	if s.Hearts == 0 {
		g.finish(ctx)
	}
}

// Continue moves from the feedback to the lesson, and from the lesson to the next question.
func (g *Game) Continue(ctx context.Context) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.phase {
	case domain.PhaseFeedback:
		g.phase = domain.PhaseLesson
		g.audio.PlayEffect(ctx, audio.EffectClick)
	case domain.PhaseLesson:
		g.advance(ctx)
	default:
		return View{}, requirePhase(g.phase, domain.PhaseFeedback, domain.PhaseLesson)
	}

	return g.view(), nil
}

// advance moves past the current question.
func (g *Game) advance(ctx context.Context) {
	g.disarmQuestion()
	g.session.CurrentQuestion++
	g.answer = nil
	g.hint = ""
	g.overlays = slices.DeleteFunc(g.overlays, func(o domain.Overlay) bool { return o == domain.OverlayHint })

	g.play(ctx)
}

// finish scores the game, records it in the history and the leaderboard and shows the game over screen.
func (g *Game) finish(ctx context.Context) {
	s := &g.session

	g.disarmQuestion()
	g.phase = domain.PhaseGameOver

	res := &Result{FinalScore: scoring.FinalScore(s.Score, s.Hearts, s.Level)}
	if res.FinalScore > s.PersonalBest {
		s.PersonalBest = res.FinalScore
		res.PersonalBest = true
		g.publish(ctx, domain.EventPersonalBest{Score: res.FinalScore})
	}

	s.ProgressHistory = append(s.ProgressHistory, domain.ProgressRecord{Date: g.now(), Score: res.FinalScore})

	entry := domain.LeaderboardEntry{Name: s.UserName, Score: res.FinalScore, Difficulty: s.Difficulty}
	rank, err := g.lb.Record(ctx, entry)
	if err != nil {
		slog.WarnContext(ctx, "game: record leaderboard entry failed", "error", err)
		g.publish(ctx, domain.EventPersistenceFailed{Key: store.KeyLeaderboard, Err: err})
	}
	res.Rank = rank

	g.final = res
	g.publish(ctx, domain.EventGameFinished{Entry: entry, Rank: rank})

	slog.InfoContext(ctx, "game: finished", "game", g.id, "final_score", res.FinalScore, "rank", rank)
}

func correctOption(q domain.Question) int {
	return slices.IndexFunc(q.Options, func(o domain.Option) bool { return o.Correct })
}
