package game

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/victornm/eqgame/internal/audio"
	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/scoring"
)

// Home returns to the menu from anywhere and closes every overlay.
func (g *Game) Home(ctx context.Context) View {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.disarmQuestion()
	g.phase = domain.PhaseMenu
	g.overlays = nil
	g.answer = nil
	g.hint = ""

	g.audio.PlayEffect(ctx, audio.EffectClick)
	g.save(ctx)
	return g.view()
}

// Back closes the most recently opened overlay. With no overlay open it leaves a running game for the menu, and
// does nothing elsewhere.
func (g *Game) Back(ctx context.Context) View {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case len(g.overlays) > 0:
		g.overlays = g.overlays[:len(g.overlays)-1]
	case g.phase == domain.PhasePlaying:
		g.disarmQuestion()
		g.phase = domain.PhaseMenu
		g.hint = ""
		g.save(ctx)
	}

	g.audio.PlayEffect(ctx, audio.EffectClick)
	return g.view()
}

// OpenOverlay shows o on top of the menu or a running question. Reopening an open overlay brings it to the top.
func (g *Game) OpenOverlay(ctx context.Context, o domain.Overlay) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !o.Valid() {
		return View{}, errors.InvalidArgument("unknown overlay %q", o)
	}
	if err := requirePhase(g.phase, domain.PhaseMenu, domain.PhasePlaying); err != nil {
		return View{}, err
	}

	g.overlays = append(slices.DeleteFunc(g.overlays, func(x domain.Overlay) bool { return x == o }), o)
	g.audio.PlayEffect(ctx, audio.EffectClick)
	return g.view(), nil
}

// CloseOverlay hides o wherever it is in the stack. Closing a closed overlay does nothing.
func (g *Game) CloseOverlay(ctx context.Context, o domain.Overlay) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !o.Valid() {
		return View{}, errors.InvalidArgument("unknown overlay %q", o)
	}

	g.overlays = slices.DeleteFunc(g.overlays, func(x domain.Overlay) bool { return x == o })
	g.audio.PlayEffect(ctx, audio.EffectClick)
	return g.view(), nil
}

// SetDifficulty changes the difficulty and resets the question timer to its default.
func (g *Game) SetDifficulty(ctx context.Context, d domain.Difficulty) (View, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !d.Valid() {
		return View{}, errors.InvalidArgument("unknown difficulty %q", d)
	}
	if err := requirePhase(g.phase, domain.PhaseMenu, domain.PhasePlaying); err != nil {
		return View{}, err
	}

	g.session.Difficulty = d
	g.session.Timer = scoring.StartingTimer(d)
	if g.phase == domain.PhasePlaying {
		g.armQuestion()
	}

	g.save(ctx)
	return g.view(), nil
}

func (g *Game) SetUserName(ctx context.Context, name string) (View, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return View{}, errors.InvalidArgument("name must have 1 to %d characters", maxNameLength)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.session.UserName = name
	g.save(ctx)
	return g.view(), nil
}

func (g *Game) UserName() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.session.UserName
}
