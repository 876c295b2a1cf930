package game

import (
	"time"
)

type timeTicker struct {
	t *time.Ticker
}

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// timer is the one live ticker handle of a countdown. Arming it cancels the previous handle and bumps the
// generation, so a tick that raced the replacement is recognized as stale and dropped.
type timer struct {
	gen  uint64
	stop func()
}

func (t *timer) arm(newTicker func(time.Duration) Ticker, onTick func(gen uint64) bool) {
	t.disarm()
	t.gen++

	tk := newTicker(time.Second)
	done := make(chan struct{})
	t.stop = func() {
		close(done)
		tk.Stop()
	}

	gen := t.gen
	go func() {
		for {
			select {
			case <-done:
				return
			case <-tk.C():
				if !onTick(gen) {
					return
				}
			}
		}
	}()
}

// disarm cancels the live handle. It never waits for the goroutine, so it is safe to call from a tick.
func (t *timer) disarm() {
	if t.stop == nil {
		return
	}

	t.stop()
	t.stop = nil
	t.gen++
}

func (t *timer) live(gen uint64) bool {
	return t.stop != nil && t.gen == gen
}

// armQuestion starts the countdown of the current question.
func (g *Game) armQuestion() {
	g.session.TimerRunning = true
	g.question.arm(g.newTicker, func(gen uint64) bool {
		g.mu.Lock()
		defer g.mu.Unlock()

		if !g.question.live(gen) {
			return false
		}
		return g.tickQuestion(g.ctx)
	})
}

func (g *Game) disarmQuestion() {
	g.question.disarm()
	g.session.TimerRunning = false
}

// armCountdown starts the daily challenge countdown.
func (g *Game) armCountdown() {
	g.countdown.arm(g.newTicker, func(gen uint64) bool {
		g.mu.Lock()
		live, ctx := g.countdown.live(gen), g.ctx
		g.mu.Unlock()

		if !live {
			return false
		}

		g.tickDaily(ctx)
		return true
	})
}
