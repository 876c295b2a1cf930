// Package audio is the game's view of sound playback.
package audio

import (
	"context"
	"log/slog"
	"sync"

	"github.com/victornm/eqgame/internal/domain"
)

type Effect string

const (
	EffectClick   Effect = "click"
	EffectSuccess Effect = "success"
	EffectFailure Effect = "failure"
)

// Player plays the game's sounds. Implementations must be safe for concurrent use.
type Player interface {
	PlayEffect(ctx context.Context, e Effect)
	SetMusicVolume(ctx context.Context, v float64)
	PlayMusic(ctx context.Context)
	StopMusic(ctx context.Context)
	Configure(ctx context.Context, s domain.AudioSettings)
}

// LogPlayer is a headless Player that logs what would be heard.
type LogPlayer struct {
	mu       sync.Mutex
	settings domain.AudioSettings
	playing  bool
}

func NewLogPlayer(s domain.AudioSettings) *LogPlayer {
	return &LogPlayer{settings: s}
}

func (p *LogPlayer) PlayEffect(ctx context.Context, e Effect) {
	p.mu.Lock()
	snd, ok := p.sound(e)
	p.mu.Unlock()

	if !ok || !snd.Enabled || snd.Volume == 0 {
		return
	}

	slog.DebugContext(ctx, "audio: play effect", "effect", e, "volume", snd.Volume)
}

func (p *LogPlayer) SetMusicVolume(ctx context.Context, v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settings.BackgroundMusic.Volume = min(max(v, 0), 1)
	slog.DebugContext(ctx, "audio: music volume", "volume", p.settings.BackgroundMusic.Volume)
}

func (p *LogPlayer) PlayMusic(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.settings.BackgroundMusic.Enabled {
		return
	}

	p.playing = true
	slog.DebugContext(ctx, "audio: music started", "volume", p.settings.BackgroundMusic.Volume)
}

func (p *LogPlayer) StopMusic(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return
	}

	p.playing = false
	slog.DebugContext(ctx, "audio: music stopped")
}

// Configure replaces the settings. Disabling the music stops it; enabling it resumes it.
func (p *LogPlayer) Configure(ctx context.Context, s domain.AudioSettings) {
	p.mu.Lock()
	wasEnabled := p.settings.BackgroundMusic.Enabled
	p.settings = s
	p.mu.Unlock()

	switch {
	case wasEnabled && !s.BackgroundMusic.Enabled:
		p.StopMusic(ctx)
	case !wasEnabled && s.BackgroundMusic.Enabled:
		p.PlayMusic(ctx)
	}
}

func (p *LogPlayer) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.playing
}

func (p *LogPlayer) MusicVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.settings.BackgroundMusic.Volume
}

func (p *LogPlayer) sound(e Effect) (domain.Sound, bool) {
	switch e {
	case EffectClick:
		return p.settings.ClickSound, true
	case EffectSuccess:
		return p.settings.SuccessSound, true
	case EffectFailure:
		return p.settings.FailureSound, true
	}
	return domain.Sound{}, false
}
