package game

import (
	"context"
	"log/slog"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/settings"
	"github.com/victornm/eqgame/internal/store"
)

func (g *Game) Settings() domain.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.settings
}

// NotificationsEnabled reports whether the player accepts notifications.
func (g *Game) NotificationsEnabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.settings.Notifications
}

// SaveSettings validates and applies s. A failed write keeps the new settings in memory.
func (g *Game) SaveSettings(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	if err := settings.Validate(s); err != nil {
		return domain.Settings{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.settings = s
	g.session.BackgroundColor = s.BackgroundColor
	g.session.FontColor = s.FontColor

	g.audio.Configure(ctx, s.AudioSettings)
	g.audio.SetMusicVolume(ctx, s.BackgroundMusic.Volume)

	if err := settings.Save(ctx, g.store, s); err != nil {
		slog.WarnContext(ctx, "game: persist settings failed", "error", err)
		g.publish(ctx, domain.EventPersistenceFailed{Key: store.KeyAppSettings, Err: err})
	}

	g.save(ctx)
	g.publish(ctx, domain.EventSettingsSaved{Settings: s})
	return s, nil
}
