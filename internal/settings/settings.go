// Package settings validates and persists the player's settings. Audio and app settings live under separate keys.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/store"
)

const (
	MinTextSize = 12
	MaxTextSize = 24
)

var (
	Themes = []string{"light", "dark", "solarized", "dracula", "material"}
	Fonts  = []string{"Arial", "Helvetica", "Times New Roman", "Courier New", "Georgia"}

	colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func Default() domain.Settings {
	return domain.Settings{
		AudioSettings: domain.AudioSettings{
			BackgroundMusic: domain.Sound{Volume: 0.5, Enabled: true},
			ClickSound:      domain.Sound{Volume: 0.5, Enabled: true},
			SuccessSound:    domain.Sound{Volume: 0.5, Enabled: true},
			FailureSound:    domain.Sound{Volume: 0.5, Enabled: true},
		},
		AppSettings: domain.AppSettings{
			Theme:           "light",
			TextSize:        16,
			Font:            "Arial",
			Notifications:   true,
			BackgroundColor: "#ffffff",
			FontColor:       "#000000",
		},
	}
}

// Validate returns an InvalidArgument error naming the first unrecognized option.
func Validate(s domain.Settings) error {
	sounds := map[string]domain.Sound{
		"backgroundMusic": s.BackgroundMusic,
		"clickSound":      s.ClickSound,
		"successSound":    s.SuccessSound,
		"failureSound":    s.FailureSound,
	}
	for _, name := range []string{"backgroundMusic", "clickSound", "successSound", "failureSound"} {
		if v := sounds[name].Volume; v < 0 || v > 1 {
			return errors.InvalidArgument("%s volume %v out of [0,1]", name, v)
		}
	}

	switch {
	case !slices.Contains(Themes, s.Theme):
		return errors.InvalidArgument("unknown theme %q", s.Theme)
	case !slices.Contains(Fonts, s.Font):
		return errors.InvalidArgument("unknown font %q", s.Font)
	case s.TextSize < MinTextSize || s.TextSize > MaxTextSize:
		return errors.InvalidArgument("text size %d out of [%d,%d]", s.TextSize, MinTextSize, MaxTextSize)
	case !colorRe.MatchString(s.BackgroundColor):
		return errors.InvalidArgument("invalid background color %q", s.BackgroundColor)
	case !colorRe.MatchString(s.FontColor):
		return errors.InvalidArgument("invalid font color %q", s.FontColor)
	}

	return nil
}

// Load reads both halves of the settings. A half that is missing, corrupt or invalid falls back to its default.
func Load(ctx context.Context, st store.Store) domain.Settings {
	def := Default()
	s := def

	if ok, err := store.LoadJSON(ctx, st, store.KeyAudioSettings, &s.AudioSettings); err != nil || !ok {
		if err != nil {
			slog.WarnContext(ctx, "settings: load audio settings failed", "error", err)
		}
		s.AudioSettings = def.AudioSettings
	}

	if ok, err := store.LoadJSON(ctx, st, store.KeyAppSettings, &s.AppSettings); err != nil || !ok {
		if err != nil {
			slog.WarnContext(ctx, "settings: load app settings failed", "error", err)
		}
		s.AppSettings = def.AppSettings
	}

	if err := Validate(domain.Settings{AudioSettings: s.AudioSettings, AppSettings: def.AppSettings}); err != nil {
		slog.WarnContext(ctx, "settings: stored audio settings invalid", "error", err)
		s.AudioSettings = def.AudioSettings
	}
	if err := Validate(domain.Settings{AudioSettings: def.AudioSettings, AppSettings: s.AppSettings}); err != nil {
		slog.WarnContext(ctx, "settings: stored app settings invalid", "error", err)
		s.AppSettings = def.AppSettings
	}

	return s
}

// Save validates s and writes both halves.
func Save(ctx context.Context, st store.Store, s domain.Settings) error {
	if err := Validate(s); err != nil {
		return err
	}

	if err := store.SaveJSON(ctx, st, store.KeyAudioSettings, s.AudioSettings); err != nil {
		return fmt.Errorf("save audio settings: %w", err)
	}

	if err := store.SaveJSON(ctx, st, store.KeyAppSettings, s.AppSettings); err != nil {
		return fmt.Errorf("save app settings: %w", err)
	}

	return nil
}
