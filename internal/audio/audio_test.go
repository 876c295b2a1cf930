package audio_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/victornm/eqgame/internal/audio"
	"github.com/victornm/eqgame/internal/domain"
)

func TestLogPlayer_Music(t *testing.T) {
	ctx := context.Background()
	s := domain.AudioSettings{BackgroundMusic: domain.Sound{Volume: 0.4, Enabled: true}}
	p := audio.NewLogPlayer(s)

	p.PlayMusic(ctx)
	assert.True(t, p.MusicPlaying())

	s.BackgroundMusic.Enabled = false
	p.Configure(ctx, s)
	assert.False(t, p.MusicPlaying(), "disabling stops the music")

	p.PlayMusic(ctx)
	assert.False(t, p.MusicPlaying(), "disabled music does not start")

	s.BackgroundMusic.Enabled = true
	p.Configure(ctx, s)
	assert.True(t, p.MusicPlaying(), "enabling resumes the music")

	p.StopMusic(ctx)
	assert.False(t, p.MusicPlaying())
}

func TestLogPlayer_SetMusicVolumeClamps(t *testing.T) {
	p := audio.NewLogPlayer(domain.AudioSettings{})

	p.SetMusicVolume(context.Background(), 1.7)
	assert.Equal(t, 1.0, p.MusicVolume())

	p.SetMusicVolume(context.Background(), -3)
	assert.Equal(t, 0.0, p.MusicVolume())
}
