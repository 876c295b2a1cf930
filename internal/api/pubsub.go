package api

import (
	"github.com/redis/go-redis/v9"

	"github.com/victornm/eqgame/internal/event"
	"github.com/victornm/eqgame/internal/game"
	"github.com/victornm/eqgame/internal/notify"
)

type PubsubConfig struct {
	EventBus *event.Bus
	Game     *game.Game
	// Redis publishes notifications to subscribers of the player's channel. Nil keeps them in the log only.
	Redis  redis.UniversalClient
	Prefix string
}

// RegisterNotifications delivers the game's notable events as notifications, honoring the player's
// notification setting.
func RegisterNotifications(c PubsubConfig) notify.Notifier {
	n := notify.Multi{notify.LogNotifier{}}
	if c.Redis != nil {
		n = append(n, notify.NewRedisNotifier(c.Redis, c.Prefix))
	}

	notify.Subscribe(notify.SubscriberConfig{
		EventBus: c.EventBus,
		Notifier: n,
		Enabled:  c.Game.NotificationsEnabled,
		User:     c.Game.UserName,
	})

	return n
}
