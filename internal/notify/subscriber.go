package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/event"
)

type SubscriberConfig struct {
	EventBus *event.Bus
	Notifier Notifier
	// Enabled reports whether the player wants notifications. Nil means always.
	Enabled func() bool
	// User returns the name the notifications are addressed to.
	User func() string
}

// Subscribe turns the notable game events into notifications.
func Subscribe(c SubscriberConfig) {
	if c.Enabled == nil {
		c.Enabled = func() bool { return true }
	}
	if c.User == nil {
		c.User = func() string { return "" }
	}

	handle := func(name string, toast func(e event.Event) Notification) {
		c.EventBus.Subscribe(name, func(ctx context.Context, e event.Event) error {
			if !c.Enabled() {
				return nil
			}

			n := toast(e)
			n.Event = e.Name()
			return c.Notifier.Notify(ctx, c.User(), n)
		})
	}

	handle(domain.EventNameAchievementUnlocked, func(e event.Event) Notification {
		ev := e.(domain.EventAchievementUnlocked)
		names := make([]string, 0, len(ev.Unlocked))
		for _, id := range ev.Unlocked {
			names = append(names, fmt.Sprintf("%s (tier %d)", id, ev.Ledger[id]))
		}
		return Notification{
			Kind:    KindAchievement,
			Message: "Achievement unlocked: " + strings.Join(names, ", "),
			Data:    ev.Unlocked,
		}
	})

	handle(domain.EventNameLevelUp, func(e event.Event) Notification {
		ev := e.(domain.EventLevelUp)
		return Notification{Kind: KindSuccess, Message: fmt.Sprintf("Level up! You reached level %d", ev.Level)}
	})

	handle(domain.EventNamePersonalBest, func(e event.Event) Notification {
		ev := e.(domain.EventPersonalBest)
		return Notification{Kind: KindSuccess, Message: fmt.Sprintf("New personal best: %d", ev.Score)}
	})

	handle(domain.EventNameGameFinished, func(e event.Event) Notification {
		ev := e.(domain.EventGameFinished)
		return Notification{
			Kind:    KindInfo,
			Message: fmt.Sprintf("Game over! Final score %d, rank #%d", ev.Entry.Score, ev.Rank),
			Data:    ev.Entry,
		}
	})

	handle(domain.EventNamePowerUpActivated, func(e event.Event) Notification {
		ev := e.(domain.EventPowerUpActivated)
		return Notification{Kind: KindInfo, Message: ev.Title + " activated"}
	})

	handle(domain.EventNameDailyChallengeCompleted, func(e event.Event) Notification {
		ev := e.(domain.EventDailyChallengeCompleted)
		return Notification{
			Kind:    KindSuccess,
			Message: fmt.Sprintf("Daily challenge completed! +%d coins", ev.Challenge.RewardCoins),
		}
	})

	handle(domain.EventNameDailyChallengeClaimed, func(event.Event) Notification {
		return Notification{Kind: KindSuccess, Message: "Daily challenge reward claimed"}
	})

	handle(domain.EventNameSettingsSaved, func(event.Event) Notification {
		return Notification{Kind: KindInfo, Message: "Settings saved"}
	})
}
