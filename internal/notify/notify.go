// Package notify is the game's notification (toast) surface.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type Kind string

const (
	KindInfo        Kind = "info"
	KindSuccess     Kind = "success"
	KindWarning     Kind = "warning"
	KindAchievement Kind = "achievement"
)

const maxConcurrent = 10

type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Event   string `json:"event,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, user string, n Notification) error
}

// LogNotifier writes notifications to the default logger.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, user string, n Notification) error {
	slog.InfoContext(ctx, "notify: "+n.Message, "user", user, "kind", n.Kind, "event", n.Event)
	return nil
}

// RedisNotifier publishes notifications as JSON to the channel "prefix:user:<user>".
type RedisNotifier struct {
	redis  redis.UniversalClient
	prefix string
}

func NewRedisNotifier(rc redis.UniversalClient, prefix string) *RedisNotifier {
	return &RedisNotifier{
		redis:  rc,
		prefix: prefix,
	}
}

func (r *RedisNotifier) Notify(ctx context.Context, user string, n Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notify: marshal %s: %v", n.Event, err)
	}

	return r.redis.Publish(ctx, r.Channel(user), b).Err()
}

func (r *RedisNotifier) Channel(user string) string {
	return fmt.Sprintf("%s:user:%s", r.prefix, user)
}

// Multi delivers to every notifier concurrently and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, user string, n Notification) error {
	var eg errgroup.Group
	eg.SetLimit(maxConcurrent)

	for _, nt := range m {
		nt := nt
		eg.Go(func() error {
			return nt.Notify(ctx, user, n)
		})
	}

	return eg.Wait()
}
