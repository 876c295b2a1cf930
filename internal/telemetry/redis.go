package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// MonitorRedis instruments r and logs its traffic tagged with role ("store", "pubsub").
func MonitorRedis(r redis.UniversalClient, role string) error {
	if err := redisotel.InstrumentTracing(r); err != nil {
		return fmt.Errorf("instrument tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(r); err != nil {
		return fmt.Errorf("instrument metrics: %w", err)
	}
	r.AddHook(redisLog{role: role})
	return nil
}

type redisLog struct {
	role string
}

func (l redisLog) DialHook(hook redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := hook(ctx, network, addr)
		if err != nil {
			slog.WarnContext(ctx, "redis: dial failed", "role", l.role, "addr", addr, "error", err)
			return conn, err
		}

		slog.InfoContext(ctx, "redis: connected", "role", l.role, "network", network, "addr", addr)
		return conn, nil
	}
}

func (l redisLog) ProcessHook(hook redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := hook(ctx, cmd)
		l.log(ctx, cmd.Name(), time.Since(start), err)
		return err
	}
}

func (l redisLog) ProcessPipelineHook(hook redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := hook(ctx, cmds)
		l.log(ctx, fmt.Sprintf("pipeline(%d)", len(cmds)), time.Since(start), err)
		return err
	}
}

func (l redisLog) log(ctx context.Context, cmd string, took time.Duration, err error) {
	// A missing key is an ordinary answer for snapshot reads.
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.WarnContext(ctx, "redis: command failed", "role", l.role, "cmd", cmd, "error", err)
		return
	}

	slog.DebugContext(ctx, "redis: command done", "role", l.role, "cmd", cmd, "took", took)
}
