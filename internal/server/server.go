package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/victornm/eqgame/internal/api"
	"github.com/victornm/eqgame/internal/audio"
	"github.com/victornm/eqgame/internal/daily"
	"github.com/victornm/eqgame/internal/event"
	"github.com/victornm/eqgame/internal/game"
	"github.com/victornm/eqgame/internal/leaderboard"
	"github.com/victornm/eqgame/internal/question"
	"github.com/victornm/eqgame/internal/settings"
	"github.com/victornm/eqgame/internal/store"
	"github.com/victornm/eqgame/internal/telemetry"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	HTTP struct {
		Port int32
	}

	GRPC struct {
		Port int32
	}

	Log struct {
		Level string
	}

	Store struct {
		Driver string
		Prefix string

		SQLite struct {
			Path string
		}

		Redis struct {
			Addrs []string
			Pass  string
		}

		Postgres struct {
			Addr string
			User string
			Pass string
			Name string
		}
	}

	Pubsub struct {
		Addrs  []string
		Pass   string
		Prefix string
	}

	Game struct {
		QuestionsFile string
		Player        string
	}
}

// DefaultConfig runs everything in memory with no notification channel.
func DefaultConfig() Config {
	var c Config
	c.HTTP.Port = 8080
	c.GRPC.Port = 9090
	c.Log.Level = "info"
	c.Store.Driver = StoreMemory
	c.Store.Prefix = "eqgame"
	c.Store.SQLite.Path = "eqgame.db"
	c.Pubsub.Prefix = "eqgame"
	c.Game.Player = game.DefaultPlayer
	return c
}

type Server struct {
	c Config

	eb *event.Bus

	infra struct {
		store  store.Store
		pubsub redis.UniversalClient
	}

	service struct {
		leaderboard *leaderboard.Service
		daily       *daily.Manager
		game        *game.Game
	}

	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	health   *health.Server

	http *http.Server
	grpc *grpc.Server
}

func Init(c Config) (*Server, error) {
	s := &Server{c: c}

	s.eb = event.NewBus()

	if err := s.initInfra(); err != nil {
		return nil, fmt.Errorf("server: init infra: %w", err)
	}

	if err := s.initService(); err != nil {
		return nil, fmt.Errorf("server: init service: %w", err)
	}

	s.initTelemetry()
	s.initAPI()
	return s, nil
}

func (s *Server) initInfra() error {
	st, err := s.openStore()
	if err != nil {
		return fmt.Errorf("store %s: %w", s.c.Store.Driver, err)
	}
	s.infra.store = store.WithPrefix(st, s.c.Store.Prefix)

	if len(s.c.Pubsub.Addrs) > 0 {
		s.infra.pubsub, err = connectRedis("pubsub", s.c.Pubsub.Addrs, s.c.Pubsub.Pass)
		if err != nil {
			return fmt.Errorf("pubsub: %w", err)
		}
	}

	return nil
}

func (s *Server) openStore() (store.Store, error) {
	switch s.c.Store.Driver {
	case "", StoreMemory:
		return store.NewMemory(), nil

	case StoreSQLite:
		return store.OpenSQLite(s.c.Store.SQLite.Path)

	case StoreRedis:
		r, err := connectRedis("store", s.c.Store.Redis.Addrs, s.c.Store.Redis.Pass)
		if err != nil {
			return nil, err
		}
		return store.NewRedis(r), nil

	case StorePostgres:
		pg := s.c.Store.Postgres
		db, err := connectPostgres(pg.Addr, pg.User, pg.Pass, pg.Name)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return store.NewPostgres(ctx, db)
	}

	return nil, fmt.Errorf("unknown driver %q", s.c.Store.Driver)
}

func connectRedis(role string, addrs []string, pass string) (redis.UniversalClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    addrs,
		Password: pass,
	})

	if err := telemetry.MonitorRedis(r, role); err != nil {
		return nil, err
	}

	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return r, nil
}

func connectPostgres(addr, user, pass, name string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cc, err := pgxpool.ParseConfig(fmt.Sprintf("postgres://%s:%s@%s/%s", user, pass, addr, name))
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.NewWithConfig(ctx, cc)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Server) initService() error {
	bank, err := question.Load(s.c.Game.QuestionsFile)
	if err != nil {
		return err
	}

	s.service.leaderboard = leaderboard.NewService(leaderboard.Config{
		Store: s.infra.store,
	})

	s.service.daily = daily.NewManager(daily.Config{
		Store: s.infra.store,
	})

	s.service.game = game.New(game.Config{
		Store:       s.infra.store,
		EventBus:    s.eb,
		Questions:   bank,
		Daily:       s.service.daily,
		Leaderboard: s.service.leaderboard,
		Audio:       audio.NewLogPlayer(settings.Default().AudioSettings),
		Player:      s.c.Game.Player,
	})

	return nil
}

func (s *Server) initTelemetry() {
	s.registry = prometheus.NewRegistry()
	s.metrics = telemetry.NewMetrics(s.registry)
	s.metrics.Subscribe(s.eb)
}

func (s *Server) initAPI() {
	e := gin.New()
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		prometheus.Gatherers{prometheus.DefaultGatherer, s.registry},
		promhttp.HandlerOpts{},
	)))
	pprof.Register(e, "/debug/pprof")
	e.Use(gin.Recovery())

	api.New(api.Config{
		Engine:      e,
		Game:        s.service.game,
		Leaderboard: s.service.leaderboard,
	})

	api.RegisterNotifications(api.PubsubConfig{
		EventBus: s.eb,
		Game:     s.service.game,
		Redis:    s.infra.pubsub,
		Prefix:   s.c.Pubsub.Prefix,
	})

	s.grpc = grpc.NewServer(telemetry.GRPCServerInterceptor(s.metrics))
	s.health = health.NewServer()
	healthpb.RegisterHealthServer(s.grpc, s.health)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.c.HTTP.Port),
		Handler:           e,
		ReadHeaderTimeout: 60 * time.Second,
	}
}

func (s *Server) Start() {
	ctx := context.TODO()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.c.GRPC.Port))
	if err != nil {
		slog.ErrorContext(ctx, "grpc server: listen failed", "error", err)
		panic(err)
	}

	s.service.game.Init(ctx)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	var eg errgroup.Group
	eg.Go(func() error {
		slog.InfoContext(ctx, fmt.Sprintf("server: gRPC listening on port %d", s.c.GRPC.Port))
		return s.grpc.Serve(lis)
	})

	eg.Go(func() error {
		slog.InfoContext(ctx, fmt.Sprintf("server: HTTP listening on port %d", s.c.HTTP.Port))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	err = eg.Wait()
	if err != nil {
		slog.ErrorContext(ctx, "server: shutdown with error", "error", err)
	}
}

func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.health.Shutdown()
	s.grpc.GracefulStop()
	if err := s.http.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "server: shutdown HTTP failed", "error", err)
	}

	s.service.game.Teardown(ctx)
	s.eb.Stop()

	if err := s.infra.store.Close(); err != nil {
		slog.ErrorContext(ctx, "server: close store failed", "error", err)
	}
	if s.infra.pubsub != nil {
		if err := s.infra.pubsub.Close(); err != nil {
			slog.ErrorContext(ctx, "server: close pubsub failed", "error", err)
		}
	}

	slog.InfoContext(ctx, "server: shutdown completed")
}
