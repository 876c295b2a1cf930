package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestInit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := map[string]struct {
		arrange func(t *testing.T, c *Config)
		wantErr string
	}{
		"memory": {},
		"sqlite": {
			arrange: func(t *testing.T, c *Config) {
				c.Store.Driver = StoreSQLite
				c.Store.SQLite.Path = filepath.Join(t.TempDir(), "eqgame.db")
			},
		},
		"redis store and pubsub": {
			arrange: func(t *testing.T, c *Config) {
				rs := miniredis.RunT(t)
				c.Store.Driver = StoreRedis
				c.Store.Redis.Addrs = []string{rs.Addr()}
				c.Pubsub.Addrs = []string{rs.Addr()}
			},
		},
		"unknown driver": {
			arrange: func(t *testing.T, c *Config) {
				c.Store.Driver = "mongo"
			},
			wantErr: `unknown driver "mongo"`,
		},
		"missing questions file": {
			arrange: func(t *testing.T, c *Config) {
				c.Game.QuestionsFile = filepath.Join(t.TempDir(), "questions.json")
			},
			wantErr: "init service",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			if tt.arrange != nil {
				tt.arrange(t, &c)
			}

			s, err := Init(c)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			ctx := context.Background()
			s.service.game.Init(ctx)
			t.Cleanup(func() {
				s.service.game.Teardown(ctx)
				s.eb.Stop()
				_ = s.infra.store.Close()
			})

			w := httptest.NewRecorder()
			s.http.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/start", nil))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = httptest.NewRecorder()
			s.http.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/game/answer", strings.NewReader(`{"option": 1}`)))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			s.eb.Stop()

			w = httptest.NewRecorder()
			s.http.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `eqgame_answers_total{difficulty="medium",result="correct"} 1`)
		})
	}
}

func TestHealth(t *testing.T) {
	s, err := Init(DefaultConfig())
	require.NoError(t, err)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
