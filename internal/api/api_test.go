package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/eqgame/internal/api"
	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/game"
	"github.com/victornm/eqgame/internal/leaderboard"
	"github.com/victornm/eqgame/internal/store"
)

func TestAPI(t *testing.T) {
	type step struct {
		method, path, body string
		wantStatus         int
	}

	tests := map[string]struct {
		steps  []step
		assert func(t *testing.T, body []byte)
	}{
		"get the game in the menu": {
			steps: []step{{method: http.MethodGet, path: "/api/game", wantStatus: http.StatusOK}},
			assert: func(t *testing.T, body []byte) {
				v := decode[game.View](t, body)
				assert.Equal(t, domain.PhaseMenu, v.Phase)
				assert.Equal(t, 3, v.Session.Hearts)
			},
		},
		"start and answer": {
			steps: []step{
				{method: http.MethodPost, path: "/api/game/start", wantStatus: http.StatusOK},
				{method: http.MethodPost, path: "/api/game/answer", body: `{"option": 1}`, wantStatus: http.StatusOK},
			},
			assert: func(t *testing.T, body []byte) {
				v := decode[game.View](t, body)
				assert.Equal(t, domain.PhaseFeedback, v.Phase)
				require.NotNil(t, v.Feedback)
				assert.Equal(t, domain.AnswerCorrect, v.Feedback.Result)
			},
		},
		"answer outside a question is a conflict": {
			steps: []step{
				{method: http.MethodPost, path: "/api/game/answer", body: `{"option": 0}`, wantStatus: http.StatusConflict},
			},
			assert: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "not allowed in phase menu")
			},
		},
		"answer without an option": {
			steps: []step{
				{method: http.MethodPost, path: "/api/game/start", wantStatus: http.StatusOK},
				{method: http.MethodPost, path: "/api/game/answer", body: `{}`, wantStatus: http.StatusBadRequest},
			},
		},
		"unknown overlay": {
			steps: []step{
				{method: http.MethodPost, path: "/api/game/overlays/inventory", wantStatus: http.StatusBadRequest},
			},
		},
		"open and close an overlay": {
			steps: []step{
				{method: http.MethodPost, path: "/api/game/overlays/shop", wantStatus: http.StatusOK},
				{method: http.MethodPost, path: "/api/game/overlays/profile", wantStatus: http.StatusOK},
				{method: http.MethodDelete, path: "/api/game/overlays/shop", wantStatus: http.StatusOK},
			},
			assert: func(t *testing.T, body []byte) {
				v := decode[game.View](t, body)
				assert.Equal(t, []domain.Overlay{domain.OverlayProfile}, v.Overlays)
			},
		},
		"set difficulty": {
			steps: []step{
				{method: http.MethodPut, path: "/api/game/difficulty", body: `{"difficulty": "hard"}`, wantStatus: http.StatusOK},
			},
			assert: func(t *testing.T, body []byte) {
				v := decode[game.View](t, body)
				assert.Equal(t, domain.DifficultyHard, v.Session.Difficulty)
				assert.Equal(t, 20, v.Timer)
			},
		},
		"purchase without coins": {
			steps: []step{
				{method: http.MethodPost, path: "/api/game/powerups/1/purchase", wantStatus: http.StatusConflict},
			},
		},
		"non numeric power-up id": {
			steps: []step{
				{method: http.MethodPost, path: "/api/game/powerups/freeze/apply", wantStatus: http.StatusBadRequest},
			},
		},
		"mini-game coins buy a power-up": {
			steps: []step{
				{method: http.MethodPost, path: "/api/minigames/memory/complete", body: `{"score": 60}`, wantStatus: http.StatusOK},
				{method: http.MethodPost, path: "/api/game/powerups/1/purchase", wantStatus: http.StatusOK},
			},
			assert: func(t *testing.T, body []byte) {
				v := decode[game.View](t, body)
				assert.Equal(t, 10, v.Session.Coins)
				assert.Equal(t, []domain.PowerUpID{1}, v.Session.ActivePowerUps)
			},
		},
		"shop catalog": {
			steps: []step{{method: http.MethodGet, path: "/api/shop/powerups", wantStatus: http.StatusOK}},
			assert: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), `"title":"Heart Regeneration"`)
			},
		},
		"daily challenge complete then claim": {
			steps: []step{
				{method: http.MethodPost, path: "/api/daily-challenge/claim", wantStatus: http.StatusConflict},
				{method: http.MethodPost, path: "/api/daily-challenge/complete", wantStatus: http.StatusOK},
				{method: http.MethodPost, path: "/api/daily-challenge/claim", wantStatus: http.StatusOK},
			},
			assert: func(t *testing.T, body []byte) {
				c := decode[domain.Challenge](t, body)
				assert.True(t, c.Completed)
				assert.True(t, c.Claimed)
			},
		},
		"leaderboard with a bad page": {
			steps: []step{{method: http.MethodGet, path: "/api/leaderboard?page=x", wantStatus: http.StatusBadRequest}},
		},
		"empty leaderboard": {
			steps: []step{{method: http.MethodGet, path: "/api/leaderboard?q=ann", wantStatus: http.StatusOK}},
			assert: func(t *testing.T, body []byte) {
				resp := decode[leaderboard.ListResponse](t, body)
				assert.Empty(t, resp.Entries)
				assert.Equal(t, 1, resp.Page)
			},
		},
		"invalid settings": {
			steps: []step{
				{
					method: http.MethodPut, path: "/api/settings", wantStatus: http.StatusBadRequest,
					body: `{"theme": "neon", "textSize": 16, "font": "Arial", "backgroundColor": "#ffffff", "fontColor": "#000000"}`,
				},
			},
		},
		"save settings": {
			steps: []step{
				{
					method: http.MethodPut, path: "/api/settings", wantStatus: http.StatusOK,
					body: `{"theme": "dark", "textSize": 18, "font": "Georgia", "notifications": true,
						"backgroundColor": "#000000", "fontColor": "#ffffff",
						"backgroundMusic": {"volume": 0.3, "enabled": true}}`,
				},
				{method: http.MethodGet, path: "/api/settings", wantStatus: http.StatusOK},
			},
			assert: func(t *testing.T, body []byte) {
				s := decode[domain.Settings](t, body)
				assert.Equal(t, "dark", s.Theme)
				assert.Equal(t, 0.3, s.BackgroundMusic.Volume)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := makeAPI(t)

			var last []byte
			for _, s := range tt.steps {
				req := httptest.NewRequest(s.method, s.path, strings.NewReader(s.body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				e.ServeHTTP(w, req)

				require.Equal(t, s.wantStatus, w.Code, "%s %s: %s", s.method, s.path, w.Body.String())
				require.NotEmpty(t, w.Header().Get("X-Request-ID"))
				last = w.Body.Bytes()
			}

			if tt.assert != nil {
				tt.assert(t, last)
			}
		})
	}
}

func TestAPI_RequestIDIsEchoed(t *testing.T) {
	e := makeAPI(t)
	id := "6f1c7d3e-8d0a-4b55-9a43-2f0d8c3e7b11"

	req := httptest.NewRequest(http.MethodGet, "/api/game", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func makeAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	lb := leaderboard.NewService(leaderboard.Config{Store: st})
	g := game.New(game.Config{
		Store:         st,
		Leaderboard:   lb,
		Now:           func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
		NewTickerFunc: func(time.Duration) game.Ticker { return idleTicker{} },
	})
	g.Init(context.Background())
	t.Cleanup(func() { g.Teardown(context.Background()) })

	e := gin.New()
	api.New(api.Config{Engine: e, Game: g, Leaderboard: lb})
	return e
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

type idleTicker struct{}

func (idleTicker) C() <-chan time.Time { return nil }
func (idleTicker) Stop()               {}
