package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/victornm/eqgame/internal/domain"
	"github.com/victornm/eqgame/internal/errors"
	"github.com/victornm/eqgame/internal/game"
	"github.com/victornm/eqgame/internal/leaderboard"
	"github.com/victornm/eqgame/internal/powerup"
)

const headerRequestID = "X-Request-ID"

type Config struct {
	Engine      *gin.Engine
	Game        *game.Game
	Leaderboard *leaderboard.Service
}

type API struct {
	game *game.Game
	lb   *leaderboard.Service
}

func New(c Config) *API {
	a := &API{
		game: c.Game,
		lb:   c.Leaderboard,
	}

	r := c.Engine.Group("/api", requestID())

	g := r.Group("/game")
	g.GET("", a.GetGame)
	g.POST("/start", a.Start)
	g.POST("/answer", a.SubmitAnswer)
	g.POST("/continue", a.Continue)
	g.POST("/restart", a.Restart)
	g.POST("/home", a.Home)
	g.POST("/back", a.Back)
	g.PUT("/difficulty", a.SetDifficulty)
	g.PUT("/player", a.SetPlayer)
	g.POST("/overlays/:name", a.OpenOverlay)
	g.DELETE("/overlays/:name", a.CloseOverlay)
	g.POST("/powerups/:id/purchase", a.PurchasePowerUp)
	g.POST("/powerups/:id/apply", a.ApplyPowerUp)

	r.GET("/shop/powerups", a.ListPowerUps)

	d := r.Group("/daily-challenge")
	d.GET("", a.GetDailyChallenge)
	d.POST("/progress", a.ProgressDailyChallenge)
	d.POST("/complete", a.CompleteDailyChallenge)
	d.POST("/claim", a.ClaimDailyChallenge)

	r.POST("/minigames/:kind/complete", a.CompleteMiniGame)
	r.GET("/leaderboard", a.GetLeaderboard)
	r.GET("/settings", a.GetSettings)
	r.PUT("/settings", a.SaveSettings)

	return a
}

func (a *API) GetGame(c *gin.Context) {
	c.JSON(http.StatusOK, a.game.View())
}

func (a *API) Start(c *gin.Context) {
	v, err := a.game.Start(c.Request.Context())
	render(c, v, err)
}

type SubmitAnswerRequest struct {
	Option *int `json:"option" binding:"required"`
}

func (a *API) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if !bind(c, &req) {
		return
	}

	v, err := a.game.SubmitAnswer(c.Request.Context(), *req.Option)
	render(c, v, err)
}

func (a *API) Continue(c *gin.Context) {
	v, err := a.game.Continue(c.Request.Context())
	render(c, v, err)
}

func (a *API) Restart(c *gin.Context) {
	v, err := a.game.Restart(c.Request.Context())
	render(c, v, err)
}

func (a *API) Home(c *gin.Context) {
	c.JSON(http.StatusOK, a.game.Home(c.Request.Context()))
}

func (a *API) Back(c *gin.Context) {
	c.JSON(http.StatusOK, a.game.Back(c.Request.Context()))
}

type SetDifficultyRequest struct {
	Difficulty domain.Difficulty `json:"difficulty" binding:"required"`
}

func (a *API) SetDifficulty(c *gin.Context) {
	var req SetDifficultyRequest
	if !bind(c, &req) {
		return
	}

	v, err := a.game.SetDifficulty(c.Request.Context(), req.Difficulty)
	render(c, v, err)
}

type SetPlayerRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *API) SetPlayer(c *gin.Context) {
	var req SetPlayerRequest
	if !bind(c, &req) {
		return
	}

	v, err := a.game.SetUserName(c.Request.Context(), req.Name)
	render(c, v, err)
}

func (a *API) OpenOverlay(c *gin.Context) {
	v, err := a.game.OpenOverlay(c.Request.Context(), domain.Overlay(c.Param("name")))
	render(c, v, err)
}

func (a *API) CloseOverlay(c *gin.Context) {
	v, err := a.game.CloseOverlay(c.Request.Context(), domain.Overlay(c.Param("name")))
	render(c, v, err)
}

func (a *API) PurchasePowerUp(c *gin.Context) {
	id, ok := powerUpID(c)
	if !ok {
		return
	}

	v, err := a.game.PurchasePowerUp(c.Request.Context(), id)
	render(c, v, err)
}

func (a *API) ApplyPowerUp(c *gin.Context) {
	id, ok := powerUpID(c)
	if !ok {
		return
	}

	v, err := a.game.ApplyPowerUp(c.Request.Context(), id)
	render(c, v, err)
}

func (a *API) ListPowerUps(c *gin.Context) {
	c.JSON(http.StatusOK, powerup.Catalog())
}

func (a *API) GetDailyChallenge(c *gin.Context) {
	c.JSON(http.StatusOK, a.game.DailyChallenge(c.Request.Context()))
}

func (a *API) ProgressDailyChallenge(c *gin.Context) {
	ch, err := a.game.ProgressDailyChallenge(c.Request.Context())
	render(c, ch, err)
}

func (a *API) CompleteDailyChallenge(c *gin.Context) {
	ch, err := a.game.CompleteDailyChallenge(c.Request.Context())
	render(c, ch, err)
}

func (a *API) ClaimDailyChallenge(c *gin.Context) {
	ch, err := a.game.ClaimDailyChallenge(c.Request.Context())
	render(c, ch, err)
}

type CompleteMiniGameRequest struct {
	Score *int `json:"score" binding:"required"`
}

func (a *API) CompleteMiniGame(c *gin.Context) {
	var req CompleteMiniGameRequest
	if !bind(c, &req) {
		return
	}

	v, err := a.game.CompleteMiniGame(c.Request.Context(), game.MiniGame(c.Param("kind")), *req.Score)
	render(c, v, err)
}

func (a *API) GetLeaderboard(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			renderError(c, errors.InvalidArgument("invalid page %q", p))
			return
		}
		page = n
	}

	resp, err := a.lb.List(c.Request.Context(), leaderboard.ListRequest{
		Query: c.Query("q"),
		Page:  page,
	})
	render(c, resp, err)
}

func (a *API) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, a.game.Settings())
}

func (a *API) SaveSettings(c *gin.Context) {
	var req domain.Settings
	if !bind(c, &req) {
		return
	}

	s, err := a.game.SaveSettings(c.Request.Context(), req)
	render(c, s, err)
}

func powerUpID(c *gin.Context) (domain.PowerUpID, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderError(c, errors.InvalidArgument("invalid power-up id %q", c.Param("id")))
		return 0, false
	}
	return domain.PowerUpID(id), true
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		renderError(c, errors.New(errors.CodeInvalidArgument, errors.WithMessagef("invalid request body: %v", err)))
		return false
	}
	return true
}

func render[T any](c *gin.Context, v T, err error) {
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func renderError(c *gin.Context, err error) {
	e := errors.Convert(err)
	if e.Code == errors.CodeInternal {
		slog.ErrorContext(c.Request.Context(), "api: request failed",
			"path", c.FullPath(),
			"request_id", c.GetString(headerRequestID),
			"error", err,
		)
	}

	c.AbortWithStatusJSON(e.HTTPStatusCode(), e)
}

// requestID tags every request with the caller's X-Request-ID or a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(headerRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}
