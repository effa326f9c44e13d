package gameapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/mazechase/api/identity"
	"github.com/beka-birhanu/mazechase/game"
	"github.com/beka-birhanu/mazechase/game/maze"
	"github.com/beka-birhanu/mazechase/service"
	"github.com/beka-birhanu/mazechase/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultRunsLimit = 20
	defaultTopLimit  = 10
)

// SessionController serves game sessions, run history and leaderboards.
type SessionController struct {
	sessions i.GameSessionManager
}

// NewSessionController initializes a SessionController.
func NewSessionController(gsm i.GameSessionManager) (*SessionController, error) {
	if gsm == nil {
		return nil, errors.New("session controller needs a session manager")
	}
	return &SessionController{sessions: gsm}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard/:difficulty", sc.leaderboard)
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.GET("/:ID", sc.snapshot)
		sessions.GET("/:ID/maze", sc.maze)
		sessions.POST("/:ID/start", sc.start)
		sessions.POST("/:ID/tick", sc.tick)
		sessions.POST("/:ID/reset", sc.reset)
		sessions.DELETE("/:ID", sc.end)
	}
	route.GET("/runs", sc.runs)
}

func (sc *SessionController) create(ctx *gin.Context) {
	playerID, ok := player(ctx)
	if !ok {
		return
	}
	id := sc.sessions.NewSession(playerID)
	ctx.JSON(http.StatusCreated, &SessionCreatedResponse{SessionID: id})
}

func (sc *SessionController) snapshot(ctx *gin.Context) {
	playerID, sessionID, ok := target(ctx)
	if !ok {
		return
	}
	snap, err := sc.sessions.Snapshot(playerID, sessionID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (sc *SessionController) maze(ctx *gin.Context) {
	playerID, sessionID, ok := target(ctx)
	if !ok {
		return
	}
	view, err := sc.sessions.Maze(playerID, sessionID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

func (sc *SessionController) start(ctx *gin.Context) {
	playerID, sessionID, ok := target(ctx)
	if !ok {
		return
	}

	var request StartRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := maze.ParseDifficulty(request.Difficulty)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	snap, err := sc.sessions.Start(playerID, sessionID, d, request.Seed)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (sc *SessionController) tick(ctx *gin.Context) {
	playerID, sessionID, ok := target(ctx)
	if !ok {
		return
	}

	var request TickRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := sc.sessions.Tick(ctx.Request.Context(), playerID, sessionID, request.DT, request.Input)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (sc *SessionController) reset(ctx *gin.Context) {
	playerID, sessionID, ok := target(ctx)
	if !ok {
		return
	}
	snap, err := sc.sessions.Reset(playerID, sessionID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (sc *SessionController) end(ctx *gin.Context) {
	playerID, sessionID, ok := target(ctx)
	if !ok {
		return
	}
	if err := sc.sessions.End(playerID, sessionID); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (sc *SessionController) runs(ctx *gin.Context) {
	playerID, ok := player(ctx)
	if !ok {
		return
	}
	limit, ok := queryLimit(ctx, defaultRunsLimit)
	if !ok {
		return
	}

	runs, err := sc.sessions.Runs(ctx.Request.Context(), playerID, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while listing runs"})
		return
	}
	ctx.JSON(http.StatusOK, runs)
}

func (sc *SessionController) leaderboard(ctx *gin.Context) {
	d, err := maze.ParseDifficulty(ctx.Param("difficulty"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	limit, ok := queryLimit(ctx, defaultTopLimit)
	if !ok {
		return
	}

	entries, total, err := sc.sessions.Leaderboard(ctx.Request.Context(), d, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}
	ctx.JSON(http.StatusOK, &LeaderboardResponse{Difficulty: d.String(), Total: total, Entries: entries})
}

func player(ctx *gin.Context) (uuid.UUID, bool) {
	playerID, err := identity.PlayerID(ctx)
	if err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return playerID, true
}

// target resolves the calling player and the session named in the path.
func target(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, ok := player(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, sessionID, true
}

func queryLimit(ctx *gin.Context, fallback int64) (int64, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return fallback, true
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}

func abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotSessionOwner):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrMazeNotReady), errors.Is(err, game.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, maze.ErrUnknownDifficulty):
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
