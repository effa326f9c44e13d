// Package gameapi exposes game sessions over HTTP.
package gameapi

import (
	dmn "github.com/beka-birhanu/mazechase/domain"
	"github.com/beka-birhanu/mazechase/game"
	"github.com/google/uuid"
)

// StartRequest begins a game in a session. A zero or missing seed picks a
// random maze.
type StartRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
	Seed       int64  `json:"seed"`
}

// TickRequest advances a session by DT seconds.
type TickRequest struct {
	DT    float64    `json:"dt" binding:"required,gt=0,lte=1"`
	Input game.Input `json:"input"`
}

// SessionCreatedResponse carries the ID of a new session.
type SessionCreatedResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

// LeaderboardResponse lists the fastest escapes of a difficulty. Total counts
// every ranked player, not only the listed ones.
type LeaderboardResponse struct {
	Difficulty string                 `json:"difficulty"`
	Total      int64                  `json:"total"`
	Entries    []dmn.LeaderboardEntry `json:"entries"`
}
