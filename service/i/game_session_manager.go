package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazechase/domain"
	"github.com/beka-birhanu/mazechase/game"
	"github.com/beka-birhanu/mazechase/game/maze"
	"github.com/google/uuid"
)

// GameSessionManager hosts players' game sessions.
// Every call that names a session also names the calling player, who must own it.
type GameSessionManager interface {
	// NewSession creates a session in the menu state and returns its ID.
	NewSession(playerID uuid.UUID) uuid.UUID

	// Start generates a maze and begins play. A zero seed picks a random one.
	Start(playerID, sessionID uuid.UUID, d maze.Difficulty, seed int64) (game.Snapshot, error)

	// Tick advances the session by dt seconds with the given input.
	Tick(ctx context.Context, playerID, sessionID uuid.UUID, dt float64, in game.Input) (game.Snapshot, error)

	// Snapshot returns the current session state.
	Snapshot(playerID, sessionID uuid.UUID) (game.Snapshot, error)

	// Maze returns the grid of the session's current game.
	Maze(playerID, sessionID uuid.UUID) (game.MazeView, error)

	// Reset returns a finished session to the menu.
	Reset(playerID, sessionID uuid.UUID) (game.Snapshot, error)

	// End drops the session, abandoning a game in progress.
	End(playerID, sessionID uuid.UUID) error

	// Runs lists the player's recent finished games.
	Runs(ctx context.Context, playerID uuid.UUID, limit int64) ([]dmn.Run, error)

	// Leaderboard lists the fastest escapes for a difficulty and the number of
	// ranked players.
	Leaderboard(ctx context.Context, d maze.Difficulty, n int64) ([]dmn.LeaderboardEntry, int64, error)
}
