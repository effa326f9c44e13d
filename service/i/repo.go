package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazechase/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(ctx context.Context, username string) (*dmn.User, error)
}

// RunRepo stores finished games.
type RunRepo interface {
	// Save inserts a finished run.
	Save(ctx context.Context, run *dmn.Run) error

	// ByPlayer returns the player's most recent runs, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]dmn.Run, error)
}

// Leaderboard ranks escape times per difficulty.
type Leaderboard interface {
	// Submit records an escape time; only a player's best time is kept.
	Submit(ctx context.Context, difficulty string, playerID uuid.UUID, seconds float64) error

	// Top returns up to n entries, fastest first.
	Top(ctx context.Context, difficulty string, n int64) ([]dmn.LeaderboardEntry, error)

	// Count returns how many players are ranked.
	Count(ctx context.Context, difficulty string) (int64, error)
}
