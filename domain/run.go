package dmn

import (
	"time"

	"github.com/google/uuid"
)

// Run is the record of one finished game.
type Run struct {
	ID         uuid.UUID `bson:"_id" json:"id"`
	PlayerID   uuid.UUID `bson:"playerId" json:"player_id"`
	SessionID  uuid.UUID `bson:"sessionId" json:"session_id"`
	Difficulty string    `bson:"difficulty" json:"difficulty"`
	Seed       int64     `bson:"seed" json:"seed"`
	Outcome    string    `bson:"outcome" json:"outcome"`
	Seconds    float64   `bson:"seconds" json:"seconds"`
	Width      int       `bson:"width" json:"width"`
	Height     int       `bson:"height" json:"height"`
	FinishedAt time.Time `bson:"finishedAt" json:"finished_at"`
}

// LeaderboardEntry is one ranked escape time.
type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	PlayerID uuid.UUID `json:"player_id"`
	Seconds  float64   `json:"seconds"`
}
