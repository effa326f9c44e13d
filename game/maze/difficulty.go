package maze

import (
	"errors"
	"strings"
)

// Difficulty selects a generation profile.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Profile holds the generation parameters of a difficulty.
type Profile struct {
	Width  int // Default grid width for the difficulty
	Height int // Default grid height for the difficulty

	ExtraPassageProb float64 // Probability of opening an eligible interior wall
	MaxConnections   int     // Upper bound of open neighbours for an extra opening
	ProtectRadius    int     // Manhattan radius around start and exit kept untouched

	Smooth bool // Open areas, de-clustering, connectivity repair and dead-end pruning

	PursuerSpeed float64 // World units per second
}

var profiles = map[Difficulty]Profile{
	Easy: {
		Width: 11, Height: 9,
		ExtraPassageProb: 0.20, MaxConnections: 3, ProtectRadius: 1,
		Smooth:       true,
		PursuerSpeed: 2.4,
	},
	Medium: {
		Width: 15, Height: 11,
		ExtraPassageProb: 0.08, MaxConnections: 2, ProtectRadius: 2,
		PursuerSpeed: 3.6,
	},
	Hard: {
		Width: 19, Height: 13,
		ExtraPassageProb: 0.04, MaxConnections: 2, ProtectRadius: 3,
		PursuerSpeed: 4.8,
	},
}

// Profile returns the parameters of d.
func (d Difficulty) Profile() (Profile, error) {
	p, ok := profiles[d]
	if !ok {
		return Profile{}, ErrUnknownDifficulty
	}
	return p, nil
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a case-insensitive name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, ErrUnknownDifficulty
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if _, ok := profiles[d]; !ok {
		return nil, ErrUnknownDifficulty
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(b []byte) error {
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
