package game

import "errors"

// State is a phase of the session lifecycle.
type State int

const (
	Menu State = iota
	Playing
	GameOver
)

// Outcome tells how a finished game ended.
type Outcome int

const (
	NoOutcome Outcome = iota
	Escaped
	Caught
)

var ErrInvalidTransition = errors.New("invalid session state transition")

// transitions lists the states reachable from each state.
var transitions = map[State][]State{
	Menu:     {Playing},
	Playing:  {GameOver, Menu},
	GameOver: {Menu},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case GameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (o Outcome) String() string {
	switch o {
	case Escaped:
		return "escaped"
	case Caught:
		return "caught"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
