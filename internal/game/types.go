package game

// State is the top-level mode of the running game.
type State int

const (
	StatePlaying State = iota
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}
