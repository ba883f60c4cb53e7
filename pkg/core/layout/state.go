package layout

// State is the lifecycle phase of an [Engine].
type State int

const (
	// Initializing assigns start positions and resets the cooling schedule.
	Initializing State = iota
	// Iterating is the running simulation.
	Iterating
	// Stable means the temperature criterion was met.
	Stable
	// Stopped means the iteration cap was reached before stability.
	Stopped
)

// Terminal reports whether no further steps will move any node.
func (s State) Terminal() bool { return s == Stable || s == Stopped }

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Stable:
		return "stable"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}
