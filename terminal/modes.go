package terminal

// Mode represents the current interaction mode
type Mode int

const (
	ModeSelect  Mode = iota // Choosing a component
	ModeMove                // Dragging the selected component
	ModeRouting             // Dropped, waiting for the route
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "SELECT"
	case ModeMove:
		return "MOVE"
	case ModeRouting:
		return "ROUTING"
	default:
		return "UNKNOWN"
	}
}
