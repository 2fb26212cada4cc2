package gate

import (
	"fmt"
	"strings"
)

// State is the motion state of the gate.
type State int

const (
	Stopped State = iota
	MovingForward
	MovingReverse
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case MovingForward:
		return "forward"
	case MovingReverse:
		return "reverse"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Priority decides which stop button wins when both are pressed together.
type Priority int

const (
	// EmergencyFirst checks emergency-stop before pause.
	EmergencyFirst Priority = iota
	// PauseFirst checks pause before emergency-stop.
	PauseFirst
)

func (p Priority) String() string {
	if p == PauseFirst {
		return "pause"
	}
	return "estop"
}

// ParsePriority accepts "estop"/"emergency" and "pause". Empty means EmergencyFirst.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "", "estop", "emergency":
		return EmergencyFirst, nil
	case "pause":
		return PauseFirst, nil
	default:
		return 0, fmt.Errorf("unknown stop priority %q", s)
	}
}
