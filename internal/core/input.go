package core

// Action is a discrete craft command used by externally driven controllers.
// The numeric values are part of the observation/action contract: 0=up, 1=hold, 2=down.
type Action int

const (
	ActionUp Action = iota
	ActionHold
	ActionDown
)

// ActionCount is the size of the discrete action space.
const ActionCount = 3

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionHold:
		return "Hold"
	case ActionDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Valid reports whether a is one of the defined actions.
func (a Action) Valid() bool {
	return a >= ActionUp && a <= ActionDown
}

// Delta returns the vertical direction of the action: -1 up, 0 hold, +1 down.
func (a Action) Delta() float64 {
	switch a {
	case ActionUp:
		return -1
	case ActionDown:
		return 1
	default:
		return 0
	}
}
