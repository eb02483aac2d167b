package speech

// State represents the playback state of the controller.
type State int

const (
	// StateIdle indicates nothing is being spoken. Initial and terminal
	// state.
	StateIdle State = iota
	// StateSpeaking indicates a unit is being synthesized.
	StateSpeaking
	// StatePaused indicates the active utterance is suspended. Only
	// reachable from StateSpeaking.
	StatePaused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpeaking:
		return "speaking"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Machine manages playback state transitions.
type Machine struct {
	current     State
	transitions map[State][]State
	onEnter     map[State]func()
	onExit      map[State]func()
}

// NewMachine creates a state machine with the valid playback transitions.
func NewMachine() *Machine {
	return &Machine{
		current: StateIdle,
		transitions: map[State][]State{
			StateIdle:     {StateSpeaking},
			StateSpeaking: {StatePaused, StateIdle},
			StatePaused:   {StateSpeaking, StateIdle},
		},
		onEnter: make(map[State]func()),
		onExit:  make(map[State]func()),
	}
}

// Transition attempts to move to the specified state. It returns false and
// leaves the machine unchanged when the transition is not valid.
func (m *Machine) Transition(to State) bool {
	if m.current == to {
		return true
	}
	valid := false
	for _, state := range m.transitions[m.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	if exitFn, ok := m.onExit[m.current]; ok && exitFn != nil {
		exitFn()
	}
	m.current = to
	if enterFn, ok := m.onEnter[to]; ok && enterFn != nil {
		enterFn()
	}
	return true
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// OnEnter registers a callback for entering a state.
func (m *Machine) OnEnter(state State, fn func()) {
	m.onEnter[state] = fn
}

// OnExit registers a callback for exiting a state.
func (m *Machine) OnExit(state State, fn func()) {
	m.onExit[state] = fn
}
