package speech_test

import (
	"testing"

	"github.com/lectorhq/lector/speech"
)

// TestStateString verifies the state names.
func TestStateString(t *testing.T) {
	tests := []struct {
		state speech.State
		want  string
	}{
		{speech.StateIdle, "idle"},
		{speech.StateSpeaking, "speaking"},
		{speech.StatePaused, "paused"},
		{speech.State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

// TestMachineTransitions verifies the valid and invalid transitions, in
// particular that paused is only reachable from speaking.
func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name string
		from speech.State
		to   speech.State
		ok   bool
	}{
		{"idle to speaking", speech.StateIdle, speech.StateSpeaking, true},
		{"idle to paused", speech.StateIdle, speech.StatePaused, false},
		{"speaking to paused", speech.StateSpeaking, speech.StatePaused, true},
		{"speaking to idle", speech.StateSpeaking, speech.StateIdle, true},
		{"paused to speaking", speech.StatePaused, speech.StateSpeaking, true},
		{"paused to idle", speech.StatePaused, speech.StateIdle, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := speech.NewMachine()
			// Walk the machine into the starting state.
			switch tt.from {
			case speech.StateSpeaking:
				m.Transition(speech.StateSpeaking)
			case speech.StatePaused:
				m.Transition(speech.StateSpeaking)
				m.Transition(speech.StatePaused)
			}
			if m.Current() != tt.from {
				t.Fatalf("setup failed: machine in %v, want %v", m.Current(), tt.from)
			}

			got := m.Transition(tt.to)
			if got != tt.ok {
				t.Errorf("Transition(%v -> %v) = %v, want %v", tt.from, tt.to, got, tt.ok)
			}
			want := tt.from
			if tt.ok {
				want = tt.to
			}
			if m.Current() != want {
				t.Errorf("machine in %v after transition, want %v", m.Current(), want)
			}
		})
	}
}

// TestMachineCallbacks verifies enter and exit hooks fire in order.
func TestMachineCallbacks(t *testing.T) {
	m := speech.NewMachine()

	var order []string
	m.OnExit(speech.StateIdle, func() { order = append(order, "exit-idle") })
	m.OnEnter(speech.StateSpeaking, func() { order = append(order, "enter-speaking") })

	if !m.Transition(speech.StateSpeaking) {
		t.Fatal("transition failed")
	}
	if len(order) != 2 || order[0] != "exit-idle" || order[1] != "enter-speaking" {
		t.Errorf("callback order = %v", order)
	}
}
