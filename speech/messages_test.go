package speech_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lectorhq/lector/document"
	"github.com/lectorhq/lector/speech"
)

// TestForwardDeliversInOrder verifies that forwarded messages arrive in
// emission order: the status stream walks Ready, Reading, Reading, Finished
// and the read head rewind is delivered before the finished status.
func TestForwardDeliversInOrder(t *testing.T) {
	ctrl, synth := newController()
	msgs := make(chan tea.Msg, 64)
	speech.Forward(ctrl, func(m tea.Msg) { msgs <- m })

	ctrl.Load(makeDoc([]string{"a1"}, []string{"b1"}))
	if err := ctrl.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for synth.CompleteCurrent() {
	}

	var (
		statuses []speech.Status
		lastPos  document.Position
	)
	deadline := time.After(2 * time.Second)
collect:
	for {
		select {
		case m := <-msgs:
			switch m := m.(type) {
			case speech.PositionMsg:
				lastPos = m.Position
			case speech.StatusMsg:
				statuses = append(statuses, m.Update.Status)
				if m.Update.Status == speech.StatusFinished {
					break collect
				}
			}
		case <-deadline:
			t.Fatalf("timed out; statuses so far: %v", statuses)
		}
	}

	want := []speech.Status{
		speech.StatusReady,
		speech.StatusReading,
		speech.StatusReading,
		speech.StatusFinished,
	}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("status %d = %v, want %v", i, statuses[i], want[i])
		}
	}
	if lastPos != (document.Position{}) {
		t.Errorf("read head at finish = %+v, want zero", lastPos)
	}
}
