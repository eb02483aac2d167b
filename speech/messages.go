package speech

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lectorhq/lector/document"
)

// Messages for Bubble Tea communication between the controller and the UI.

// PositionMsg reports a read head change; the UI redraws its highlight from
// it.
type PositionMsg struct {
	Position document.Position
}

// StateMsg reports a playback state transition.
type StateMsg struct {
	State State
}

// StatusMsg carries a user-visible status line update.
type StatusMsg struct {
	Update StatusUpdate
}

// DocumentLoadedMsg reports that a new document replaced the previous one.
type DocumentLoadedMsg struct {
	Document document.Document
	Err      error
}

// Forward wires the controller's callbacks to a Bubble Tea program so every
// position, state, and status change arrives as a message, in emission
// order. Callbacks fire under the controller's lock and send can block on
// the program's event loop, so messages go through a queue drained by a
// single goroutine: the controller never blocks and order is preserved.
func Forward(c *Controller, send func(tea.Msg)) {
	var (
		mu    sync.Mutex
		queue []tea.Msg
	)
	wake := make(chan struct{}, 1)

	push := func(msg tea.Msg) {
		mu.Lock()
		queue = append(queue, msg)
		mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	}

	go func() {
		for range wake {
			for {
				mu.Lock()
				if len(queue) == 0 {
					mu.Unlock()
					break
				}
				msg := queue[0]
				queue = queue[1:]
				mu.Unlock()
				send(msg)
			}
		}
	}()

	c.OnPositionChange(func(pos document.Position) {
		push(PositionMsg{Position: pos})
	})
	c.OnStateChange(func(s State) {
		push(StateMsg{State: s})
	})
	c.OnStatus(func(u StatusUpdate) {
		push(StatusMsg{Update: u})
	})
}
