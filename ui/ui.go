// Package ui provides the terminal interface for lector: a scrollable view
// of the segmented document with a read-aloud cursor and a status bar.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lectorhq/lector/speech"
)

// Config holds UI settings resolved at startup.
type Config struct {
	// Path of the document on disk, empty when reading from stdin.
	Path string

	// Watch reloads the document when the file changes on disk.
	Watch bool

	// Autoplay starts reading as soon as the document loads.
	Autoplay bool

	// EnableMouse turns on mouse wheel scrolling.
	EnableMouse bool
}

// NewProgram builds the Bubble Tea program around a playback controller
// whose document is already loaded.
func NewProgram(cfg Config, ctrl *speech.Controller) *tea.Program {
	log.Debug("starting reader", "path", cfg.Path, "watch", cfg.Watch, "autoplay", cfg.Autoplay)

	m := newReaderModel(cfg, ctrl)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	// Controller events become messages. Nothing triggers callbacks until
	// the program is running and a key or Init command reaches the
	// controller, so wiring before Run is safe.
	speech.Forward(ctrl, p.Send)
	return p
}
