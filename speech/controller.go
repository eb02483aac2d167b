// Package speech drives sequential section-by-section playback of a
// segmented document through an injected Synthesizer.
package speech

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lectorhq/lector/document"
)

// Controller owns the read head and sequences unit text into a Synthesizer.
// All state transitions happen either in user-triggered calls or in
// utterance completion callbacks; a generation counter makes cancellation
// explicit so a stale completion can never act on newer state.
type Controller struct {
	synth Synthesizer

	mu       sync.Mutex
	doc      document.Document
	pos      document.Position
	override *document.Position // One-shot mid-section entry point
	machine  *Machine

	// generation invalidates in-flight utterance callbacks; it is bumped on
	// every cancel path (stop, seek with autoplay, reload, voice change).
	generation uint64

	readByLine bool

	onPosition func(document.Position)
	onState    func(State)
	onStatus   func(StatusUpdate)

	logger *log.Logger
}

// NewController creates a controller around a synthesizer capability.
func NewController(synth Synthesizer) *Controller {
	return &Controller{
		synth:   synth,
		machine: NewMachine(),
		logger:  log.WithPrefix("speech"),
	}
}

// SetReadByLine switches between section units (default) and single-line
// units. Takes effect at the next unit boundary.
func (c *Controller) SetReadByLine(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readByLine = enabled
}

// OnPositionChange registers a callback invoked after every read head
// mutation. Callbacks must not call back into the controller.
func (c *Controller) OnPositionChange(fn func(document.Position)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPosition = fn
}

// OnStateChange registers a callback invoked after every state transition.
func (c *Controller) OnStateChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = fn
}

// OnStatus registers a callback for user-visible status updates.
func (c *Controller) OnStatus(fn func(StatusUpdate)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = fn
}

// LoadText segments raw text and loads the result. The previous document is
// replaced wholesale. An input that normalizes to nothing loads an empty
// document and reports ErrEmptyInput.
func (c *Controller) LoadText(text string) (document.Document, error) {
	doc := document.Segment(text)
	c.Load(doc)
	if doc.IsEmpty() {
		return doc, ErrEmptyInput
	}
	return doc, nil
}

// Load replaces the current document, cancels any active utterance, and
// resets the read head to the zero position.
func (c *Controller) Load(doc document.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.synth.Cancel()
	c.generation++
	c.doc = doc
	c.pos = document.Position{}
	c.override = nil
	if c.machine.Transition(StateIdle) {
		c.emitState()
	}
	c.emitPosition()
	c.emitStatus(StatusUpdate{Status: StatusReady, TotalSections: doc.SectionCount()})
}

// Start begins playback from the current position, or resumes when paused.
// Starting while already speaking is a no-op.
func (c *Controller) Start() error {
	if !c.synth.Available() {
		return ErrSynthesizerUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.machine.Current() {
	case StateSpeaking:
		return nil
	case StatePaused:
		if err := c.synth.Resume(); err != nil {
			return NewError(err, "controller", "resume")
		}
		c.machine.Transition(StateSpeaking)
		c.emitState()
		c.emitStatus(StatusUpdate{Status: StatusResumed, TotalSections: c.doc.SectionCount()})
		return nil
	default:
		if c.doc.IsEmpty() {
			return ErrNoDocument
		}
		return c.startLocked()
	}
}

// Pause suspends playback. Pausing while paused resumes (symmetric toggle);
// pausing while idle is a no-op.
func (c *Controller) Pause() error {
	if !c.synth.Available() {
		return ErrSynthesizerUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.machine.Current() {
	case StateSpeaking:
		if err := c.synth.Pause(); err != nil {
			return NewError(err, "controller", "pause")
		}
		c.machine.Transition(StatePaused)
		c.emitState()
		c.emitStatus(StatusUpdate{Status: StatusPaused, TotalSections: c.doc.SectionCount()})
		return nil
	case StatePaused:
		if err := c.synth.Resume(); err != nil {
			return NewError(err, "controller", "resume")
		}
		c.machine.Transition(StateSpeaking)
		c.emitState()
		c.emitStatus(StatusUpdate{Status: StatusResumed, TotalSections: c.doc.SectionCount()})
		return nil
	default:
		return nil
	}
}

// Stop cancels any active utterance and returns to idle. The read head is
// left where it was; the pending override is cleared.
func (c *Controller) Stop() error {
	if !c.synth.Available() {
		return ErrSynthesizerUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.synth.Cancel()
	c.generation++
	c.override = nil
	if c.machine.Transition(StateIdle) {
		c.emitState()
	}
	c.emitStatus(StatusUpdate{Status: StatusStopped, TotalSections: c.doc.SectionCount()})
	return nil
}

// Seek moves the read head to the clamped address and records it as a
// one-shot mid-section entry point. With autoplay the active utterance is
// canceled and playback restarts from the new address immediately.
func (c *Controller) Seek(section, line int, autoplay bool) error {
	if !c.synth.Available() {
		return ErrSynthesizerUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc.IsEmpty() {
		return ErrNoDocument
	}

	pos := c.doc.Clamp(document.Position{Section: section, Line: line})
	c.pos = pos
	ov := pos
	c.override = &ov
	c.emitPosition()

	if !autoplay {
		return nil
	}
	c.synth.Cancel()
	c.generation++
	c.machine.Transition(StateIdle)
	return c.startLocked()
}

// SetVoice selects the synthesizer voice. When playback is active the
// current unit restarts so the change takes effect immediately.
func (c *Controller) SetVoice(v Voice) error {
	if !c.synth.Available() {
		return ErrSynthesizerUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.synth.SetVoice(v); err != nil {
		return NewError(err, "controller", "set voice")
	}
	c.restartIfActiveLocked()
	return nil
}

// SetRate selects the speaking rate multiplier. When playback is active the
// current unit restarts so the change takes effect immediately.
func (c *Controller) SetRate(rate float64) error {
	if !c.synth.Available() {
		return ErrSynthesizerUnavailable
	}
	if rate <= 0 {
		return ErrInvalidRate
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.synth.SetRate(rate); err != nil {
		return NewError(err, "controller", "set rate")
	}
	c.restartIfActiveLocked()
	return nil
}

// Position returns the current read head.
func (c *Controller) Position() document.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}

// Document returns the loaded document.
func (c *Controller) Document() document.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Voices returns the synthesizer's voices.
func (c *Controller) Voices() []Voice {
	return c.synth.Voices()
}

// startLocked begins sequential playback from the current position.
func (c *Controller) startLocked() error {
	c.machine.Transition(StateSpeaking)
	c.emitState()
	c.speakFromLocked()
	return nil
}

// restartIfActiveLocked cancels the active utterance and restarts the
// current unit, preserving a mid-section entry point when the read head sits
// past the section top.
func (c *Controller) restartIfActiveLocked() {
	if c.machine.Current() == StateIdle {
		return
	}
	c.synth.Cancel()
	c.generation++
	if c.pos.Line > 0 && c.override == nil {
		ov := c.pos
		c.override = &ov
	}
	c.machine.Transition(StateSpeaking)
	c.emitState()
	c.speakFromLocked()
}

// speakFromLocked speaks the unit at the read head, skipping empty units,
// and finishes playback when the read head runs off the document.
func (c *Controller) speakFromLocked() {
	for {
		if c.pos.Section >= c.doc.SectionCount() {
			c.finishLocked()
			return
		}

		text := c.unitTextLocked()
		if strings.TrimSpace(text) == "" {
			// Nothing to synthesize; take the completion path directly.
			c.advanceLocked()
			continue
		}

		gen := c.generation
		c.emitStatus(StatusUpdate{
			Status:        StatusReading,
			Section:       c.pos.Section,
			TotalSections: c.doc.SectionCount(),
		})
		c.logger.Debug("speaking unit", "section", c.pos.Section, "line", c.pos.Line, "chars", len(text))

		err := c.synth.Speak(text, Callbacks{
			OnEnd:   func() { c.unitEnded(gen) },
			OnError: func(err error) { c.unitFailed(gen, err) },
		})
		if err != nil {
			c.failLocked(NewError(err, "synthesizer", "speak"))
		}
		return
	}
}

// unitTextLocked builds the text for the unit at the read head, consuming
// the pending override when it targets the current section.
func (c *Controller) unitTextLocked() string {
	if c.readByLine {
		c.override = nil
		line, ok := c.doc.LineAt(c.pos)
		if !ok {
			return ""
		}
		return line.Text
	}
	if ov := c.override; ov != nil && ov.Section == c.pos.Section {
		c.override = nil
		return c.doc.TailText(*ov)
	}
	return c.doc.SectionText(c.pos.Section)
}

// advanceLocked moves the read head to the next unit. A pending seek
// target takes over at the unit boundary so it is spoken next instead of
// whatever followed the finished unit.
func (c *Controller) advanceLocked() {
	if ov := c.override; ov != nil {
		c.pos = *ov
		c.emitPosition()
		return
	}
	if c.readByLine && c.pos.Line+1 < len(c.doc.Sections[c.pos.Section].Lines) {
		c.pos.Line++
	} else {
		c.pos = document.Position{Section: c.pos.Section + 1}
	}
	if c.pos.Section < c.doc.SectionCount() {
		c.emitPosition()
	}
}

// finishLocked ends playback after the last section and rewinds the read
// head so a later Start replays from the top.
func (c *Controller) finishLocked() {
	c.pos = document.Position{}
	c.override = nil
	c.machine.Transition(StateIdle)
	c.emitState()
	c.emitPosition()
	c.emitStatus(StatusUpdate{Status: StatusFinished, TotalSections: c.doc.SectionCount()})
}

// failLocked stops playback after a synthesis failure. The controller stays
// usable: a later Start retries from the current read head.
func (c *Controller) failLocked(err error) {
	c.synth.Cancel()
	c.generation++
	c.override = nil
	c.machine.Transition(StateIdle)
	c.emitState()
	c.emitStatus(StatusUpdate{Status: StatusError, TotalSections: c.doc.SectionCount(), Err: err})
	c.logger.Error("synthesis failed", "err", err)
}

// unitEnded is the completion callback for one utterance.
func (c *Controller) unitEnded(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.machine.Current() != StateSpeaking {
		// Stale completion from a canceled utterance.
		return
	}
	c.advanceLocked()
	c.speakFromLocked()
}

// unitFailed is the error callback for one utterance.
func (c *Controller) unitFailed(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.machine.Current() != StateSpeaking {
		return
	}
	c.failLocked(NewError(err, "synthesizer", "speak"))
}

func (c *Controller) emitPosition() {
	if c.onPosition != nil {
		c.onPosition(c.pos)
	}
}

func (c *Controller) emitState() {
	if c.onState != nil {
		c.onState(c.machine.Current())
	}
}

func (c *Controller) emitStatus(u StatusUpdate) {
	if c.onStatus != nil {
		c.onStatus(u)
	}
}
