// Package mock provides a scriptable synthesizer for testing. Utterances
// never complete on their own; tests drive completion explicitly so playback
// sequences stay deterministic.
package mock

import (
	"sync"

	"github.com/lectorhq/lector/speech"
)

// Synthesizer implements speech.Synthesizer for tests.
type Synthesizer struct {
	mu sync.Mutex

	available bool
	speaking  bool
	paused    bool

	voice speech.Voice
	rate  float64

	pending speech.Callbacks

	// Recorded activity
	spoken      []string
	cancelCount int
	pauseCount  int
	resumeCount int
	speakError  error
	voiceList   []speech.Voice
}

// New creates an available mock synthesizer with a small fixed voice list.
func New() *Synthesizer {
	return &Synthesizer{
		available: true,
		rate:      1.0,
		voiceList: []speech.Voice{
			{ID: "mock-local", Name: "Mock Local", Language: "en-US", Local: true},
			{ID: "mock-remote", Name: "Mock Remote", Language: "en-GB"},
			{ID: "mock-other", Name: "Mock Other", Language: "de-DE"},
		},
	}
}

// Speak records the utterance and holds its callbacks until the test
// completes or fails it.
func (s *Synthesizer) Speak(text string, cb speech.Callbacks) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.speakError != nil {
		return s.speakError
	}
	s.spoken = append(s.spoken, text)
	s.speaking = true
	s.paused = false
	s.pending = cb
	if cb.OnStart != nil {
		go cb.OnStart()
	}
	return nil
}

// Cancel discards the held utterance; its callbacks never fire.
func (s *Synthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelCount++
	s.speaking = false
	s.paused = false
	s.pending = speech.Callbacks{}
}

// Pause suspends the held utterance.
func (s *Synthesizer) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.speaking {
		return speech.ErrNotSpeaking
	}
	s.pauseCount++
	s.paused = true
	return nil
}

// Resume continues a paused utterance.
func (s *Synthesizer) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return speech.ErrNotPaused
	}
	s.resumeCount++
	s.paused = false
	return nil
}

// IsSpeaking reports whether an utterance is held and not paused.
func (s *Synthesizer) IsSpeaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking && !s.paused
}

// IsPaused reports whether the held utterance is paused.
func (s *Synthesizer) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetVoice records the selected voice.
func (s *Synthesizer) SetVoice(v speech.Voice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.voiceList {
		if known.ID == v.ID {
			s.voice = v
			return nil
		}
	}
	return speech.ErrVoiceNotFound
}

// SetRate records the selected rate.
func (s *Synthesizer) SetRate(rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rate <= 0 {
		return speech.ErrInvalidRate
	}
	s.rate = rate
	return nil
}

// Voices returns the fixed voice list.
func (s *Synthesizer) Voices() []speech.Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]speech.Voice, len(s.voiceList))
	copy(out, s.voiceList)
	return out
}

// Available reports the configured availability.
func (s *Synthesizer) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Test control methods

// CompleteCurrent fires the held utterance's OnEnd callback, simulating the
// engine finishing playback. Returns false if nothing was held.
func (s *Synthesizer) CompleteCurrent() bool {
	s.mu.Lock()
	cb := s.pending
	if cb.OnEnd == nil {
		s.mu.Unlock()
		return false
	}
	s.pending = speech.Callbacks{}
	s.speaking = false
	s.mu.Unlock()

	cb.OnEnd()
	return true
}

// FailCurrent fires the held utterance's OnError callback.
func (s *Synthesizer) FailCurrent(err error) bool {
	s.mu.Lock()
	cb := s.pending
	if cb.OnError == nil {
		s.mu.Unlock()
		return false
	}
	s.pending = speech.Callbacks{}
	s.speaking = false
	s.mu.Unlock()

	cb.OnError(err)
	return true
}

// SetAvailable configures the availability reported by the engine.
func (s *Synthesizer) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = available
}

// SetSpeakError makes subsequent Speak calls fail with err.
func (s *Synthesizer) SetSpeakError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speakError = err
}

// Spoken returns every unit text accepted so far, in order.
func (s *Synthesizer) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.spoken))
	copy(out, s.spoken)
	return out
}

// HasPending reports whether an utterance is currently held.
func (s *Synthesizer) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.OnEnd != nil
}

// CancelCount returns how many times Cancel was called.
func (s *Synthesizer) CancelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelCount
}

// PauseCount returns how many times Pause succeeded.
func (s *Synthesizer) PauseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauseCount
}

// ResumeCount returns how many times Resume succeeded.
func (s *Synthesizer) ResumeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeCount
}

// Voice returns the last voice set.
func (s *Synthesizer) Voice() speech.Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

// Rate returns the last rate set.
func (s *Synthesizer) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}
