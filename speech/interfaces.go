package speech

// Voice identifies a synthesizer voice.
type Voice struct {
	ID       string // Engine-specific voice identifier
	Name     string // Human-readable name
	Language string // BCP-47 language tag (e.g. "en-US")
	Local    bool   // True if synthesis runs on-device
}

// Callbacks receives utterance lifecycle notifications. For every accepted
// Speak call, exactly one of OnEnd or OnError fires unless the utterance is
// canceled first; canceled utterances fire nothing.
type Callbacks struct {
	OnStart func()
	OnEnd   func()
	OnError func(error)
}

// Synthesizer is the speech capability the controller sequences unit text
// into. Speak is asynchronous: it returns once the utterance is accepted and
// signals completion through the callbacks. At most one utterance is active
// at a time; Cancel discards the active utterance without firing callbacks.
type Synthesizer interface {
	// Speak begins synthesizing text with the currently selected voice and
	// rate.
	Speak(text string, cb Callbacks) error

	// Cancel discards the active utterance, if any. Its callbacks must not
	// fire afterwards.
	Cancel()

	// Pause suspends the active utterance in place.
	Pause() error

	// Resume continues a paused utterance.
	Resume() error

	// IsSpeaking reports whether an utterance is actively playing.
	IsSpeaking() bool

	// IsPaused reports whether an utterance is suspended.
	IsPaused() bool

	// SetVoice selects the voice for subsequent Speak calls.
	SetVoice(v Voice) error

	// SetRate selects the speaking rate multiplier (1.0 = normal) for
	// subsequent Speak calls.
	SetRate(rate float64) error

	// Voices returns the voices this synthesizer offers, in a stable order.
	Voices() []Voice

	// Available reports whether the capability can synthesize at all.
	Available() bool
}
