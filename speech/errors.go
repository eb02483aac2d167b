package speech

import "errors"

// Common errors for the speech system.
var (
	// Capability errors
	ErrSynthesizerUnavailable = errors.New("speech synthesizer is not available")
	ErrVoiceNotFound          = errors.New("requested voice not found")
	ErrNoVoices               = errors.New("synthesizer offers no voices")
	ErrInvalidRate            = errors.New("speaking rate must be positive")

	// Controller errors
	ErrNoDocument   = errors.New("no document loaded")
	ErrEmptyInput   = errors.New("no readable text after normalization")
	ErrSynthesis    = errors.New("speech synthesis failed")
	ErrInvalidState = errors.New("invalid state for operation")

	// Engine errors
	ErrEngineBusy     = errors.New("an utterance is already active")
	ErrNotSpeaking    = errors.New("no utterance is active")
	ErrNotPaused      = errors.New("no utterance is paused")
	ErrEngineShutdown = errors.New("engine has been shut down")
)

// IsRecoverable reports whether the user can recover from an error by
// re-issuing a command. Only a missing capability is terminal.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	return !errors.Is(err, ErrSynthesizerUnavailable) &&
		!errors.Is(err, ErrEngineShutdown)
}

// Error wraps an engine or controller failure with the component and action
// it arose from.
type Error struct {
	Err       error  // The underlying error
	Component string // Component that generated the error
	Action    string // Action being performed when the error occurred
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return "unknown speech error"
	}
	if e.Component == "" {
		return e.Err.Error()
	}
	return e.Component + ": " + e.Action + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a wrapped speech error.
func NewError(err error, component, action string) *Error {
	return &Error{Err: err, Component: component, Action: action}
}
