package speech

import "fmt"

// Status identifies the user-visible playback situation.
type Status int

const (
	// StatusReady indicates a document is loaded and playback can start.
	StatusReady Status = iota
	// StatusReading indicates a section is being spoken.
	StatusReading
	// StatusPaused indicates playback is suspended.
	StatusPaused
	// StatusResumed indicates playback continued after a pause.
	StatusResumed
	// StatusFinished indicates the whole document was spoken.
	StatusFinished
	// StatusStopped indicates playback was stopped by the user.
	StatusStopped
	// StatusError indicates synthesis failed.
	StatusError
)

// StatusUpdate is emitted on every user-visible situation change.
type StatusUpdate struct {
	Status        Status
	Section       int   // 0-based section being read (StatusReading only)
	TotalSections int   // Section count of the loaded document
	Err           error // Underlying failure (StatusError only)
}

// String renders the update as a human-readable status line.
func (u StatusUpdate) String() string {
	switch u.Status {
	case StatusReady:
		return "Ready..."
	case StatusReading:
		return fmt.Sprintf("Reading section %d of %d.", u.Section+1, u.TotalSections)
	case StatusPaused:
		return "Paused."
	case StatusResumed:
		return "Resumed."
	case StatusFinished:
		return "Finished."
	case StatusStopped:
		return "Stopped."
	case StatusError:
		if u.Err != nil {
			return fmt.Sprintf("Speech failed: %v. Try another voice.", u.Err)
		}
		return "Speech failed. Try another voice."
	default:
		return ""
	}
}
