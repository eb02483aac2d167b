package mock_test

import (
	"errors"
	"testing"

	"github.com/lectorhq/lector/speech"
	"github.com/lectorhq/lector/speech/engines/mock"
)

// TestSpeakHoldsUtterance verifies that utterances complete only when the
// test drives them.
func TestSpeakHoldsUtterance(t *testing.T) {
	s := mock.New()

	ended := false
	err := s.Speak("hello", speech.Callbacks{OnEnd: func() { ended = true }})
	if err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if ended {
		t.Fatal("utterance completed on its own")
	}
	if !s.IsSpeaking() {
		t.Error("IsSpeaking = false while holding an utterance")
	}
	if !s.CompleteCurrent() {
		t.Fatal("CompleteCurrent found nothing")
	}
	if !ended {
		t.Error("OnEnd did not fire")
	}
	if s.CompleteCurrent() {
		t.Error("CompleteCurrent fired twice for one utterance")
	}
}

// TestCancelSuppressesCallbacks verifies that canceled utterances never
// complete.
func TestCancelSuppressesCallbacks(t *testing.T) {
	s := mock.New()

	fired := false
	_ = s.Speak("hello", speech.Callbacks{
		OnEnd:   func() { fired = true },
		OnError: func(error) { fired = true },
	})
	s.Cancel()

	if s.CompleteCurrent() || s.FailCurrent(errors.New("x")) {
		t.Error("callbacks survived Cancel")
	}
	if fired {
		t.Error("canceled utterance fired a callback")
	}
}

// TestPauseResume verifies the pause bookkeeping.
func TestPauseResume(t *testing.T) {
	s := mock.New()

	if err := s.Pause(); !errors.Is(err, speech.ErrNotSpeaking) {
		t.Errorf("Pause while idle = %v, want ErrNotSpeaking", err)
	}
	_ = s.Speak("hello", speech.Callbacks{OnEnd: func() {}})
	if err := s.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if !s.IsPaused() || s.IsSpeaking() {
		t.Error("paused state not reported")
	}
	if err := s.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if s.IsPaused() || !s.IsSpeaking() {
		t.Error("resumed state not reported")
	}
}

// TestSetVoiceValidation verifies unknown voices are rejected.
func TestSetVoiceValidation(t *testing.T) {
	s := mock.New()
	if err := s.SetVoice(speech.Voice{ID: "nope"}); !errors.Is(err, speech.ErrVoiceNotFound) {
		t.Errorf("SetVoice(unknown) = %v, want ErrVoiceNotFound", err)
	}
	if err := s.SetVoice(speech.Voice{ID: "mock-local"}); err != nil {
		t.Errorf("SetVoice(known) = %v", err)
	}
}
