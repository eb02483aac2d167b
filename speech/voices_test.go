package speech_test

import (
	"errors"
	"testing"

	"github.com/lectorhq/lector/speech"
)

// TestDefaultVoice verifies the ranking policy: local voices first, then
// locale language matches, then list order.
func TestDefaultVoice(t *testing.T) {
	local := speech.Voice{ID: "local-de", Language: "de-DE", Local: true}
	localMatch := speech.Voice{ID: "local-en", Language: "en-GB", Local: true}
	remoteMatch := speech.Voice{ID: "remote-en", Language: "en-US"}
	remote := speech.Voice{ID: "remote-fr", Language: "fr-FR"}

	tests := []struct {
		name   string
		voices []speech.Voice
		locale string
		want   string
	}{
		{
			name:   "local and matching beats everything",
			voices: []speech.Voice{remote, remoteMatch, local, localMatch},
			locale: "en-US",
			want:   "local-en",
		},
		{
			name:   "local beats remote match",
			voices: []speech.Voice{remoteMatch, local},
			locale: "en-US",
			want:   "local-de",
		},
		{
			name:   "language match beats list order",
			voices: []speech.Voice{remote, remoteMatch},
			locale: "en-AU",
			want:   "remote-en",
		},
		{
			name:   "falls back to first voice",
			voices: []speech.Voice{remote, remoteMatch},
			locale: "ja-JP",
			want:   "remote-fr",
		},
		{
			name:   "bad locale falls back to first voice",
			voices: []speech.Voice{remote, remoteMatch},
			locale: "not-a-locale!!!",
			want:   "remote-fr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := speech.DefaultVoice(tt.voices, tt.locale)
			if err != nil {
				t.Fatalf("DefaultVoice: %v", err)
			}
			if got.ID != tt.want {
				t.Errorf("DefaultVoice = %q, want %q", got.ID, tt.want)
			}
		})
	}
}

// TestDefaultVoiceDeterministic verifies identical lists pick the same
// default every time.
func TestDefaultVoiceDeterministic(t *testing.T) {
	voices := []speech.Voice{
		{ID: "a", Language: "en-US"},
		{ID: "b", Language: "en-US"},
		{ID: "c", Language: "en-US", Local: true},
	}
	first, err := speech.DefaultVoice(voices, "en-US")
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		again, _ := speech.DefaultVoice(voices, "en-US")
		if again.ID != first.ID {
			t.Fatalf("ranking not deterministic: %q then %q", first.ID, again.ID)
		}
	}
}

// TestDefaultVoiceEmpty verifies the empty-list error.
func TestDefaultVoiceEmpty(t *testing.T) {
	if _, err := speech.DefaultVoice(nil, "en-US"); !errors.Is(err, speech.ErrNoVoices) {
		t.Errorf("DefaultVoice(nil) = %v, want ErrNoVoices", err)
	}
}
