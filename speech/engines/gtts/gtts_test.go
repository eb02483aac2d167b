package gtts

import (
	"testing"

	"github.com/lectorhq/lector/speech"
)

func TestLanguageVoice(t *testing.T) {
	tt := []struct {
		lang string
		want string
	}{
		{"en", "en"},
		{"EN-GB", "en-gb"},
		{"de", "de"},
		{"xx", "en"}, // unknown falls back to English
		{"", "en"},
	}
	for _, tc := range tt {
		if got := languageVoice(tc.lang); got.ID != tc.want {
			t.Errorf("languageVoice(%q) = %q, want %q", tc.lang, got.ID, tc.want)
		}
	}
}

func TestSetVoiceValidates(t *testing.T) {
	e := New(speech.GTTSConfig{Language: "en", RequestsPerMinute: 50}, nil)

	if err := e.SetVoice(speech.Voice{ID: "fr"}); err != nil {
		t.Fatalf("SetVoice(fr): %v", err)
	}
	if err := e.SetVoice(speech.Voice{ID: "nope"}); err != speech.ErrVoiceNotFound {
		t.Errorf("SetVoice(nope) = %v, want ErrVoiceNotFound", err)
	}
}

func TestSetRate(t *testing.T) {
	e := New(speech.GTTSConfig{Language: "en", RequestsPerMinute: 50}, nil)

	if err := e.SetRate(0); err != speech.ErrInvalidRate {
		t.Errorf("SetRate(0) = %v, want ErrInvalidRate", err)
	}
	if err := e.SetRate(1.5); err != nil {
		t.Errorf("SetRate(1.5): %v", err)
	}
}

func TestVoicesAreRemote(t *testing.T) {
	e := New(speech.GTTSConfig{Language: "en", RequestsPerMinute: 50}, nil)
	voices := e.Voices()
	if len(voices) == 0 {
		t.Fatal("no voices")
	}
	for _, v := range voices {
		if v.Local {
			t.Errorf("voice %s marked local", v.ID)
		}
	}
}
