package speech_test

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/lectorhq/lector/speech"
)

// TestConfigValidate verifies configuration validation.
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*speech.Config)
		wantErr bool
	}{
		{"defaults are valid", func(*speech.Config) {}, false},
		{"mock engine is valid", func(c *speech.Config) { c.Engine = "mock" }, false},
		{"gtts engine is valid", func(c *speech.Config) { c.Engine = "gtts" }, false},
		{"unknown engine", func(c *speech.Config) { c.Engine = "espeak" }, true},
		{"zero rate", func(c *speech.Config) { c.Rate = 0 }, true},
		{"negative rate", func(c *speech.Config) { c.Rate = -1 }, true},
		{"odd sample rate", func(c *speech.Config) { c.SampleRate = 8000 }, true},
		{"48k sample rate", func(c *speech.Config) { c.SampleRate = 48000 }, false},
		{"zero gtts request budget", func(c *speech.Config) { c.GTTS.RequestsPerMinute = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := speech.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoadConfigFromViper verifies that viper keys override defaults.
func TestLoadConfigFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("speech.engine", "gtts")
	viper.Set("speech.rate", 1.25)
	viper.Set("speech.read_by_line", true)
	viper.Set("speech.gtts.language", "fr")

	cfg, err := speech.LoadConfigFromViper()
	if err != nil {
		t.Fatalf("LoadConfigFromViper: %v", err)
	}
	if cfg.Engine != "gtts" {
		t.Errorf("Engine = %q, want gtts", cfg.Engine)
	}
	if cfg.Rate != 1.25 {
		t.Errorf("Rate = %v, want 1.25", cfg.Rate)
	}
	if !cfg.ReadByLine {
		t.Error("ReadByLine should be set")
	}
	if cfg.GTTS.Language != "fr" {
		t.Errorf("GTTS language = %q, want fr", cfg.GTTS.Language)
	}
	// Untouched keys keep their defaults.
	if cfg.Piper.Binary != "piper" {
		t.Errorf("Piper binary = %q, want default", cfg.Piper.Binary)
	}
}
