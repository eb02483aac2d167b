package speech

import (
	"fmt"
	"time"
)

// Config contains all speech configuration options.
type Config struct {
	// Engine selection
	Engine string `yaml:"engine" env:"LECTOR_ENGINE" envDefault:"piper"`

	// Voice and delivery
	Voice  string  `yaml:"voice" env:"LECTOR_VOICE"`
	Rate   float64 `yaml:"rate" env:"LECTOR_RATE" envDefault:"1.0"`
	Locale string  `yaml:"locale" env:"LECTOR_LOCALE" envDefault:"en-US"`

	// Playback behavior
	Autoplay   bool `yaml:"autoplay" env:"LECTOR_AUTOPLAY" envDefault:"false"`
	ReadByLine bool `yaml:"read_by_line" env:"LECTOR_READ_BY_LINE" envDefault:"false"`

	// Audio output
	SampleRate int `yaml:"sample_rate" env:"LECTOR_SAMPLE_RATE" envDefault:"44100"`

	// Engine-specific configuration
	Piper PiperConfig `yaml:"piper"`
	GTTS  GTTSConfig  `yaml:"gtts"`
}

// PiperConfig contains Piper engine specific settings.
type PiperConfig struct {
	Binary  string        `yaml:"binary" env:"LECTOR_PIPER_BINARY" envDefault:"piper"`
	Model   string        `yaml:"model" env:"LECTOR_PIPER_MODEL" envDefault:"en_US-lessac-medium"`
	DataDir string        `yaml:"data_dir" env:"LECTOR_PIPER_DATA_DIR"`
	Timeout time.Duration `yaml:"timeout" env:"LECTOR_PIPER_TIMEOUT" envDefault:"30s"`
}

// GTTSConfig contains gTTS engine specific settings.
type GTTSConfig struct {
	Language          string        `yaml:"language" env:"LECTOR_GTTS_LANGUAGE" envDefault:"en"`
	Slow              bool          `yaml:"slow" env:"LECTOR_GTTS_SLOW" envDefault:"false"`
	TempDir           string        `yaml:"temp_dir" env:"LECTOR_GTTS_TEMP_DIR"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"LECTOR_GTTS_REQUESTS_PER_MINUTE" envDefault:"50"`
	Timeout           time.Duration `yaml:"timeout" env:"LECTOR_GTTS_TIMEOUT" envDefault:"10s"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine:     "piper",
		Rate:       1.0,
		Locale:     "en-US",
		SampleRate: 44100,
		Piper: PiperConfig{
			Binary:  "piper",
			Model:   "en_US-lessac-medium",
			Timeout: 30 * time.Second,
		},
		GTTS: GTTSConfig{
			Language:          "en",
			RequestsPerMinute: 50,
			Timeout:           10 * time.Second,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.Engine {
	case "piper", "gtts", "mock":
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.Rate <= 0 {
		return ErrInvalidRate
	}
	if c.SampleRate != 44100 && c.SampleRate != 48000 {
		return fmt.Errorf("sample rate must be 44100 or 48000 Hz, got %d", c.SampleRate)
	}
	if c.GTTS.RequestsPerMinute <= 0 {
		return fmt.Errorf("gtts requests per minute must be positive, got %d", c.GTTS.RequestsPerMinute)
	}
	return nil
}
