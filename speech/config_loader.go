package speech

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// LoadConfigFromViper builds a Config from the environment and the loaded
// viper configuration. Defaults come from the env tags; explicit viper keys
// (config file or bound flags) override them.
func LoadConfigFromViper() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse environment: %w", err)
	}

	if viper.IsSet("speech.engine") {
		cfg.Engine = viper.GetString("speech.engine")
	}
	if viper.IsSet("speech.voice") {
		cfg.Voice = viper.GetString("speech.voice")
	}
	if viper.IsSet("speech.rate") {
		cfg.Rate = viper.GetFloat64("speech.rate")
	}
	if viper.IsSet("speech.locale") {
		cfg.Locale = viper.GetString("speech.locale")
	}
	if viper.IsSet("speech.autoplay") {
		cfg.Autoplay = viper.GetBool("speech.autoplay")
	}
	if viper.IsSet("speech.read_by_line") {
		cfg.ReadByLine = viper.GetBool("speech.read_by_line")
	}
	if viper.IsSet("speech.sample_rate") {
		cfg.SampleRate = viper.GetInt("speech.sample_rate")
	}

	if viper.IsSet("speech.piper.binary") {
		cfg.Piper.Binary = viper.GetString("speech.piper.binary")
	}
	if viper.IsSet("speech.piper.model") {
		cfg.Piper.Model = viper.GetString("speech.piper.model")
	}
	if viper.IsSet("speech.piper.data_dir") {
		cfg.Piper.DataDir = viper.GetString("speech.piper.data_dir")
	}
	if viper.IsSet("speech.piper.timeout") {
		cfg.Piper.Timeout = viper.GetDuration("speech.piper.timeout")
	}

	if viper.IsSet("speech.gtts.language") {
		cfg.GTTS.Language = viper.GetString("speech.gtts.language")
	}
	if viper.IsSet("speech.gtts.slow") {
		cfg.GTTS.Slow = viper.GetBool("speech.gtts.slow")
	}
	if viper.IsSet("speech.gtts.temp_dir") {
		cfg.GTTS.TempDir = viper.GetString("speech.gtts.temp_dir")
	}
	if viper.IsSet("speech.gtts.requests_per_minute") {
		cfg.GTTS.RequestsPerMinute = viper.GetInt("speech.gtts.requests_per_minute")
	}
	if viper.IsSet("speech.gtts.timeout") {
		cfg.GTTS.Timeout = viper.GetDuration("speech.gtts.timeout")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
