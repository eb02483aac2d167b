// Package gtts implements a synthesizer backed by the gtts-cli tool, which
// fetches speech from Google Translate. Utterances are rate limited to stay
// under the service's tolerance and decoded from MP3 before playback.
package gtts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	mp3 "github.com/hajimehoshi/go-mp3"
	"golang.org/x/time/rate"

	"github.com/lectorhq/lector/speech"
	"github.com/lectorhq/lector/speech/audio"
)

// slowRateThreshold maps the continuous rate multiplier onto gtts-cli's
// only speed control, the --slow flag.
const slowRateThreshold = 0.75

// languages lists the voices gtts-cli can serve. The service offers one
// voice per language.
var languages = []speech.Voice{
	{ID: "en", Name: "English", Language: "en"},
	{ID: "en-gb", Name: "English (UK)", Language: "en-GB"},
	{ID: "de", Name: "German", Language: "de"},
	{ID: "es", Name: "Spanish", Language: "es"},
	{ID: "fr", Name: "French", Language: "fr"},
	{ID: "it", Name: "Italian", Language: "it"},
	{ID: "ja", Name: "Japanese", Language: "ja"},
	{ID: "pt", Name: "Portuguese", Language: "pt"},
}

// Engine implements speech.Synthesizer using gtts-cli.
type Engine struct {
	cfg     speech.GTTSConfig
	player  *audio.Player
	limiter *rate.Limiter
	logger  *log.Logger

	mu        sync.Mutex
	available bool
	voice     speech.Voice
	rateMul   float64

	// gen invalidates in-flight synthesis goroutines after Cancel.
	gen    uint64
	cancel context.CancelFunc
}

// New creates a gTTS engine. Availability reflects whether gtts-cli is on
// PATH.
func New(cfg speech.GTTSConfig, player *audio.Player) *Engine {
	e := &Engine{
		cfg:     cfg,
		player:  player,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute)/60, 1),
		logger:  log.WithPrefix("gtts"),
		rateMul: 1.0,
	}
	if _, err := exec.LookPath("gtts-cli"); err == nil {
		e.available = true
	} else {
		e.logger.Warn("gtts-cli not found")
	}
	e.voice = languageVoice(cfg.Language)
	return e
}

// Speak fetches speech for text and plays it. Network latency means the
// OnStart callback can lag the call noticeably.
func (e *Engine) Speak(text string, cb speech.Callbacks) error {
	e.mu.Lock()
	if !e.available {
		e.mu.Unlock()
		return speech.ErrSynthesizerUnavailable
	}
	e.gen++
	gen := e.gen
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout)
	if e.cancel != nil {
		e.cancel()
	}
	e.cancel = cancel
	lang := e.voice.ID
	slow := e.cfg.Slow || e.rateMul <= slowRateThreshold
	e.mu.Unlock()

	e.player.Stop()

	go func() {
		defer cancel()

		if err := e.limiter.Wait(ctx); err != nil {
			// Canceled or timed out while queued; treat as canceled.
			return
		}
		pcm, format, err := e.fetch(ctx, lang, slow, text)

		e.mu.Lock()
		stale := gen != e.gen
		e.mu.Unlock()
		if stale {
			return
		}
		if err != nil {
			if cb.OnError != nil {
				cb.OnError(speech.NewError(err, "gtts", "synthesize"))
			}
			return
		}
		if cb.OnStart != nil {
			cb.OnStart()
		}
		if err := e.player.Play(pcm, format, cb.OnEnd, cb.OnError); err != nil {
			if cb.OnError != nil {
				cb.OnError(speech.NewError(err, "gtts", "play"))
			}
		}
	}()
	return nil
}

// Cancel discards the in-flight utterance; its callbacks never fire.
func (e *Engine) Cancel() {
	e.mu.Lock()
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()
	e.player.Stop()
}

// Pause suspends playback in place.
func (e *Engine) Pause() error {
	return e.player.Pause()
}

// Resume continues paused playback.
func (e *Engine) Resume() error {
	return e.player.Resume()
}

// IsSpeaking reports whether a clip is playing.
func (e *Engine) IsSpeaking() bool {
	return e.player.IsPlaying()
}

// IsPaused reports whether a clip is suspended.
func (e *Engine) IsPaused() bool {
	return e.player.IsPaused()
}

// SetVoice selects a gTTS language for subsequent utterances.
func (e *Engine) SetVoice(v speech.Voice) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, known := range languages {
		if known.ID == v.ID {
			e.voice = known
			return nil
		}
	}
	return speech.ErrVoiceNotFound
}

// SetRate selects the speaking rate multiplier. gTTS only distinguishes
// normal from slow, so the multiplier is thresholded.
func (e *Engine) SetRate(rate float64) error {
	if rate <= 0 {
		return speech.ErrInvalidRate
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rateMul = rate
	return nil
}

// Voices lists the supported languages.
func (e *Engine) Voices() []speech.Voice {
	out := make([]speech.Voice, len(languages))
	copy(out, languages)
	return out
}

// Available reports whether gtts-cli was found.
func (e *Engine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.available
}

// fetch runs gtts-cli into a temp file and decodes the MP3 to PCM.
func (e *Engine) fetch(ctx context.Context, lang string, slow bool, text string) ([]byte, audio.Format, error) {
	tmp, err := os.CreateTemp(e.cfg.TempDir, "lector-*.mp3")
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	args := []string{"-", "--lang", lang, "--output", path}
	if slow {
		args = append(args, "--slow")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "gtts-cli", args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, audio.Format{}, fmt.Errorf("gtts-cli: %s: %w", msg, err)
		}
		return nil, audio.Format{}, fmt.Errorf("gtts-cli: %w", err)
	}

	return decodeMP3(path)
}

// decodeMP3 converts an MP3 file to 16-bit stereo PCM.
func decodeMP3(path string) ([]byte, audio.Format, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, audio.Format{}, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("decode mp3: %w", err)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("decode mp3: %w", err)
	}
	// go-mp3 always yields two 16-bit channels.
	return pcm, audio.Format{SampleRate: dec.SampleRate(), Channels: 2}, nil
}

// languageVoice resolves a configured language code to a known voice,
// falling back to English.
func languageVoice(lang string) speech.Voice {
	lang = strings.ToLower(lang)
	for _, v := range languages {
		if v.ID == lang {
			return v
		}
	}
	return languages[0]
}
