// Package piper implements a synthesizer backed by a local Piper binary.
// Each utterance runs one piper process that renders a WAV clip, which is
// then played back through the shared audio player.
package piper

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lectorhq/lector/speech"
	"github.com/lectorhq/lector/speech/audio"
)

// Engine implements speech.Synthesizer using the piper CLI.
type Engine struct {
	cfg    speech.PiperConfig
	player *audio.Player
	logger *log.Logger

	mu        sync.Mutex
	available bool
	voice     speech.Voice
	rate      float64

	// gen invalidates in-flight synthesis goroutines after Cancel.
	gen    uint64
	cancel context.CancelFunc
}

// New creates a Piper engine. Availability reflects whether the configured
// binary is on PATH.
func New(cfg speech.PiperConfig, player *audio.Player) *Engine {
	e := &Engine{
		cfg:    cfg,
		player: player,
		logger: log.WithPrefix("piper"),
		rate:   1.0,
	}
	if _, err := exec.LookPath(cfg.Binary); err == nil {
		e.available = true
	} else {
		e.logger.Warn("piper binary not found", "binary", cfg.Binary)
	}
	e.voice = modelVoice(cfg.Model)
	return e
}

// Speak renders text with the selected model and plays the result. It
// returns once synthesis is underway; completion arrives via callbacks.
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
	binary := e.cfg.Binary
	model := e.modelPathLocked()
	// Piper's length scale stretches phoneme duration, the inverse of a
	// speaking-rate multiplier.
	scale := 1.0 / e.rate
	e.mu.Unlock()

	e.player.Stop()

	go func() {
		defer cancel()

		pcm, format, err := synthesize(ctx, binary, model, scale, text)

		e.mu.Lock()
		stale := gen != e.gen
		e.mu.Unlock()
		if stale {
			return
		}
		if err != nil {
			if cb.OnError != nil {
				cb.OnError(speech.NewError(err, "piper", "synthesize"))
			}
			return
		}
		if cb.OnStart != nil {
			cb.OnStart()
		}
		e.logger.Debug("playing clip", "bytes", len(pcm), "duration", e.player.Duration(pcm, format))
		if err := e.player.Play(pcm, format, cb.OnEnd, cb.OnError); err != nil {
			if cb.OnError != nil {
				cb.OnError(speech.NewError(err, "piper", "play"))
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

// SetVoice selects a Piper model for subsequent utterances.
func (e *Engine) SetVoice(v speech.Voice) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, known := range e.voicesLocked() {
		if known.ID == v.ID {
			e.voice = known
			e.cfg.Model = known.ID
			return nil
		}
	}
	return speech.ErrVoiceNotFound
}

// SetRate selects the speaking rate multiplier.
func (e *Engine) SetRate(rate float64) error {
	if rate <= 0 {
		return speech.ErrInvalidRate
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rate = rate
	return nil
}

// Voices lists the models found in the data directory, or just the
// configured model when no directory is set.
func (e *Engine) Voices() []speech.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voicesLocked()
}

// Available reports whether the piper binary was found.
func (e *Engine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.available
}

func (e *Engine) voicesLocked() []speech.Voice {
	if e.cfg.DataDir == "" {
		return []speech.Voice{modelVoice(e.cfg.Model)}
	}
	matches, err := filepath.Glob(filepath.Join(e.cfg.DataDir, "*.onnx"))
	if err != nil || len(matches) == 0 {
		return []speech.Voice{modelVoice(e.cfg.Model)}
	}
	sort.Strings(matches)
	voices := make([]speech.Voice, 0, len(matches))
	for _, path := range matches {
		model := strings.TrimSuffix(filepath.Base(path), ".onnx")
		voices = append(voices, modelVoice(model))
	}
	return voices
}

func (e *Engine) modelPathLocked() string {
	if e.cfg.DataDir == "" {
		return e.cfg.Model
	}
	return filepath.Join(e.cfg.DataDir, e.cfg.Model+".onnx")
}

// modelVoice derives voice metadata from a Piper model name such as
// "en_US-lessac-medium".
func modelVoice(model string) speech.Voice {
	lang := "en-US"
	if idx := strings.Index(model, "-"); idx > 0 {
		lang = strings.ReplaceAll(model[:idx], "_", "-")
	}
	return speech.Voice{
		ID:       model,
		Name:     model,
		Language: lang,
		Local:    true,
	}
}

// synthesize runs one piper process and returns the decoded WAV payload.
func synthesize(ctx context.Context, binary, model string, scale float64, text string) ([]byte, audio.Format, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary,
		"--model", model,
		"--output_file", "-",
		"--length_scale", fmt.Sprintf("%.3f", scale),
	)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, audio.Format{}, fmt.Errorf("piper: %s: %w", msg, err)
		}
		return nil, audio.Format{}, fmt.Errorf("piper: %w", err)
	}

	pcm, format, err := decodeWAV(stdout.Bytes())
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("decode piper output: %w", err)
	}
	return pcm, format, nil
}
