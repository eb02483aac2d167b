// Package audio provides PCM playback for synthesizer engines using oto.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Format describes a PCM clip: 16-bit signed little-endian samples.
type Format struct {
	SampleRate int // Samples per second
	Channels   int // 1 = mono, 2 = stereo
}

// Player plays one PCM clip at a time. The oto context is created on first
// use and is fixed to that clip's format for the life of the process, which
// matches one engine per run.
type Player struct {
	mu sync.Mutex

	ctx    *oto.Context
	format Format

	player *oto.Player
	data   []byte // Keeps the clip alive while oto streams it
	stopCh chan struct{}
	paused bool
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play starts playback of a PCM clip and fires onDone exactly once when the
// clip drains, unless Stop cancels it first. A clip already playing is
// stopped and its onDone suppressed.
func (p *Player) Play(pcm []byte, f Format, onDone func(), onErr func(error)) error {
	if len(pcm) == 0 {
		return errors.New("audio data is empty")
	}
	if f.SampleRate <= 0 || (f.Channels != 1 && f.Channels != 2) {
		return fmt.Errorf("unsupported format: %d Hz, %d channels", f.SampleRate, f.Channels)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureContextLocked(f); err != nil {
		return err
	}
	p.stopLocked()

	p.data = pcm
	p.player = p.ctx.NewPlayer(bytes.NewReader(pcm))
	p.paused = false
	p.stopCh = make(chan struct{})
	p.player.Play()

	go p.watch(p.player, p.stopCh, onDone, onErr)
	return nil
}

// Pause suspends the current clip in place.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil || p.paused {
		return errors.New("nothing to pause")
	}
	p.player.Pause()
	p.paused = true
	return nil
}

// Resume continues a paused clip.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil || !p.paused {
		return errors.New("nothing to resume")
	}
	p.paused = false
	p.player.Play()
	return nil
}

// Stop discards the current clip. Its onDone never fires.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// IsPlaying reports whether a clip is actively playing.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.player != nil && !p.paused
}

// IsPaused reports whether a clip is suspended.
func (p *Player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.player != nil && p.paused
}

// Duration returns the play time of a clip in this player's format.
func (p *Player) Duration(pcm []byte, f Format) time.Duration {
	bytesPerSecond := f.SampleRate * f.Channels * 2
	if bytesPerSecond == 0 {
		return 0
	}
	return time.Duration(len(pcm)) * time.Second / time.Duration(bytesPerSecond)
}

func (p *Player) ensureContextLocked(f Format) error {
	if p.ctx != nil {
		if f != p.format {
			return fmt.Errorf("audio format changed mid-run: have %d Hz/%dch, got %d Hz/%dch",
				p.format.SampleRate, p.format.Channels, f.SampleRate, f.Channels)
		}
		return nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("create audio context: %w", err)
	}
	<-ready

	p.ctx = ctx
	p.format = f
	return nil
}

// stopLocked discards the current clip and its watcher.
func (p *Player) stopLocked() {
	if p.stopCh != nil {
		close(p.stopCh)
		p.stopCh = nil
	}
	if p.player != nil {
		_ = p.player.Close()
		p.player = nil
	}
	p.data = nil
	p.paused = false
}

// watch polls the oto player until the clip drains, then finalizes and
// reports completion. The stop channel aborts the watcher without firing
// onDone.
func (p *Player) watch(player *oto.Player, stop chan struct{}, onDone func(), onErr func(error)) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.player != player {
				// Replaced by a newer clip.
				p.mu.Unlock()
				return
			}
			if p.paused {
				p.mu.Unlock()
				continue
			}
			if player.IsPlaying() {
				p.mu.Unlock()
				continue
			}
			err := player.Err()
			p.stopLocked()
			p.mu.Unlock()

			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				return
			}
			if onDone != nil {
				onDone()
			}
			return
		}
	}
}
