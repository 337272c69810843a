// Package chime plays a short confirmation tone after the default output
// device changes.
package chime

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Player manages chime playback.
type Player struct {
	data     []byte
	enabled  bool
	logger   *log.Logger
	initOnce sync.Once
	initErr  error
	mu       sync.Mutex // one chime at a time
}

// New creates a Player. If path is empty the built-in tone is used.
// If enabled is false, Play is a no-op.
func New(path string, enabled bool, logger *log.Logger) (*Player, error) {
	p := &Player{enabled: enabled, logger: logger}
	if !enabled {
		return p, nil
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read chime %s: %w", path, err)
		}
		p.data = data
		return p, nil
	}

	data, err := EncodeWAV(Tone(toneSampleRate, toneDuration, 660, 880), toneSampleRate)
	if err != nil {
		return nil, fmt.Errorf("encode chime: %w", err)
	}
	p.data = data
	return p, nil
}

func (p *Player) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// The speaker can only be initialized once per process, so the first
// chime's format fixes the sample rate.
func (p *Player) initSpeaker(format beep.Format) {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
}

// Play plays the chime without blocking the caller.
func (p *Player) Play() {
	if p == nil || !p.enabled || len(p.data) == 0 {
		return
	}

	go func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		streamer, format, err := wav.Decode(bytes.NewReader(p.data))
		if err != nil {
			p.logf("chime: wav decode error: %v", err)
			return
		}
		defer streamer.Close()

		p.initSpeaker(format)
		if p.initErr != nil {
			p.logf("chime: speaker init error: %v", p.initErr)
			return
		}

		done := make(chan struct{})
		speaker.Play(beep.Seq(streamer, beep.Callback(func() {
			close(done)
		})))
		<-done
	}()
}
