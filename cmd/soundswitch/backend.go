package main

import (
	"log"

	"github.com/Danondso/soundswitch/internal/backend/miniaudio"
	pabackend "github.com/Danondso/soundswitch/internal/backend/portaudio"
	"github.com/Danondso/soundswitch/internal/config"
	"github.com/Danondso/soundswitch/internal/device"
)

// backendHandle is an opened device backend.
type backendHandle struct {
	name    string
	hal     device.HAL
	watcher device.Watcher
	close   func()
}

// openPortAudio opens the read-only PortAudio backend. PortAudio has no
// change notifications, so it is polled.
func openPortAudio(cfg *config.Config, dbg *log.Logger) *backendHandle {
	b := pabackend.New(initPortAudio, dbg)
	return &backendHandle{
		name:    "portaudio",
		hal:     b,
		watcher: &device.PollWatcher{HAL: b, Interval: cfg.PollInterval()},
		close: func() {
			if err := b.Close(); err != nil {
				dbg.Printf("backend: portaudio close: %v", err)
			}
		},
	}
}

// openMiniaudio opens the read-only miniaudio backend, polled like PortAudio.
func openMiniaudio(cfg *config.Config, dbg *log.Logger) (*backendHandle, error) {
	b, err := miniaudio.New(dbg)
	if err != nil {
		return nil, err
	}
	return &backendHandle{
		name:    "miniaudio",
		hal:     b,
		watcher: &device.PollWatcher{HAL: b, Interval: cfg.PollInterval()},
		close: func() {
			if err := b.Close(); err != nil {
				dbg.Printf("backend: miniaudio close: %v", err)
			}
		},
	}, nil
}
