//go:build darwin

package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/gordonklaus/portaudio"

	"github.com/Danondso/soundswitch/internal/backend/coreaudio"
	"github.com/Danondso/soundswitch/internal/config"
)

func openBackend(name string, cfg *config.Config, dbg *log.Logger) (*backendHandle, error) {
	switch strings.ToLower(name) {
	case "", "auto", "coreaudio":
		b := coreaudio.New()
		return &backendHandle{name: "coreaudio", hal: b, watcher: b, close: func() {}}, nil
	case "portaudio":
		return openPortAudio(cfg, dbg), nil
	case "miniaudio":
		return openMiniaudio(cfg, dbg)
	case "pulse":
		return nil, fmt.Errorf("backend %q is only available on Linux", name)
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

// initPortAudio initializes PortAudio. On macOS, no stderr suppression is needed
// since CoreAudio doesn't produce ALSA/JACK noise.
func initPortAudio() error {
	return portaudio.Initialize()
}
