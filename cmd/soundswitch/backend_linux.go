//go:build linux

package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/gordonklaus/portaudio"

	"github.com/Danondso/soundswitch/internal/backend/pulse"
	"github.com/Danondso/soundswitch/internal/config"
)

func openBackend(name string, cfg *config.Config, dbg *log.Logger) (*backendHandle, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		if !pulse.Available() {
			log.Printf("WARNING: pactl not found, falling back to the read-only portaudio backend")
			return openPortAudio(cfg, dbg), nil
		}
		return openPulse(cfg, dbg), nil
	case "pulse":
		if !pulse.Available() {
			return nil, fmt.Errorf("backend pulse: pactl not found (install pulseaudio-utils)")
		}
		return openPulse(cfg, dbg), nil
	case "portaudio":
		return openPortAudio(cfg, dbg), nil
	case "miniaudio":
		return openMiniaudio(cfg, dbg)
	case "coreaudio":
		return nil, fmt.Errorf("backend %q is only available on macOS", name)
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

func openPulse(cfg *config.Config, dbg *log.Logger) *backendHandle {
	b := pulse.New(cfg.PulseTimeout(), dbg)
	return &backendHandle{name: "pulse", hal: b, watcher: b, close: func() {}}
}

// initPortAudio suppresses ALSA/JACK noise during PortAudio initialization
// by temporarily redirecting stderr to /dev/null, then calls portaudio.Initialize().
func initPortAudio() error {
	stderrFd := int(os.Stderr.Fd()) //nolint:gosec // fd fits in int on all supported platforms
	savedStderr, err := syscall.Dup(stderrFd)
	if err != nil {
		// If we can't dup stderr, just initialize without suppression
		return portaudio.Initialize()
	}
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		_ = syscall.Close(savedStderr)
		return portaudio.Initialize()
	}
	_ = syscall.Dup2(int(devNull.Fd()), stderrFd)
	_ = devNull.Close()

	initErr := portaudio.Initialize()

	// Restore stderr
	_ = syscall.Dup2(savedStderr, stderrFd)
	_ = syscall.Close(savedStderr)

	return initErr
}
