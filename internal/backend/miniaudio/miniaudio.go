// Package miniaudio is a read-only device HAL over miniaudio (malgo).
package miniaudio

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/Danondso/soundswitch/internal/device"
)

type entry struct {
	name          string
	capture       bool
	playback      bool
	defaultInput  bool
	defaultOutput bool
}

// Backend lists capture and playback devices through a malgo context.
type Backend struct {
	ctx    *malgo.AllocatedContext
	logger *log.Logger

	mu      sync.Mutex
	order   []device.ID
	entries map[device.ID]*entry
}

// New initializes a malgo context with the platform's default backends.
func New(logger *log.Logger) (*Backend, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("malgo init: %w", err)
	}
	return &Backend{ctx: ctx, logger: logger}, nil
}

// encodeID drops the zero padding of miniaudio's fixed-size device id.
func encodeID(raw []byte) device.ID {
	return device.ID(hex.EncodeToString(bytes.TrimRight(raw, "\x00")))
}

func (b *Backend) scan() error {
	order := []device.ID{}
	entries := map[device.ID]*entry{}
	add := func(typ malgo.DeviceType) error {
		list, err := b.ctx.Devices(typ)
		if err != nil {
			return fmt.Errorf("malgo %v devices: %w", typ, err)
		}
		for i := range list {
			id := encodeID(list[i].ID[:])
			e, ok := entries[id]
			if !ok {
				e = &entry{name: list[i].Name()}
				entries[id] = e
				order = append(order, id)
			}
			isDefault := list[i].IsDefault == 1
			if typ == malgo.Capture {
				e.capture = true
				e.defaultInput = e.defaultInput || isDefault
			} else {
				e.playback = true
				e.defaultOutput = e.defaultOutput || isDefault
			}
		}
		return nil
	}
	if err := add(malgo.Playback); err != nil {
		return err
	}
	if err := add(malgo.Capture); err != nil {
		return err
	}
	b.order, b.entries = order, entries
	if b.logger != nil {
		b.logger.Printf("backend: miniaudio devices=%d", len(order))
	}
	return nil
}

// DeviceIDs rescans playback then capture devices.
func (b *Backend) DeviceIDs() ([]device.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.scan(); err != nil {
		return nil, err
	}
	return append([]device.ID(nil), b.order...), nil
}

func (b *Backend) lookup(id device.ID) (entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[id]
	if !ok {
		return entry{}, fmt.Errorf("unknown device %q", id)
	}
	return *e, nil
}

// Name returns the device name from the last scan.
func (b *Backend) Name(id device.ID) (string, error) {
	e, err := b.lookup(id)
	if err != nil {
		return "", err
	}
	if e.name == "" {
		return "", fmt.Errorf("device %q has no name", id)
	}
	return e.name, nil
}

// HasChannels reports whether the device was listed for dir.
func (b *Backend) HasChannels(id device.ID, dir device.Direction) (bool, error) {
	e, err := b.lookup(id)
	if err != nil {
		return false, err
	}
	if dir == device.Input {
		return e.capture, nil
	}
	return e.playback, nil
}

// DefaultDevice returns the device miniaudio flags as default for dir.
func (b *Backend) DefaultDevice(dir device.Direction) (device.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.entries == nil {
		if err := b.scan(); err != nil {
			return "", err
		}
	}
	for _, id := range b.order {
		e := b.entries[id]
		if (dir == device.Input && e.defaultInput) || (dir == device.Output && e.defaultOutput) {
			return id, nil
		}
	}
	return "", device.ErrNoDefault
}

// SetDefaultDevice always fails with device.ErrReadOnly.
func (b *Backend) SetDefaultDevice(device.Direction, device.ID) error {
	return device.ErrReadOnly
}

// Close releases the malgo context.
func (b *Backend) Close() error {
	err := b.ctx.Uninit()
	b.ctx.Free()
	return err
}
