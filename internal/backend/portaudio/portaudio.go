// Package portaudio is a read-only device HAL over PortAudio. It can list
// devices and report the defaults PortAudio sees, but cannot change them.
package portaudio

import (
	"fmt"
	"log"
	"sync"

	pa "github.com/gordonklaus/portaudio"

	"github.com/Danondso/soundswitch/internal/device"
)

// Backend enumerates PortAudio devices.
type Backend struct {
	init   func() error
	logger *log.Logger

	mu      sync.Mutex
	started bool
	devices map[device.ID]*pa.DeviceInfo
}

// New creates a Backend. init initializes the PortAudio library; pass
// portaudio.Initialize or a wrapper that silences host API noise.
func New(init func() error, logger *log.Logger) *Backend {
	if init == nil {
		init = pa.Initialize
	}
	return &Backend{init: init, logger: logger}
}

// deviceID keys a device by host API and name, which survive the
// re-initialization that renumbers device indexes.
func deviceID(host, name string) device.ID {
	return device.ID(host + "/" + name)
}

func idOf(d *pa.DeviceInfo) device.ID {
	host := ""
	if d.HostApi != nil {
		host = d.HostApi.Name
	}
	return deviceID(host, d.Name)
}

// rescan restarts PortAudio; its device list is fixed at initialization.
func (b *Backend) rescan() error {
	if b.started {
		_ = pa.Terminate()
		b.started = false
	}
	if err := b.init(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	b.started = true
	return nil
}

// DeviceIDs re-initializes PortAudio so hot-plugged devices show up.
func (b *Backend) DeviceIDs() ([]device.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.rescan(); err != nil {
		return nil, err
	}
	list, err := pa.Devices()
	if err != nil {
		return nil, fmt.Errorf("portaudio devices: %w", err)
	}
	b.devices = make(map[device.ID]*pa.DeviceInfo, len(list))
	ids := make([]device.ID, 0, len(list))
	for _, d := range list {
		id := idOf(d)
		if _, dup := b.devices[id]; dup {
			continue
		}
		b.devices[id] = d
		ids = append(ids, id)
	}
	if b.logger != nil {
		b.logger.Printf("backend: portaudio devices=%d", len(ids))
	}
	return ids, nil
}

func (b *Backend) info(id device.ID) (*pa.DeviceInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.devices[id]
	if !ok {
		return nil, fmt.Errorf("unknown device %q", id)
	}
	return d, nil
}

// Name returns the PortAudio device name.
func (b *Backend) Name(id device.ID) (string, error) {
	d, err := b.info(id)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// HasChannels uses the maximum channel counts PortAudio reports.
func (b *Backend) HasChannels(id device.ID, dir device.Direction) (bool, error) {
	d, err := b.info(id)
	if err != nil {
		return false, err
	}
	if dir == device.Input {
		return d.MaxInputChannels > 0, nil
	}
	return d.MaxOutputChannels > 0, nil
}

// DefaultDevice returns PortAudio's default device for dir.
func (b *Backend) DefaultDevice(dir device.Direction) (device.ID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		if err := b.rescan(); err != nil {
			return "", err
		}
	}
	var d *pa.DeviceInfo
	var err error
	if dir == device.Input {
		d, err = pa.DefaultInputDevice()
	} else {
		d, err = pa.DefaultOutputDevice()
	}
	if err != nil {
		return "", fmt.Errorf("portaudio default %s: %w", dir, err)
	}
	if d == nil {
		return "", device.ErrNoDefault
	}
	return idOf(d), nil
}

// SetDefaultDevice always fails with device.ErrReadOnly.
func (b *Backend) SetDefaultDevice(device.Direction, device.ID) error {
	return device.ErrReadOnly
}

// Close terminates PortAudio if it was initialized.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return nil
	}
	b.started = false
	return pa.Terminate()
}
