//go:build darwin

package coreaudio

/*
#cgo LDFLAGS: -framework CoreAudio -framework CoreFoundation
#include <stdlib.h>
#include "hal_darwin.h"
*/
import "C"

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/Danondso/soundswitch/internal/device"
)

const nameBufLen = 256

// statusError is a non-zero OSStatus. Most CoreAudio codes are four
// printable characters.
type statusError int32

func (e statusError) Error() string {
	u := uint32(e)
	b := []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("OSStatus %d", int32(e))
		}
	}
	return fmt.Sprintf("OSStatus '%s'", b)
}

func check(status C.int32_t) error {
	if status != 0 {
		return statusError(status)
	}
	return nil
}

// Backend talks to the CoreAudio system object.
type Backend struct{}

// New returns a CoreAudio Backend.
func New() *Backend {
	return &Backend{}
}

func parseID(id device.ID) (C.uint32_t, error) {
	n, err := strconv.ParseUint(string(id), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid CoreAudio device id %q: %w", id, err)
	}
	return C.uint32_t(n), nil
}

func formatID(id C.uint32_t) device.ID {
	return device.ID(strconv.FormatUint(uint64(id), 10))
}

func dirFlag(dir device.Direction) C.int {
	if dir == device.Input {
		return 1
	}
	return 0
}

// DeviceIDs reads kAudioHardwarePropertyDevices.
func (b *Backend) DeviceIDs() ([]device.ID, error) {
	var count C.uint32_t
	if err := check(C.ssDeviceCount(&count)); err != nil {
		return nil, fmt.Errorf("device count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	raw := make([]C.uint32_t, count)
	if err := check(C.ssDeviceIDs(&raw[0], &count)); err != nil {
		return nil, fmt.Errorf("device ids: %w", err)
	}
	ids := make([]device.ID, 0, count)
	for _, r := range raw[:count] {
		ids = append(ids, formatID(r))
	}
	return ids, nil
}

// Name reads kAudioObjectPropertyName.
func (b *Backend) Name(id device.ID) (string, error) {
	n, err := parseID(id)
	if err != nil {
		return "", err
	}
	buf := (*C.char)(C.malloc(nameBufLen))
	defer C.free(unsafe.Pointer(buf))
	if err := check(C.ssDeviceName(n, buf, nameBufLen)); err != nil {
		return "", fmt.Errorf("device %s name: %w", id, err)
	}
	return C.GoString(buf), nil
}

// HasChannels sums the channels of the stream configuration for dir.
func (b *Backend) HasChannels(id device.ID, dir device.Direction) (bool, error) {
	n, err := parseID(id)
	if err != nil {
		return false, err
	}
	var channels C.uint32_t
	if err := check(C.ssChannelCount(n, dirFlag(dir), &channels)); err != nil {
		return false, fmt.Errorf("device %s %s channels: %w", id, dir, err)
	}
	return channels > 0, nil
}

// DefaultDevice reads the default input or output device property.
func (b *Backend) DefaultDevice(dir device.Direction) (device.ID, error) {
	var id C.uint32_t
	if err := check(C.ssDefaultDevice(dirFlag(dir), &id)); err != nil {
		return "", fmt.Errorf("default %s: %w", dir, err)
	}
	if id == 0 {
		return "", device.ErrNoDefault
	}
	return formatID(id), nil
}

// SetDefaultDevice writes the default input or output device property.
func (b *Backend) SetDefaultDevice(dir device.Direction, id device.ID) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	return check(C.ssSetDefaultDevice(dirFlag(dir), n))
}
