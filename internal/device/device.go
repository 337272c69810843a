// Package device models audio devices per direction and the operations the
// switcher performs on them: querying, selecting, cycling and refreshing.
package device

import (
	"errors"
	"fmt"
	"strings"
)

// ID is an opaque platform device handle. CoreAudio uses the numeric
// AudioDeviceID, PulseAudio the sink or source name.
type ID string

// Direction is the role a device plays: capture (input) or playback (output).
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// ParseDirection accepts "input", "in", "output" and "out" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input", "in":
		return Input, nil
	case "output", "out":
		return Output, nil
	}
	return Input, fmt.Errorf("unknown direction %q (valid: input, output)", s)
}

// Device is an immutable description of one audio device.
type Device struct {
	ID     ID
	Name   string
	Input  bool
	Output bool
}

// Equal reports whether d and o refer to the same device. Only the ID is
// compared; names and capabilities may differ between refreshes.
func (d Device) Equal(o Device) bool {
	return d.ID == o.ID
}

// Capable reports whether d has channels in dir.
func (d Device) Capable(dir Direction) bool {
	if dir == Input {
		return d.Input
	}
	return d.Output
}

// IndexOf returns the position of dev in list by identity, or -1.
func IndexOf(list []Device, dev Device) int {
	for i := range list {
		if list[i].Equal(dev) {
			return i
		}
	}
	return -1
}

var (
	// ErrReadOnly is returned by backends that can enumerate devices but
	// cannot change the system default.
	ErrReadOnly = errors.New("backend cannot change the default device")

	// ErrSelect wraps a failed default-device write.
	ErrSelect = errors.New("set default device")

	// ErrNotApplied is returned in confirm mode when the readback after a
	// write does not match the requested device.
	ErrNotApplied = errors.New("default device change not applied")

	// ErrNoDefault is returned by backends when the OS reports no default
	// device for a direction.
	ErrNoDefault = errors.New("no default device")
)
