package device

import (
	"fmt"
	"log"
)

// Next returns the device after current in list, wrapping at the end. A
// current device that is nil or not in list selects the first entry. Lists
// with fewer than two devices have nothing to cycle to.
func Next(list []Device, current *Device) (Device, bool) {
	if len(list) < 2 {
		return Device{}, false
	}
	idx := -1
	if current != nil {
		idx = IndexOf(list, *current)
	}
	return list[(idx+1)%len(list)], true
}

// Write sets the system default for dir. In confirm mode it reads the
// default back and returns the device the OS actually reports, together with
// ErrNotApplied when that is not dev.
func Write(hal HAL, dir Direction, dev Device, confirm bool) (Device, error) {
	if err := hal.SetDefaultDevice(dir, dev.ID); err != nil {
		return Device{}, fmt.Errorf("%w %s to %q: %w", ErrSelect, dir, dev.Name, err)
	}
	if !confirm {
		return dev, nil
	}
	got, ok := CurrentDevice(hal, dir)
	if !ok {
		return Device{}, fmt.Errorf("%w: %s readback failed", ErrNotApplied, dir)
	}
	if !got.Equal(dev) {
		return got, fmt.Errorf("%w: %s is %q, want %q", ErrNotApplied, dir, got.Name, dev.Name)
	}
	return got, nil
}

// Switcher ties a HAL to a Registry.
type Switcher struct {
	HAL      HAL
	Registry *Registry
	// Confirm re-reads the default device after each write instead of
	// trusting the write.
	Confirm bool
	Logger  *log.Logger
}

// NewSwitcher creates a Switcher over hal and reg.
func NewSwitcher(hal HAL, reg *Registry, confirm bool, logger *log.Logger) *Switcher {
	return &Switcher{HAL: hal, Registry: reg, Confirm: confirm, Logger: logger}
}

// Refresh queries the OS and replaces the registry state.
func (s *Switcher) Refresh() Snapshot {
	snap := Query(s.HAL)
	s.Registry.Replace(snap)
	s.logf("refresh: seq=%d inputs=%d outputs=%d", snap.Seq, len(snap.Inputs), len(snap.Outputs))
	return snap
}

// Select makes dev the default for dir. On success the registry's current
// device for dir is updated from the write (or the readback in confirm
// mode); on failure the registry is left alone.
func (s *Switcher) Select(dir Direction, dev Device) error {
	got, err := Write(s.HAL, dir, dev, s.Confirm)
	if err != nil {
		if got.ID != "" {
			s.Registry.SetCurrent(dir, got)
		}
		s.logf("select: %v", err)
		return err
	}
	s.Registry.SetCurrent(dir, got)
	s.logf("select: %s -> %s (%s)", dir, got.Name, got.ID)
	return nil
}

// Cycle advances dir to the next device in the registry. It returns false
// when there is nothing to cycle to.
func (s *Switcher) Cycle(dir Direction) (Device, bool, error) {
	snap := s.Registry.Snapshot()
	next, ok := Next(snap.Devices(dir), snap.Current(dir))
	if !ok {
		s.logf("select: cycle %s skipped, %d device(s)", dir, len(snap.Devices(dir)))
		return Device{}, false, nil
	}
	if err := s.Select(dir, next); err != nil {
		return next, true, err
	}
	return next, true, nil
}

func (s *Switcher) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
