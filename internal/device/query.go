package device

import "sync/atomic"

// ListDevices returns the devices with at least one channel in dir, in the
// order the OS enumerates them. Devices whose name cannot be read are left
// out, and a failed enumeration yields an empty list.
func ListDevices(hal HAL, dir Direction) []Device {
	ids, err := hal.DeviceIDs()
	if err != nil {
		return nil
	}
	var out []Device
	for _, id := range ids {
		dev, ok := describe(hal, id)
		if !ok || !dev.Capable(dir) {
			continue
		}
		out = append(out, dev)
	}
	return out
}

// CurrentDevice returns the default device for dir. The second value is
// false when the default cannot be read or has no name.
func CurrentDevice(hal HAL, dir Direction) (Device, bool) {
	id, err := hal.DefaultDevice(dir)
	if err != nil {
		return Device{}, false
	}
	return describe(hal, id)
}

// describe resolves the name and both capability flags of id. A failed
// channel lookup counts as "no channels".
func describe(hal HAL, id ID) (Device, bool) {
	name, err := hal.Name(id)
	if err != nil {
		return Device{}, false
	}
	in, err := hal.HasChannels(id, Input)
	if err != nil {
		in = false
	}
	out, err := hal.HasChannels(id, Output)
	if err != nil {
		out = false
	}
	return Device{ID: id, Name: name, Input: in, Output: out}, true
}

var querySeq atomic.Uint64

// Query takes a full snapshot of both directions. Each snapshot gets a Seq
// larger than any previously taken in this process.
func Query(hal HAL) Snapshot {
	s := Snapshot{
		Seq:     querySeq.Add(1),
		Inputs:  ListDevices(hal, Input),
		Outputs: ListDevices(hal, Output),
	}
	if d, ok := CurrentDevice(hal, Input); ok {
		s.CurrentInput = &d
	}
	if d, ok := CurrentDevice(hal, Output); ok {
		s.CurrentOutput = &d
	}
	return s
}
