package device

import (
	"errors"
	"sync"
)

// fakeHAL is an in-memory HAL for tests.
type fakeHAL struct {
	mu       sync.Mutex
	ids      []ID
	names    map[ID]string
	inputs   map[ID]bool
	outputs  map[ID]bool
	defaults map[Direction]ID
	idsErr   error
	defErr   error
	setErr   error
	ignore   bool // accept writes without changing the default
	sets     int
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		names:    map[ID]string{},
		inputs:   map[ID]bool{},
		outputs:  map[ID]bool{},
		defaults: map[Direction]ID{},
	}
}

func (f *fakeHAL) add(id ID, name string, in, out bool) *fakeHAL {
	f.ids = append(f.ids, id)
	if name != "" {
		f.names[id] = name
	}
	f.inputs[id] = in
	f.outputs[id] = out
	return f
}

func (f *fakeHAL) DeviceIDs() ([]ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	return append([]ID(nil), f.ids...), nil
}

func (f *fakeHAL) Name(id ID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := f.names[id]
	if !ok {
		return "", errors.New("no name")
	}
	return name, nil
}

func (f *fakeHAL) HasChannels(id ID, dir Direction) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dir == Input {
		return f.inputs[id], nil
	}
	return f.outputs[id], nil
}

func (f *fakeHAL) DefaultDevice(dir Direction) (ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.defErr != nil {
		return "", f.defErr
	}
	id, ok := f.defaults[dir]
	if !ok {
		return "", ErrNoDefault
	}
	return id, nil
}

func (f *fakeHAL) SetDefaultDevice(dir Direction, id ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	if !f.ignore {
		f.defaults[dir] = id
	}
	return nil
}

func (f *fakeHAL) setDefault(dir Direction, id ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults[dir] = id
}
