package device

import "sync"

// Snapshot is the state of both directions as of one query.
type Snapshot struct {
	Seq           uint64
	Inputs        []Device
	Outputs       []Device
	CurrentInput  *Device
	CurrentOutput *Device
}

// Devices returns the list for dir.
func (s Snapshot) Devices(dir Direction) []Device {
	if dir == Input {
		return s.Inputs
	}
	return s.Outputs
}

// Current returns the current device for dir, or nil.
func (s Snapshot) Current(dir Direction) *Device {
	if dir == Input {
		return s.CurrentInput
	}
	return s.CurrentOutput
}

// Same reports whether s and o describe the same devices and selections,
// ignoring Seq.
func (s Snapshot) Same(o Snapshot) bool {
	return sameList(s.Inputs, o.Inputs) && sameList(s.Outputs, o.Outputs) &&
		sameCurrent(s.CurrentInput, o.CurrentInput) && sameCurrent(s.CurrentOutput, o.CurrentOutput)
}

func sameList(a, b []Device) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameCurrent(a, b *Device) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// clone deep-copies s so callers cannot alias registry state.
func (s Snapshot) clone() Snapshot {
	c := Snapshot{Seq: s.Seq}
	c.Inputs = append([]Device(nil), s.Inputs...)
	c.Outputs = append([]Device(nil), s.Outputs...)
	if s.CurrentInput != nil {
		d := *s.CurrentInput
		c.CurrentInput = &d
	}
	if s.CurrentOutput != nil {
		d := *s.CurrentOutput
		c.CurrentOutput = &d
	}
	return c
}

// Registry holds the last known Snapshot. All four fields are replaced
// together, so readers never see a half-applied refresh.
type Registry struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot returns a copy of the current state.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap.clone()
}

// Replace installs s unless a snapshot with a higher Seq is already in
// place. It reports whether s was applied.
func (r *Registry) Replace(s Snapshot) bool {
	s = s.clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Seq != 0 && s.Seq < r.snap.Seq {
		return false
	}
	r.snap = s
	return true
}

// SetCurrent records dev as the current device for dir without re-querying
// the OS.
func (r *Registry) SetCurrent(dir Direction, dev Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dir == Input {
		r.snap.CurrentInput = &dev
	} else {
		r.snap.CurrentOutput = &dev
	}
}
