package device

import "context"

// HAL is the platform audio property interface.
type HAL interface {
	// DeviceIDs returns every device the OS knows about, in OS order.
	DeviceIDs() ([]ID, error)
	// Name returns the display name of a device.
	Name(id ID) (string, error)
	// HasChannels reports whether the device exposes at least one channel
	// in dir.
	HasChannels(id ID, dir Direction) (bool, error)
	// DefaultDevice returns the system default device for dir.
	DefaultDevice(dir Direction) (ID, error)
	// SetDefaultDevice makes id the system default device for dir.
	SetDefaultDevice(dir Direction, id ID) error
}

// EventKind distinguishes the OS notifications a Watcher reports.
type EventKind int

const (
	DevicesChanged EventKind = iota
	DefaultInputChanged
	DefaultOutputChanged
)

func (k EventKind) String() string {
	switch k {
	case DefaultInputChanged:
		return "default-input"
	case DefaultOutputChanged:
		return "default-output"
	default:
		return "devices"
	}
}

// Event is a single OS change notification.
type Event struct {
	Kind EventKind
}

// Watcher delivers OS change notifications. Watch blocks until ctx is
// cancelled or the underlying subscription fails; notify may be called from
// any goroutine.
type Watcher interface {
	Watch(ctx context.Context, notify func(Event)) error
}
