// Package pulse implements the device HAL on Linux by driving pactl, which
// talks to PulseAudio or PipeWire's pulse server.
package pulse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/Danondso/soundswitch/internal/device"
)

// Runner executes pactl with args and returns its stdout.
type Runner func(ctx context.Context, args ...string) (string, error)

func execRunner(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "pactl", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("pactl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("pactl %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}

// Backend is a device.HAL and device.Watcher backed by pactl.
type Backend struct {
	run     Runner
	timeout time.Duration
	logger  *log.Logger

	mu      sync.Mutex
	sinks   map[device.ID]object
	sources map[device.ID]object
}

// New creates a Backend. Every pactl call is bounded by timeout.
func New(timeout time.Duration, logger *log.Logger) *Backend {
	return NewWithRunner(execRunner, timeout, logger)
}

// NewWithRunner creates a Backend that runs pactl through run.
func NewWithRunner(run Runner, timeout time.Duration, logger *log.Logger) *Backend {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Backend{run: run, timeout: timeout, logger: logger}
}

// Available reports whether pactl is on PATH.
func Available() bool {
	_, err := exec.LookPath("pactl")
	return err == nil
}

func (b *Backend) pactl(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	return b.run(ctx, args...)
}

// DeviceIDs lists sinks then non-monitor sources and caches their details
// for the Name and HasChannels calls that follow.
func (b *Backend) DeviceIDs() ([]device.ID, error) {
	sinkOut, err := b.pactl("list", "sinks")
	if err != nil {
		return nil, err
	}
	sourceOut, err := b.pactl("list", "sources")
	if err != nil {
		return nil, err
	}

	sinks := make(map[device.ID]object)
	sources := make(map[device.ID]object)
	var ids []device.ID
	for _, o := range parseList(sinkOut) {
		id := device.ID(o.Name)
		sinks[id] = o
		ids = append(ids, id)
	}
	for _, o := range parseList(sourceOut) {
		if o.Monitor {
			continue
		}
		id := device.ID(o.Name)
		sources[id] = o
		ids = append(ids, id)
	}

	b.mu.Lock()
	b.sinks, b.sources = sinks, sources
	b.mu.Unlock()
	b.logger.Printf("backend: pulse sinks=%d sources=%d", len(sinks), len(sources))
	return ids, nil
}

func (b *Backend) lookup(id device.ID) (object, bool, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sinks == nil {
		return object{}, false, false
	}
	if o, ok := b.sinks[id]; ok {
		return o, true, false
	}
	if o, ok := b.sources[id]; ok {
		return o, false, true
	}
	return object{}, false, false
}

func (b *Backend) ensureListed(id device.ID) (object, bool, bool, error) {
	if o, sink, source := b.lookup(id); sink || source {
		return o, sink, source, nil
	}
	if _, err := b.DeviceIDs(); err != nil {
		return object{}, false, false, err
	}
	o, sink, source := b.lookup(id)
	if !sink && !source {
		return object{}, false, false, fmt.Errorf("unknown device %q", id)
	}
	return o, sink, source, nil
}

// Name returns the sink or source description.
func (b *Backend) Name(id device.ID) (string, error) {
	o, _, _, err := b.ensureListed(id)
	if err != nil {
		return "", err
	}
	if o.Description == "" {
		return "", fmt.Errorf("device %q has no description", id)
	}
	return o.Description, nil
}

// HasChannels reports channels for sinks in the output direction and for
// sources in the input direction.
func (b *Backend) HasChannels(id device.ID, dir device.Direction) (bool, error) {
	o, sink, source, err := b.ensureListed(id)
	if err != nil {
		return false, err
	}
	if dir == device.Output {
		return sink && o.Channels > 0, nil
	}
	return source && o.Channels > 0, nil
}

// DefaultDevice runs get-default-sink or get-default-source.
func (b *Backend) DefaultDevice(dir device.Direction) (device.ID, error) {
	cmd := "get-default-source"
	if dir == device.Output {
		cmd = "get-default-sink"
	}
	out, err := b.pactl(cmd)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(out)
	if name == "" || name == "@DEFAULT_SINK@" || name == "@DEFAULT_SOURCE@" {
		return "", device.ErrNoDefault
	}
	return device.ID(name), nil
}

// SetDefaultDevice runs set-default-sink or set-default-source.
func (b *Backend) SetDefaultDevice(dir device.Direction, id device.ID) error {
	cmd := "set-default-source"
	if dir == device.Output {
		cmd = "set-default-sink"
	}
	_, err := b.pactl(cmd, string(id))
	return err
}

// Watch streams "pactl subscribe" and reports sink, source, card and server
// events. It blocks until ctx is cancelled or pactl exits.
func (b *Backend) Watch(ctx context.Context, notify func(device.Event)) error {
	cmd := exec.CommandContext(ctx, "pactl", "subscribe")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pactl subscribe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("pactl subscribe: %w", err)
	}
	b.logger.Printf("watch: pactl subscribe started")

	scanErr := scanEvents(stdout, notify)
	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if scanErr != nil {
		return fmt.Errorf("pactl subscribe: %w", scanErr)
	}
	if waitErr != nil {
		return fmt.Errorf("pactl subscribe: %w", waitErr)
	}
	return errors.New("pactl subscribe exited")
}

// scanEvents reads subscribe output until EOF.
func scanEvents(r io.Reader, notify func(device.Event)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		facility, ok := parseEvent(sc.Text())
		if !ok {
			continue
		}
		switch facility {
		case "server":
			// The server object changes when either default moves.
			notify(device.Event{Kind: device.DefaultOutputChanged})
			notify(device.Event{Kind: device.DefaultInputChanged})
		case "sink", "source", "card":
			notify(device.Event{Kind: device.DevicesChanged})
		}
	}
	return sc.Err()
}
