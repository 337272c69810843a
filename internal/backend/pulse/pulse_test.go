package pulse

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Danondso/soundswitch/internal/device"
)

const sinksOut = `Sink #52
	State: RUNNING
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo
	Description: Built-in Audio Analog Stereo
	Driver: PipeWire
	Sample Specification: s32le 2ch 48000Hz
	Channel Map: front-left,front-right

Sink #61
	State: SUSPENDED
	Name: alsa_output.usb-Headset.analog-stereo
	Description: USB Headset
	Sample Specification: s16le 2ch 44100Hz
`

const sourcesOut = `Source #53
	State: SUSPENDED
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo.monitor
	Description: Monitor of Built-in Audio Analog Stereo
	Sample Specification: s32le 2ch 48000Hz
	Monitor of Sink: alsa_output.pci-0000_00_1f.3.analog-stereo

Source #54
	State: RUNNING
	Name: alsa_input.pci-0000_00_1f.3.analog-stereo
	Description: Built-in Audio Analog Stereo
	Sample Specification: s32le 2ch 48000Hz
	Monitor of Sink: n/a

Source #62
	Name: alsa_input.usb-Headset.mono-fallback
	Description:
	Sample Specification: s16le 1ch 44100Hz
	Monitor of Sink: n/a
`

type fakePactl struct {
	calls    [][]string
	defaults map[string]string
	setErr   error
}

func (f *fakePactl) run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	switch strings.Join(args, " ") {
	case "list sinks":
		return sinksOut, nil
	case "list sources":
		return sourcesOut, nil
	case "get-default-sink":
		return f.defaults["sink"] + "\n", nil
	case "get-default-source":
		return f.defaults["source"] + "\n", nil
	}
	if len(args) == 2 && strings.HasPrefix(args[0], "set-default-") {
		if f.setErr != nil {
			return "", f.setErr
		}
		f.defaults[strings.TrimPrefix(args[0], "set-default-")] = args[1]
		return "", nil
	}
	return "", errors.New("unexpected pactl call: " + strings.Join(args, " "))
}

func newFake() (*fakePactl, *Backend) {
	f := &fakePactl{defaults: map[string]string{
		"sink":   "alsa_output.usb-Headset.analog-stereo",
		"source": "alsa_input.pci-0000_00_1f.3.analog-stereo",
	}}
	return f, NewWithRunner(f.run, time.Second, nil)
}

func TestParseList(t *testing.T) {
	objs := parseList(sourcesOut)
	if len(objs) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(objs))
	}
	if !objs[0].Monitor {
		t.Error("expected first source to be a monitor")
	}
	if objs[1].Monitor || objs[1].Channels != 2 {
		t.Errorf("unexpected second source: %+v", objs[1])
	}
	if objs[2].Channels != 1 || objs[2].Description != "" {
		t.Errorf("unexpected third source: %+v", objs[2])
	}
}

func TestParseChannels(t *testing.T) {
	tests := map[string]int{
		"s16le 2ch 44100Hz":     2,
		"float32le 6ch 48000Hz": 6,
		"s16le 44100Hz":         0,
		"":                      0,
	}
	for in, want := range tests {
		if got := parseChannels(in); got != want {
			t.Errorf("parseChannels(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"Event 'change' on sink #52", "sink", true},
		{"Event 'new' on source #3", "source", true},
		{"Event 'change' on server #-1", "server", true},
		{"Event 'remove' on sink-input #12", "sink-input", true},
		{"garbage", "", false},
		{"Event 'x'", "", false},
	}
	for _, tt := range tests {
		got, ok := parseEvent(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseEvent(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestQueryThroughBackend(t *testing.T) {
	_, b := newFake()
	snap := device.Query(b)

	if len(snap.Outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %+v", snap.Outputs)
	}
	if snap.Outputs[1].Name != "USB Headset" {
		t.Errorf("expected USB Headset second, got %q", snap.Outputs[1].Name)
	}
	// The monitor is skipped and the headset mic has no description.
	if len(snap.Inputs) != 1 || snap.Inputs[0].ID != "alsa_input.pci-0000_00_1f.3.analog-stereo" {
		t.Fatalf("unexpected inputs: %+v", snap.Inputs)
	}
	if snap.CurrentOutput == nil || snap.CurrentOutput.Name != "USB Headset" {
		t.Errorf("unexpected current output: %+v", snap.CurrentOutput)
	}
	if snap.CurrentInput == nil || !snap.CurrentInput.Input {
		t.Errorf("unexpected current input: %+v", snap.CurrentInput)
	}
}

func TestSetDefaultDevice(t *testing.T) {
	f, b := newFake()
	if err := b.SetDefaultDevice(device.Output, "alsa_output.pci-0000_00_1f.3.analog-stereo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.defaults["sink"] != "alsa_output.pci-0000_00_1f.3.analog-stereo" {
		t.Errorf("expected default sink changed, got %q", f.defaults["sink"])
	}
	id, err := b.DefaultDevice(device.Output)
	if err != nil || id != "alsa_output.pci-0000_00_1f.3.analog-stereo" {
		t.Errorf("DefaultDevice = %q, %v", id, err)
	}
}

func TestSetDefaultDeviceError(t *testing.T) {
	f, b := newFake()
	f.setErr = errors.New("no such entity")
	if err := b.SetDefaultDevice(device.Input, "x"); err == nil {
		t.Error("expected error")
	}
}

func TestEmptyDefault(t *testing.T) {
	f, b := newFake()
	f.defaults["source"] = ""
	if _, err := b.DefaultDevice(device.Input); !errors.Is(err, device.ErrNoDefault) {
		t.Errorf("expected ErrNoDefault, got %v", err)
	}
}

func TestScanEvents(t *testing.T) {
	input := strings.Join([]string{
		"Event 'change' on sink-input #3",
		"Event 'new' on sink #70",
		"Event 'change' on server #-1",
		"Event 'new' on client #9",
	}, "\n")
	var kinds []device.EventKind
	if err := scanEvents(strings.NewReader(input), func(ev device.Event) {
		kinds = append(kinds, ev.Kind)
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []device.EventKind{device.DevicesChanged, device.DefaultOutputChanged, device.DefaultInputChanged}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}
