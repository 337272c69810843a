package device

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestDeviceEqualIsByID(t *testing.T) {
	a := Device{ID: "1", Name: "Mic", Input: true}
	b := Device{ID: "1", Name: "Renamed", Output: true}
	c := Device{ID: "2", Name: "Mic", Input: true}

	if !a.Equal(b) {
		t.Error("expected devices with the same ID to be equal")
	}
	if a.Equal(c) {
		t.Error("expected devices with different IDs to differ")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"input", Input, false},
		{"IN", Input, false},
		{"output", Output, false},
		{" out ", Output, false},
		{"both", Input, true},
		{"", Input, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDirection(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}
}

func devs(ids ...string) []Device {
	out := make([]Device, len(ids))
	for i, id := range ids {
		out[i] = Device{ID: ID(id), Name: "dev " + id}
	}
	return out
}

func TestNext(t *testing.T) {
	list := devs("a", "b", "c")
	tests := []struct {
		name    string
		list    []Device
		current *Device
		want    ID
		wantOK  bool
	}{
		{"first to second", list, &list[0], "b", true},
		{"middle", list, &list[1], "c", true},
		{"wraps", list, &list[2], "a", true},
		{"absent current", list, &Device{ID: "zz"}, "a", true},
		{"nil current", list, nil, "a", true},
		{"identity not name", list, &Device{ID: "b", Name: "other"}, "c", true},
		{"single", devs("a"), nil, "", false},
		{"single with current", devs("a"), &Device{ID: "a"}, "", false},
		{"empty", nil, nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Next(tt.list, tt.current)
			if ok != tt.wantOK {
				t.Fatalf("Next ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.ID != tt.want {
				t.Errorf("Next = %s, want %s", got.ID, tt.want)
			}
		})
	}
}

func TestNextVisitsEveryDevice(t *testing.T) {
	for n := 2; n <= 6; n++ {
		list := make([]Device, n)
		for i := range list {
			list[i] = Device{ID: ID(fmt.Sprint(i))}
		}
		for i := range list {
			got, ok := Next(list, &list[i])
			if !ok {
				t.Fatalf("n=%d i=%d: expected ok", n, i)
			}
			if want := list[(i+1)%n]; !got.Equal(want) {
				t.Errorf("n=%d i=%d: got %s, want %s", n, i, got.ID, want.ID)
			}
		}
	}
}

func TestListDevicesFiltersAndKeepsOrder(t *testing.T) {
	hal := newFakeHAL().
		add("3", "Speakers", false, true).
		add("1", "Mic", true, false).
		add("2", "Headset", true, true).
		add("4", "", true, true) // unreadable name

	inputs := ListDevices(hal, Input)
	if len(inputs) != 2 || inputs[0].ID != "1" || inputs[1].ID != "2" {
		t.Fatalf("unexpected inputs: %+v", inputs)
	}
	outputs := ListDevices(hal, Output)
	if len(outputs) != 2 || outputs[0].ID != "3" || outputs[1].ID != "2" {
		t.Fatalf("unexpected outputs: %+v", outputs)
	}
	if !outputs[1].Input || !outputs[1].Output {
		t.Errorf("expected headset to be input and output capable: %+v", outputs[1])
	}
}

func TestUnnamedDeviceExcludedEverywhere(t *testing.T) {
	hal := newFakeHAL().add("9", "", true, true)
	hal.setDefault(Input, "9")

	snap := Query(hal)
	if len(snap.Inputs) != 0 || len(snap.Outputs) != 0 {
		t.Errorf("expected unnamed device excluded, got %+v", snap)
	}
	if snap.CurrentInput != nil {
		t.Error("expected no current input for unnamed default")
	}
}

func TestListDevicesEnumerationFailure(t *testing.T) {
	hal := newFakeHAL().add("1", "Mic", true, false)
	hal.idsErr = errors.New("boom")
	if got := ListDevices(hal, Input); len(got) != 0 {
		t.Errorf("expected empty list, got %+v", got)
	}
}

func TestCurrentDeviceFailure(t *testing.T) {
	hal := newFakeHAL().add("1", "Mic", true, false)
	hal.defErr = errors.New("boom")
	if _, ok := CurrentDevice(hal, Input); ok {
		t.Error("expected no current device on query failure")
	}
}

func TestQuerySeqIncreases(t *testing.T) {
	hal := newFakeHAL()
	a := Query(hal)
	b := Query(hal)
	if b.Seq <= a.Seq {
		t.Errorf("expected increasing Seq, got %d then %d", a.Seq, b.Seq)
	}
}

func TestRegistryReplaceIgnoresStale(t *testing.T) {
	reg := NewRegistry()
	newer := Snapshot{Seq: 5, Inputs: devs("new")}
	older := Snapshot{Seq: 4, Inputs: devs("old")}

	if !reg.Replace(newer) {
		t.Fatal("expected newer snapshot applied")
	}
	if reg.Replace(older) {
		t.Error("expected older snapshot ignored")
	}
	if got := reg.Snapshot().Inputs[0].ID; got != "new" {
		t.Errorf("expected newer inputs kept, got %s", got)
	}
}

func TestRegistrySnapshotIsCopy(t *testing.T) {
	reg := NewRegistry()
	in := devs("a")
	reg.Replace(Snapshot{Seq: 1, Inputs: in, CurrentInput: &in[0]})

	snap := reg.Snapshot()
	snap.Inputs[0].Name = "mutated"
	snap.CurrentInput.Name = "mutated"

	again := reg.Snapshot()
	if again.Inputs[0].Name == "mutated" || again.CurrentInput.Name == "mutated" {
		t.Error("expected registry state to be isolated from callers")
	}
}

// TestRegistryReplaceIsAtomic writes snapshots whose four fields all carry
// the same tag and checks readers never see mixed tags.
func TestRegistryReplaceIsAtomic(t *testing.T) {
	reg := NewRegistry()
	tagged := func(n int) Snapshot {
		tag := ID(fmt.Sprint(n))
		d := Device{ID: tag}
		return Snapshot{
			Seq:           uint64(n),
			Inputs:        []Device{d},
			Outputs:       []Device{d},
			CurrentInput:  &Device{ID: tag},
			CurrentOutput: &Device{ID: tag},
		}
	}
	reg.Replace(tagged(1))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 1)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				s := reg.Snapshot()
				tag := s.Inputs[0].ID
				if s.Outputs[0].ID != tag || s.CurrentInput.ID != tag || s.CurrentOutput.ID != tag {
					select {
					case errs <- fmt.Sprintf("mixed snapshot: %+v", s):
					default:
					}
					return
				}
			}
		}()
	}
	for n := 2; n < 2000; n++ {
		reg.Replace(tagged(n))
	}
	close(stop)
	wg.Wait()
	select {
	case msg := <-errs:
		t.Fatal(msg)
	default:
	}
}

func TestSnapshotSame(t *testing.T) {
	a := Snapshot{Seq: 1, Inputs: devs("a", "b")}
	b := Snapshot{Seq: 2, Inputs: devs("a", "b")}
	if !a.Same(b) {
		t.Error("expected snapshots differing only in Seq to be the same")
	}
	cur := Device{ID: "a"}
	b.CurrentInput = &cur
	if a.Same(b) {
		t.Error("expected different current device to differ")
	}
}
