package chime

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
)

func TestNewWithBuiltInTone(t *testing.T) {
	p, err := New("", true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.data) < 44 {
		t.Errorf("expected encoded tone, got %d bytes", len(p.data))
	}
	if !p.enabled {
		t.Error("expected enabled")
	}
}

func TestNewDisabled(t *testing.T) {
	p, err := New("/nonexistent/chime.wav", false, nil)
	if err != nil {
		t.Fatalf("disabled player should not read the file: %v", err)
	}
	// Play should be a no-op when disabled
	p.Play()
}

func TestNilPlayerPlay(t *testing.T) {
	var p *Player
	p.Play()
}

func TestNewWithCustomPath(t *testing.T) {
	data, err := EncodeWAV(Tone(8000, 50*time.Millisecond, 440, 440), 8000)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "ding.wav")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := New(path, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(p.data, data) {
		t.Error("expected custom chime data")
	}
}

func TestNewWithBadPath(t *testing.T) {
	if _, err := New("/nonexistent/path/chime.wav", true, nil); err == nil {
		t.Error("expected error for nonexistent chime path")
	}
}

func TestToneLengthAndEnvelope(t *testing.T) {
	samples := Tone(44100, 100*time.Millisecond, 660, 880)
	if len(samples) != 4410 {
		t.Fatalf("expected 4410 samples, got %d", len(samples))
	}
	if samples[0] != 0 {
		t.Errorf("expected tone to start at silence, got %d", samples[0])
	}
	peak := int16(0)
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	if peak < 6000 {
		t.Errorf("expected audible peak, got %d", peak)
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	data, err := EncodeWAV(Tone(16000, 50*time.Millisecond, 440, 440), 16000)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		t.Fatal("expected a valid WAV file")
	}
	if dec.SampleRate != 16000 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Errorf("unexpected format: rate=%d chans=%d depth=%d", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
}
