package chime

import (
	"fmt"
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	toneSampleRate = 44100
	toneDuration   = 120 * time.Millisecond
)

// Tone synthesizes a sine sweep from startFreq to endFreq with a half-sine
// envelope so it starts and ends at silence.
func Tone(sampleRate int, d time.Duration, startFreq, endFreq float64) []int16 {
	n := int(float64(sampleRate) * d.Seconds())
	samples := make([]int16, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := startFreq + (endFreq-startFreq)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)
		samples[i] = int16(math.Sin(phase) * math.Sin(math.Pi*progress) * 12000)
	}
	return samples
}

// writeSeeker is an in-memory io.WriteSeeker for WAV encoding.
type writeSeeker struct {
	buf []byte
	pos int
}

func (ws *writeSeeker) Write(p []byte) (int, error) {
	end := ws.pos + len(p)
	if end > len(ws.buf) {
		ws.buf = append(ws.buf, make([]byte, end-len(ws.buf))...)
	}
	copy(ws.buf[ws.pos:], p)
	ws.pos = end
	return len(p), nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case 0: // io.SeekStart
		newPos = int(offset)
	case 1: // io.SeekCurrent
		newPos = ws.pos + int(offset)
	case 2: // io.SeekEnd
		newPos = len(ws.buf) + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if newPos < 0 || newPos > len(ws.buf) {
		return 0, fmt.Errorf("seek position %d out of bounds [0, %d]", newPos, len(ws.buf))
	}
	ws.pos = newPos
	return int64(ws.pos), nil
}

// EncodeWAV encodes mono 16-bit PCM samples to WAV in memory.
func EncodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	ws := &writeSeeker{}

	intBuf := &audio.IntBuffer{
		Data:           make([]int, len(samples)),
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		intBuf.Data[i] = int(s)
	}

	enc := wav.NewEncoder(ws, sampleRate, 16, 1, 1)
	if err := enc.Write(intBuf); err != nil {
		return nil, fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close wav encoder: %w", err)
	}
	return ws.buf, nil
}
