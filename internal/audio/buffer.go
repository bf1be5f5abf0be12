package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

// Buffer holds decoded PCM audio: interleaved 16-bit samples plus the
// stream parameters needed to interpret them.
type Buffer struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Decode decodes MP3 bytes into a PCM buffer. go-mp3 always emits
// 16-bit stereo at the stream's sample rate.
func Decode(data []byte) (*Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3 decode: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 read: %w", err)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}, nil
}

// Frames returns the number of per-channel sample frames.
func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// DBFS returns the RMS loudness of the whole buffer relative to
// digital full scale. A silent buffer reports -Inf.
func (b *Buffer) DBFS() float64 {
	return dbfs(b.Samples)
}

// frameRange returns the dBFS loudness of frames [from, to).
func (b *Buffer) frameRange(from, to int) float64 {
	return dbfs(b.Samples[from*b.Channels : to*b.Channels])
}

func dbfs(samples []int16) float64 {
	if len(samples) == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms/32768)
}
