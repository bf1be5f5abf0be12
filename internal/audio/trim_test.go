package audio

import (
	"math"
	"testing"
	"time"
)

const testRate = 8000

// buildBuffer concatenates sections of constant amplitude, each
// lasting the given number of 10ms chunks.
func buildBuffer(t *testing.T, sections ...struct {
	chunks    int
	amplitude int16
}) *Buffer {
	t.Helper()
	chunkFrames := testRate / 100 // 10ms
	var samples []int16
	for _, sec := range sections {
		for i := 0; i < sec.chunks*chunkFrames; i++ {
			samples = append(samples, sec.amplitude)
		}
	}
	return &Buffer{Samples: samples, SampleRate: testRate, Channels: 1}
}

func section(chunks int, amplitude int16) struct {
	chunks    int
	amplitude int16
} {
	return struct {
		chunks    int
		amplitude int16
	}{chunks, amplitude}
}

func TestTrimNoSilence(t *testing.T) {
	buf := buildBuffer(t, section(20, 8000))

	r := NewTrimmer().Trim(buf)

	if r.Start != 0 || r.End != buf.Frames() {
		t.Errorf("uniform loud buffer should not trim, got [%d, %d) of %d", r.Start, r.End, buf.Frames())
	}
}

func TestTrimLeadingAndTrailing(t *testing.T) {
	chunkFrames := testRate / 100
	buf := buildBuffer(t,
		section(10, 2), // leading near-silence
		section(30, 8000),
		section(5, 2), // trailing near-silence
	)

	r := NewTrimmer().Trim(buf)

	if r.Start != 10*chunkFrames {
		t.Errorf("start = %d frames, want %d", r.Start, 10*chunkFrames)
	}
	if r.End != 40*chunkFrames {
		t.Errorf("end = %d frames, want %d", r.End, 40*chunkFrames)
	}
	if r.Duration(testRate) != 300*time.Millisecond {
		t.Errorf("trimmed duration = %v, want 300ms", r.Duration(testRate))
	}
}

func TestTrimDigitalSilence(t *testing.T) {
	buf := buildBuffer(t, section(20, 0))

	r := NewTrimmer().Trim(buf)

	if r.Start != buf.Frames() {
		t.Errorf("silent buffer should yield start == length, got %d of %d", r.Start, buf.Frames())
	}
	if !r.Empty() {
		t.Error("silent buffer should yield an empty range")
	}
	if r.Frames() != 0 {
		t.Errorf("empty range has %d frames", r.Frames())
	}
}

func TestTrimIdempotent(t *testing.T) {
	buf := buildBuffer(t,
		section(8, 1),
		section(25, 10000),
		section(8, 1),
	)

	trimmer := NewTrimmer()
	first := trimmer.Trim(buf)
	trimmed := buf.Slice(first)
	second := trimmer.Trim(trimmed)

	if second.Start != 0 || second.End != trimmed.Frames() {
		t.Errorf("re-trim of trimmed buffer = [%d, %d), want [0, %d)", second.Start, second.End, trimmed.Frames())
	}
}

func TestTrimNeverNegative(t *testing.T) {
	bufs := []*Buffer{
		{SampleRate: testRate, Channels: 1},
		buildBuffer(t, section(1, 5000)),
		buildBuffer(t, section(3, 0), section(1, 5000)),
	}

	for i, buf := range bufs {
		r := NewTrimmer().Trim(buf)
		if r.Start < 0 || r.End < r.Start || r.End > buf.Frames() {
			t.Errorf("case %d: invalid range [%d, %d) for %d frames", i, r.Start, r.End, buf.Frames())
		}
	}
}

func TestDBFS(t *testing.T) {
	full := &Buffer{Samples: []int16{32767, -32767, 32767, -32767}, SampleRate: testRate, Channels: 1}
	if got := full.DBFS(); math.Abs(got) > 0.01 {
		t.Errorf("full-scale square wave dBFS = %f, want ~0", got)
	}

	silent := &Buffer{Samples: make([]int16, 100), SampleRate: testRate, Channels: 1}
	if got := silent.DBFS(); !math.IsInf(got, -1) {
		t.Errorf("silent buffer dBFS = %f, want -Inf", got)
	}
}

func TestBufferDuration(t *testing.T) {
	buf := buildBuffer(t, section(100, 1000)) // 1s
	if buf.Duration() != time.Second {
		t.Errorf("duration = %v, want 1s", buf.Duration())
	}
}

func TestStartOffset(t *testing.T) {
	r := TrimRange{Start: testRate / 2, End: testRate}
	if r.StartOffset(testRate) != 500*time.Millisecond {
		t.Errorf("start offset = %v, want 500ms", r.StartOffset(testRate))
	}
}
