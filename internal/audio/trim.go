package audio

import (
	"errors"
	"math"
	"time"
)

// ErrEmptyAudio reports that silence analysis consumed the entire
// clip, leaving no usable audio.
var ErrEmptyAudio = errors.New("audio is entirely silent")

// TrimRange is the frame interval of a buffer considered non-silent.
// The source buffer is never modified; the range is applied when the
// audio is consumed.
type TrimRange struct {
	Start int // first non-silent frame
	End   int // one past the last non-silent frame
}

// Frames returns the length of the range.
func (r TrimRange) Frames() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no audio.
func (r TrimRange) Empty() bool {
	return r.End <= r.Start
}

// StartOffset returns the range start as a playback offset.
func (r TrimRange) StartOffset(sampleRate int) time.Duration {
	if sampleRate == 0 {
		return 0
	}
	return time.Duration(r.Start) * time.Second / time.Duration(sampleRate)
}

// Duration returns the playback length of the range.
func (r TrimRange) Duration(sampleRate int) time.Duration {
	if sampleRate == 0 || r.Empty() {
		return 0
	}
	return time.Duration(r.Frames()) * time.Second / time.Duration(sampleRate)
}

// Trimmer locates leading and trailing silence in a decoded buffer.
type Trimmer struct {
	// ThresholdOffsetDB is subtracted from the clip's overall loudness
	// to form the silence threshold, so quiet and loud recitations trim
	// consistently.
	ThresholdOffsetDB float64
	// Chunk is the analysis window size.
	Chunk time.Duration
}

// NewTrimmer returns a trimmer with the defaults used by the pipeline:
// threshold 16 dB below overall loudness, 10 ms analysis chunks.
func NewTrimmer() Trimmer {
	return Trimmer{ThresholdOffsetDB: 16, Chunk: 10 * time.Millisecond}
}

// Trim scans the buffer in fixed-size chunks from both ends and
// returns the non-silent interval. A buffer entirely below the
// threshold yields a zero-length range with Start == Frames(); the
// caller must treat that as no usable audio.
func (t Trimmer) Trim(buf *Buffer) TrimRange {
	frames := buf.Frames()
	if frames == 0 {
		return TrimRange{}
	}

	chunk := int(time.Duration(buf.SampleRate) * t.Chunk / time.Second)
	if chunk <= 0 {
		chunk = 1
	}

	overall := buf.DBFS()
	if math.IsInf(overall, -1) {
		// Digital silence: no chunk can clear any threshold.
		return TrimRange{Start: frames, End: frames}
	}
	threshold := overall - t.ThresholdOffsetDB

	start := t.scanLeading(buf, frames, chunk, threshold)
	end := t.scanTrailing(buf, frames, chunk, threshold)

	if end < start {
		end = start
	}
	return TrimRange{Start: start, End: end}
}

// scanLeading advances chunk by chunk while loudness stays below the
// threshold and returns the first frame at or above it.
func (t Trimmer) scanLeading(buf *Buffer, frames, chunk int, threshold float64) int {
	pos := 0
	for pos < frames {
		to := pos + chunk
		if to > frames {
			to = frames
		}
		if buf.frameRange(pos, to) >= threshold {
			return pos
		}
		pos = to
	}
	return frames
}

// scanTrailing is the symmetric scan over reversed chunk order.
func (t Trimmer) scanTrailing(buf *Buffer, frames, chunk int, threshold float64) int {
	pos := frames
	for pos > 0 {
		from := pos - chunk
		if from < 0 {
			from = 0
		}
		if buf.frameRange(from, pos) >= threshold {
			return pos
		}
		pos = from
	}
	return 0
}

// Slice materializes the trimmed interval as a new buffer. Analysis
// helpers and tests use it; the pipeline itself applies the range as
// seek/duration arguments when exporting.
func (b *Buffer) Slice(r TrimRange) *Buffer {
	if r.Empty() {
		return &Buffer{SampleRate: b.SampleRate, Channels: b.Channels}
	}
	return &Buffer{
		Samples:    b.Samples[r.Start*b.Channels : r.End*b.Channels],
		SampleRate: b.SampleRate,
		Channels:   b.Channels,
	}
}
