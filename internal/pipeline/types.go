package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mosamy007/Reels-Quran/internal/audio"
	"github.com/mosamy007/Reels-Quran/internal/background"
	"github.com/mosamy007/Reels-Quran/internal/layout"
	"github.com/mosamy007/Reels-Quran/internal/quran"
	"github.com/mosamy007/Reels-Quran/internal/segment"
)

// ErrCancelled is the terminal state of a run stopped by the user. It
// is not a fault; callers must present it distinctly from real errors.
var ErrCancelled = errors.New("cancelled")

// ErrRunActive rejects a generation request while another run is
// active. The active run's state is left untouched.
var ErrRunActive = errors.New("a generation run is already active")

// Request describes one generation run: a reciter, a surah, and an
// inclusive verse range.
type Request struct {
	Reciter   string // Arabic display name or raw everyayah id
	Surah     int
	StartAyah int
	// EndAyah is optional; zero defaults to StartAyah+9, clamped to the
	// surah's verse count.
	EndAyah int
}

// normalize validates the request and resolves the effective verse
// range and reciter identifier.
func (r Request) normalize() (reciterID string, start, end int, err error) {
	reciterID, err = quran.ReciterID(r.Reciter)
	if err != nil {
		return "", 0, 0, err
	}

	maxAyah, err := quran.VerseCount(r.Surah)
	if err != nil {
		return "", 0, 0, err
	}

	start = r.StartAyah
	if start < 1 || start > maxAyah {
		return "", 0, 0, fmt.Errorf("start ayah %d out of range [1, %d]", start, maxAyah)
	}

	end = r.EndAyah
	if end == 0 {
		end = start + 9
	}
	if end > maxAyah {
		end = maxAyah
	}
	if end < start {
		end = start
	}
	return reciterID, start, end, nil
}

// Result is the tagged outcome of one run: success with an output
// path, or failure with the causing error. Cancellation surfaces as
// ErrCancelled.
type Result struct {
	Success    bool
	OutputPath string
	Err        error
}

// ProgressSink receives percent/status updates, monotonically
// non-decreasing in percent within one run.
type ProgressSink interface {
	OnProgress(percent int, status string)
}

// LogSink receives the append-only ordered run log, one call per
// notable pipeline event.
type LogSink interface {
	OnLog(message string)
}

// ProgressSinkFunc adapts a function to a ProgressSink.
type ProgressSinkFunc func(percent int, status string)

func (f ProgressSinkFunc) OnProgress(percent int, status string) { f(percent, status) }

// LogSinkFunc adapts a function to a LogSink.
type LogSinkFunc func(message string)

func (f LogSinkFunc) OnLog(message string) { f(message) }

// AudioAnalyzer decodes fetched audio and locates its non-silent
// range, returning the range and the stream's sample rate.
type AudioAnalyzer interface {
	Analyze(data []byte) (audio.TrimRange, int, error)
}

// BackgroundPicker supplies duration-matched background clips.
type BackgroundPicker interface {
	Check() error
	Pick(ctx context.Context, target time.Duration) (*background.Clip, error)
}

// OverlayRenderer rasterizes a caption to a transparent PNG.
type OverlayRenderer interface {
	RenderToFile(caption, path string) (layout.Plan, error)
}

// SegmentBuilder composes one verse's segment file.
type SegmentBuilder interface {
	Build(ctx context.Context, req segment.Request) (*segment.Segment, error)
}
