// Package segment composes one verse's background, caption overlay,
// and trimmed audio into a single timed clip.
package segment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mosamy007/Reels-Quran/internal/audio"
	"github.com/mosamy007/Reels-Quran/internal/background"
	"github.com/mosamy007/Reels-Quran/internal/ffmpeg"
	"github.com/mosamy007/Reels-Quran/pkg/util"
)

// Segment is one fully composed unit of output. Duration is
// authoritative and equals the trimmed audio's length; background and
// overlay are clipped to match it exactly.
type Segment struct {
	Index    int
	Path     string
	Duration time.Duration
}

// Request carries everything needed to compose one segment.
type Request struct {
	Index       int
	AudioPath   string          // source audio on disk
	Trim        audio.TrimRange // applied at export, source untouched
	SampleRate  int
	Background  *background.Clip
	OverlayPath string
	OutputPath  string
}

// Builder composes segments with a single ffmpeg invocation each. It
// holds no cross-segment state; builds are independent per verse.
type Builder struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
	fade   time.Duration
}

// NewBuilder returns a builder applying the given audio fade at both
// clip edges. A negative fade falls back to the 200ms default.
func NewBuilder(logger zerolog.Logger, exec *ffmpeg.Executor, fade time.Duration) *Builder {
	if fade < 0 {
		fade = 200 * time.Millisecond
	}
	return &Builder{
		logger: logger.With().Str("component", "segment").Logger(),
		exec:   exec,
		fade:   fade,
	}
}

// Build composes the segment file for one verse.
func (b *Builder) Build(ctx context.Context, req Request) (*Segment, error) {
	if req.Trim.Empty() {
		return nil, fmt.Errorf("segment %d: %w", req.Index, audio.ErrEmptyAudio)
	}
	if req.Background == nil {
		return nil, fmt.Errorf("segment %d: no background clip", req.Index)
	}

	duration := req.Trim.Duration(req.SampleRate)

	b.logger.Info().
		Int("index", req.Index).
		Dur("duration", duration).
		Str("background", req.Background.Path).
		Msg("building segment")

	runOpts := ffmpeg.RunOptions{
		Args: b.args(req, duration),
		LogHandler: func(line string) {
			b.logger.Debug().Str("ffmpeg", line).Msg("segment compose")
		},
	}

	if err := b.exec.Run(ctx, runOpts); err != nil {
		return nil, fmt.Errorf("compose segment %d: %w", req.Index, err)
	}

	return &Segment{
		Index:    req.Index,
		Path:     req.OutputPath,
		Duration: duration,
	}, nil
}

// args assembles the ffmpeg invocation: looped background clipped to
// the audio duration, the overlay composited centered for the full
// duration, and the trim range applied to the audio with a fade at
// each edge.
func (b *Builder) args(req Request, duration time.Duration) []string {
	videoChain := ffmpeg.NewFilterBuilder().
		TrimDuration(duration).
		Build()
	audioChain := ffmpeg.NewFilterBuilder().
		ATrim(duration).
		AFadeIn(b.fade).
		AFadeOut(duration, b.fade).
		Build()

	filterComplex := fmt.Sprintf("[0:v]%s[bg];[bg][1:v]%s[v];[2:a]%s[a]",
		videoChain, ffmpeg.OverlayCentered(), audioChain)

	args := []string{}
	if req.Background.Loops > 0 {
		args = append(args, "-stream_loop", fmt.Sprintf("%d", req.Background.Loops))
	}
	args = append(args,
		"-i", req.Background.Path,
		"-i", req.OverlayPath,
		"-ss", util.FormatDuration(req.Trim.StartOffset(req.SampleRate)),
		"-i", req.AudioPath,
		"-filter_complex", filterComplex,
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", ffmpeg.DefaultVideoCodec,
		"-crf", fmt.Sprintf("%d", ffmpeg.DefaultCRF),
		"-preset", ffmpeg.DefaultPreset,
		"-c:a", ffmpeg.DefaultAudioCodec,
		req.OutputPath,
	)
	return args
}
