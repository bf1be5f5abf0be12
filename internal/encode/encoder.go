// Package encode writes the final concatenated artifact.
package encode

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mosamy007/Reels-Quran/internal/ffmpeg"
	"github.com/mosamy007/Reels-Quran/internal/segment"
)

// Encoder consumes an ordered list of composed segments and writes the
// final output file.
type Encoder interface {
	Encode(ctx context.Context, segments []*segment.Segment, outputPath string) error
}

// FFmpegEncoder concatenates segments with the ffmpeg concat demuxer
// and re-encodes to the configured output settings.
type FFmpegEncoder struct {
	logger   zerolog.Logger
	exec     *ffmpeg.Executor
	settings ffmpeg.EncodeSettings
}

// NewFFmpegEncoder builds the production encoder.
func NewFFmpegEncoder(logger zerolog.Logger, exec *ffmpeg.Executor, settings ffmpeg.EncodeSettings) *FFmpegEncoder {
	return &FFmpegEncoder{
		logger:   logger.With().Str("component", "encode").Logger(),
		exec:     exec,
		settings: settings,
	}
}

// Encode writes the segments, in the order given, into outputPath. On
// failure any partially written output is removed so a broken file is
// never reported as the artifact.
func (e *FFmpegEncoder) Encode(ctx context.Context, segments []*segment.Segment, outputPath string) error {
	if len(segments) == 0 {
		return fmt.Errorf("no segments to encode")
	}

	inputs := make([]string, len(segments))
	var total time.Duration
	for i, seg := range segments {
		inputs[i] = seg.Path
		total += seg.Duration
	}

	e.logger.Info().
		Int("segments", len(segments)).
		Dur("total", total).
		Str("output", outputPath).
		Msg("encoding final video")

	err := e.exec.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs:   inputs,
		Output:   outputPath,
		Settings: e.settings,
	})
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// OutputName builds the deterministic artifact filename:
// QuranReel_{SurahName}_{start}-{end}_{timestamp}.mp4.
func OutputName(surahName string, startAyah, endAyah int, at time.Time) string {
	return fmt.Sprintf("QuranReel_%s_%d-%d_%s.mp4",
		surahName, startAyah, endAyah, at.Format("20060102_150405"))
}
