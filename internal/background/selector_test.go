package background

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosamy007/Reels-Quran/internal/ffmpeg"
)

type stubProber struct {
	duration time.Duration
}

func (p *stubProber) Probe(_ context.Context, path string) (*ffmpeg.VideoInfo, error) {
	return &ffmpeg.VideoInfo{FilePath: path, Duration: p.duration}, nil
}

func writePool(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	return dir
}

func TestPoolFiltering(t *testing.T) {
	dir := writePool(t,
		"nature_part1.mp4",
		"nature_part2.mp4",
		"nature_part3.mov", // wrong suffix
		"city_part1.mp4",   // wrong prefix
		"notes.txt",
	)

	s := NewSelector(zerolog.Nop(), &stubProber{}, dir, "nature_part", ".mp4")

	pool, err := s.Pool()
	require.NoError(t, err)
	assert.Len(t, pool, 2)
}

func TestCheckEmptyPool(t *testing.T) {
	dir := writePool(t, "unrelated.txt")

	s := NewSelector(zerolog.Nop(), &stubProber{}, dir, "nature_part", ".mp4")

	err := s.Check()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoBackgrounds))
}

func TestPickEmptyPool(t *testing.T) {
	s := NewSelector(zerolog.Nop(), &stubProber{}, t.TempDir(), "nature_part", ".mp4")

	_, err := s.Pick(context.Background(), time.Second)
	assert.True(t, errors.Is(err, ErrNoBackgrounds))
}

func TestPickLoopsShortAsset(t *testing.T) {
	dir := writePool(t, "nature_part1.mp4")

	s := NewSelector(zerolog.Nop(), &stubProber{duration: 2 * time.Second}, dir, "nature_part", ".mp4")

	clip, err := s.Pick(context.Background(), 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, clip.Loops)
	assert.Equal(t, 5*time.Second, clip.Target)
}

func TestLoopsFor(t *testing.T) {
	cases := []struct {
		source, target time.Duration
		want           int
	}{
		{10 * time.Second, 4 * time.Second, 0},  // long enough already
		{10 * time.Second, 10 * time.Second, 0}, // exact fit
		{4 * time.Second, 5 * time.Second, 1},
		{2 * time.Second, 6 * time.Second, 2}, // exact multiple
		{2 * time.Second, 7 * time.Second, 3},
		{0, 5 * time.Second, 0}, // zero-length source cannot loop
	}

	for _, tc := range cases {
		if got := LoopsFor(tc.source, tc.target); got != tc.want {
			t.Errorf("LoopsFor(%v, %v) = %d, want %d", tc.source, tc.target, got, tc.want)
		}
	}
}
