package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://everyayah.com/data", cfg.Fetch.AudioBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout.Std())
	assert.Equal(t, 16.0, cfg.Silence.ThresholdOffsetDB)
	assert.Equal(t, 10*time.Millisecond, cfg.Silence.Chunk.Std())
	assert.Equal(t, 900, cfg.Layout.MaxWidth)
	assert.Equal(t, "nature_part", cfg.Segment.BackgroundPrefix)
	assert.Equal(t, 200*time.Millisecond, cfg.Segment.AudioFade.Std())
	assert.Equal(t, 24.0, cfg.Encode.FPS)
	assert.Equal(t, []string{"-movflags", "+faststart"}, cfg.Encode.ContainerFlags)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
work_dir: /tmp/reels-work
fetch:
  timeout: 5s
silence:
  chunk: 20ms
segment:
  audio_fade: 500ms
encode:
  fps: 30
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reels-work", cfg.WorkDir)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout.Std())
	assert.Equal(t, 20*time.Millisecond, cfg.Silence.Chunk.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Segment.AudioFade.Std())
	assert.Equal(t, 30.0, cfg.Encode.FPS)

	// Untouched keys keep their defaults.
	assert.Equal(t, "libx264", cfg.Encode.VideoCodec)
	assert.Equal(t, "./outputs/video", cfg.OutputDir)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg", cfg.FFmpeg.BinaryPath)
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  timeout: fast\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Fetch.Timeout = 0 }},
		{"zero chunk", func(c *Config) { c.Silence.Chunk = 0 }},
		{"zero max width", func(c *Config) { c.Layout.MaxWidth = 0 }},
		{"negative fade", func(c *Config) { c.Segment.AudioFade = Duration(-time.Second) }},
		{"zero fps", func(c *Config) { c.Encode.FPS = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := defaultConfig()
	cfg.Fetch.Timeout = Duration(12 * time.Second)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFontPath(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, filepath.Join("./fonts", "DUBAI-BOLD.TTF"), cfg.FontPath())
}
