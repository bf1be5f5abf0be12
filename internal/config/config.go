package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Duration wraps time.Duration so YAML values like "30s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all application configuration
type Config struct {
	// Directory layout. OutputDir holds finished reels and is never
	// cleared; WorkDir holds per-run intermediate audio and is wiped at
	// the start of every run.
	OutputDir      string `yaml:"output_dir"`
	WorkDir        string `yaml:"work_dir"`
	FontDir        string `yaml:"font_dir"`
	BackgroundsDir string `yaml:"backgrounds_dir"`
	LogDir         string `yaml:"log_dir"`

	Fetch   FetchConfig   `yaml:"fetch"`
	Silence SilenceConfig `yaml:"silence"`
	Layout  LayoutConfig  `yaml:"layout"`
	Segment SegmentConfig `yaml:"segment"`
	Encode  EncodeConfig  `yaml:"encode"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
}

// FetchConfig configures the audio/text HTTP fetchers.
type FetchConfig struct {
	AudioBaseURL string        `yaml:"audio_base_url"`
	TextBaseURL  string        `yaml:"text_base_url"`
	Timeout      Duration `yaml:"timeout"`
}

// SilenceConfig configures the trim analysis.
type SilenceConfig struct {
	// ThresholdOffsetDB is subtracted from the clip's overall loudness
	// to form the per-clip silence threshold.
	ThresholdOffsetDB float64       `yaml:"threshold_offset_db"`
	Chunk             Duration `yaml:"chunk"`
}

// LayoutConfig configures the caption overlay rendering.
type LayoutConfig struct {
	FontFile string `yaml:"font_file"`
	MaxWidth int    `yaml:"max_width"`
	Padding  int    `yaml:"padding"`
}

// SegmentConfig configures per-segment composition.
type SegmentConfig struct {
	BackgroundPrefix string        `yaml:"background_prefix"`
	BackgroundSuffix string        `yaml:"background_suffix"`
	AudioFade        Duration `yaml:"audio_fade"`
}

// EncodeConfig configures the final encode.
type EncodeConfig struct {
	FPS            float64  `yaml:"fps"`
	VideoCodec     string   `yaml:"video_codec"`
	AudioCodec     string   `yaml:"audio_codec"`
	AudioBitrate   string   `yaml:"audio_bitrate"`
	ContainerFlags []string `yaml:"container_flags"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Threads    int    `yaml:"threads"`
	Preset     string `yaml:"preset"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", c.Fetch.Timeout)
	}
	if c.Silence.Chunk <= 0 {
		return fmt.Errorf("silence chunk must be positive, got %v", c.Silence.Chunk)
	}
	if c.Layout.MaxWidth <= 0 {
		return fmt.Errorf("layout max width must be positive, got %d", c.Layout.MaxWidth)
	}
	if c.Segment.AudioFade < 0 {
		return fmt.Errorf("audio fade cannot be negative, got %v", c.Segment.AudioFade)
	}
	if c.Encode.FPS <= 0 {
		return fmt.Errorf("encode fps must be positive, got %v", c.Encode.FPS)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		OutputDir:      "./outputs/video",
		WorkDir:        "./outputs/audio",
		FontDir:        "./fonts",
		BackgroundsDir: "./vision",
		LogDir:         ".",
		Fetch: FetchConfig{
			AudioBaseURL: "https://everyayah.com/data",
			TextBaseURL:  "https://api.alquran.cloud/v1",
			Timeout:      Duration(30 * time.Second),
		},
		Silence: SilenceConfig{
			ThresholdOffsetDB: 16,
			Chunk:             Duration(10 * time.Millisecond),
		},
		Layout: LayoutConfig{
			FontFile: "DUBAI-BOLD.TTF",
			MaxWidth: 900,
			Padding:  40,
		},
		Segment: SegmentConfig{
			BackgroundPrefix: "nature_part",
			BackgroundSuffix: ".mp4",
			AudioFade:        Duration(200 * time.Millisecond),
		},
		Encode: EncodeConfig{
			FPS:            24,
			VideoCodec:     "libx264",
			AudioCodec:     "aac",
			AudioBitrate:   "192k",
			ContainerFlags: []string{"-movflags", "+faststart"},
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
			Threads:    0,
			Preset:     "medium",
		},
	}
}

// FontPath returns the absolute path of the configured caption font.
func (c *Config) FontPath() string {
	return filepath.Join(c.FontDir, c.Layout.FontFile)
}

func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		filepath.Join(os.Getenv("HOME"), ".reelsquran", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
