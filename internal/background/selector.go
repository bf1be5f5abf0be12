// Package background picks and sizes background visuals for segments.
package background

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mosamy007/Reels-Quran/internal/ffmpeg"
)

// ErrNoBackgrounds reports an empty asset pool. This is a fatal
// configuration error, never retried.
var ErrNoBackgrounds = errors.New("no background videos found")

// Prober supplies media metadata for pool assets.
type Prober interface {
	Probe(ctx context.Context, path string) (*ffmpeg.VideoInfo, error)
}

// Clip is a background visual prepared for one segment: the chosen
// asset, how often it has to repeat, and the exact duration it will be
// clipped to.
type Clip struct {
	Path           string
	SourceDuration time.Duration
	Loops          int // extra repeats beyond the first playthrough
	Target         time.Duration
}

// Selector chooses background clips uniformly at random from a pool
// directory. Selection is independent per segment; repeats across
// segments are expected.
type Selector struct {
	logger zerolog.Logger
	prober Prober
	dir    string
	prefix string
	suffix string
}

// NewSelector builds a selector over dir, keeping only files matching
// the prefix/suffix naming convention.
func NewSelector(logger zerolog.Logger, prober Prober, dir, prefix, suffix string) *Selector {
	return &Selector{
		logger: logger.With().Str("component", "background").Logger(),
		prober: prober,
		dir:    dir,
		prefix: prefix,
		suffix: suffix,
	}
}

// Pool returns the eligible asset paths.
func (s *Selector) Pool() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read backgrounds dir %s: %w", s.dir, err)
	}

	var pool []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, s.prefix) && strings.HasSuffix(name, s.suffix) {
			pool = append(pool, filepath.Join(s.dir, name))
		}
	}
	return pool, nil
}

// Check verifies upfront that the pool is usable, so a misconfigured
// install fails before any per-verse work starts.
func (s *Selector) Check() error {
	pool, err := s.Pool()
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		return fmt.Errorf("%w in %s (want %s*%s)", ErrNoBackgrounds, s.dir, s.prefix, s.suffix)
	}
	return nil
}

// Pick selects a random asset and sizes it to the target duration: a
// shorter asset is looped seamlessly from its start until it covers
// the target, then hard-clipped to exactly [0, target).
func (s *Selector) Pick(ctx context.Context, target time.Duration) (*Clip, error) {
	pool, err := s.Pool()
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w in %s (want %s*%s)", ErrNoBackgrounds, s.dir, s.prefix, s.suffix)
	}

	path := pool[rand.Intn(len(pool))]

	info, err := s.prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe background %s: %w", path, err)
	}

	clip := &Clip{
		Path:           path,
		SourceDuration: info.Duration,
		Loops:          LoopsFor(info.Duration, target),
		Target:         target,
	}

	s.logger.Debug().
		Str("asset", path).
		Dur("source", info.Duration).
		Dur("target", target).
		Int("loops", clip.Loops).
		Msg("background selected")

	return clip, nil
}

// LoopsFor returns how many extra repeats of a source are needed to
// cover the target duration.
func LoopsFor(source, target time.Duration) int {
	if source <= 0 || target <= source {
		return 0
	}
	loops := int(target / source)
	if target%source == 0 {
		loops--
	}
	return loops
}
