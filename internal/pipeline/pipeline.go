// Package pipeline orchestrates the per-verse segment assembly and
// final concatenation for one generation run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mosamy007/Reels-Quran/internal/audio"
	"github.com/mosamy007/Reels-Quran/internal/config"
	"github.com/mosamy007/Reels-Quran/internal/encode"
	"github.com/mosamy007/Reels-Quran/internal/fetch"
	"github.com/mosamy007/Reels-Quran/internal/quran"
	"github.com/mosamy007/Reels-Quran/internal/segment"
	"github.com/mosamy007/Reels-Quran/pkg/util"
)

// Progress bands: 0-5 cleanup, 5-10 preparation, 10-80 per-verse work,
// 80-100 concatenation and final write.
const (
	progressCleanup = 5
	progressPrepare = 10
	progressConcat  = 85
	progressWrite   = 90
	progressDone    = 100
	verseBandWidth  = 70.0
)

// Per-verse sub-checkpoints within each verse's progress share.
const (
	checkpointFetch = 0.3
	checkpointText  = 0.5
	checkpointBuilt = 0.8
)

// Components are the pipeline's collaborators. Analyzer may be nil, in
// which case the in-process MP3 decoder and silence trimmer are used.
type Components struct {
	Audio       fetch.AudioFetcher
	Text        fetch.TextFetcher
	Analyzer    AudioAnalyzer
	Overlay     OverlayRenderer
	Backgrounds BackgroundPicker
	Builder     SegmentBuilder
	Encoder     encode.Encoder
}

// Controller drives the verse loop, owns the run state, and enforces
// ordering, cancellation, and progress-reporting contracts. One run is
// active at a time, process-wide.
type Controller struct {
	logger   zerolog.Logger
	cfg      *config.Config
	comps    Components
	progress ProgressSink
	logs     LogSink

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	state stateStore
}

// New creates a controller. Nil sinks are replaced with no-ops.
func New(logger zerolog.Logger, cfg *config.Config, comps Components, progress ProgressSink, logs LogSink) *Controller {
	if progress == nil {
		progress = ProgressSinkFunc(func(int, string) {})
	}
	if logs == nil {
		logs = LogSinkFunc(func(string) {})
	}
	if comps.Analyzer == nil {
		comps.Analyzer = audio.Analyzer{Trimmer: audio.Trimmer{
			ThresholdOffsetDB: cfg.Silence.ThresholdOffsetDB,
			Chunk:             cfg.Silence.Chunk.Std(),
		}}
	}
	return &Controller{
		logger:   logger.With().Str("component", "pipeline").Logger(),
		cfg:      cfg,
		comps:    comps,
		progress: progress,
		logs:     logs,
	}
}

// State returns a snapshot copy of the current run state. Safe to call
// from any goroutine.
func (c *Controller) State() State {
	return c.state.snapshot()
}

// Cancel requests cooperative cancellation of the active run. The
// current verse is abandoned or finished; no further verse is started
// and no output is written.
func (c *Controller) Cancel() {
	c.state.requestCancel()
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
}

// Start launches a run on its own goroutine and returns a channel
// delivering the single Result. A request while a run is active is
// rejected with ErrRunActive without touching the active run's state.
func (c *Controller) Start(ctx context.Context, req Request) (<-chan Result, error) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil, ErrRunActive
	}
	c.running = true
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	ch := make(chan Result, 1)
	go func() {
		ch <- c.execute(runCtx, req)
	}()
	return ch, nil
}

// Run executes a full run synchronously.
func (c *Controller) Run(ctx context.Context, req Request) Result {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return Result{Success: false, Err: ErrRunActive}
	}
	c.running = true
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	return c.execute(runCtx, req)
}

// execute is the pipeline worker body. It is the only mutator of the
// run state.
func (c *Controller) execute(ctx context.Context, req Request) (res Result) {
	c.state.reset()

	var tempFiles []string
	defer func() {
		// Scoped release on every exit path: overlays and intermediate
		// audio never outlive the run.
		util.CleanupFiles(tempFiles...)

		c.state.finish(res)
		c.mu.Lock()
		c.running = false
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.mu.Unlock()
	}()

	reciterID, startAyah, endAyah, err := req.normalize()
	if err != nil {
		return c.fail(fmt.Errorf("invalid request: %w", err))
	}

	c.addLog("[1] Clearing work folder...")
	c.updateProgress(progressCleanup, "جاري تنظيف ملفات الإخراج...")

	if err := util.ClearDir(c.cfg.WorkDir); err != nil {
		return c.fail(fmt.Errorf("clear work dir: %w", err))
	}
	if err := util.EnsureDir(c.cfg.OutputDir); err != nil {
		return c.fail(fmt.Errorf("ensure output dir: %w", err))
	}

	// Detect an empty background pool before any verse work starts.
	if err := c.comps.Backgrounds.Check(); err != nil {
		return c.fail(err)
	}

	total := endAyah - startAyah + 1
	c.addLog(fmt.Sprintf("[2] Preparing %d verses (from %d to %d)", total, startAyah, endAyah))
	c.updateProgress(progressPrepare, fmt.Sprintf("جاري تحضير %d آيات...", total))

	var segments []*segment.Segment
	for idx := 1; idx <= total; idx++ {
		if c.cancelled(ctx) {
			return c.abandon()
		}

		ayah := startAyah + idx - 1
		seg, err := c.buildVerse(ctx, reciterID, req.Surah, ayah, idx, total, &tempFiles)
		if err != nil {
			if c.cancelled(ctx) {
				return c.abandon()
			}
			if errors.Is(err, audio.ErrEmptyAudio) {
				// Policy: a fully silent clip skips its verse; the run
				// carries on with the remaining verses.
				c.addLog(fmt.Sprintf("[3.%d] Skipping verse %d: no usable audio after trim", idx, ayah))
				c.logger.Warn().Int("ayah", ayah).Msg("verse skipped, audio entirely silent")
				continue
			}
			return c.fail(err)
		}
		segments = append(segments, seg)
	}

	if c.cancelled(ctx) {
		return c.abandon()
	}
	if len(segments) == 0 {
		return c.fail(fmt.Errorf("no segments produced: every verse in [%d, %d] was skipped", startAyah, endAyah))
	}

	// Concatenation order is strictly ascending verse order, no matter
	// how per-verse work completed.
	sort.Slice(segments, func(i, j int) bool { return segments[i].Index < segments[j].Index })

	c.addLog("[4] Concatenating segments...")
	c.updateProgress(progressConcat, "جاري دمج المقاطع...")

	surahName, err := quran.SurahName(req.Surah)
	if err != nil {
		return c.fail(err)
	}
	outputPath := filepath.Join(c.cfg.OutputDir, encode.OutputName(surahName, startAyah, endAyah, time.Now()))

	c.addLog(fmt.Sprintf("[5] Writing final video → %s", outputPath))
	c.updateProgress(progressWrite, "جاري كتابة الفيديو النهائي...")

	if err := c.comps.Encoder.Encode(ctx, segments, outputPath); err != nil {
		if c.cancelled(ctx) {
			return c.abandon()
		}
		return c.fail(err)
	}

	c.addLog("[6] Done!")
	c.updateProgress(progressDone, "تم بنجاح!")

	return Result{Success: true, OutputPath: outputPath}
}

// buildVerse runs fetch → trim → layout → background → compose for one
// verse. The audio and text sides are data-independent and run
// concurrently.
func (c *Controller) buildVerse(ctx context.Context, reciterID string, surah, ayah, idx, total int, tempFiles *[]string) (*segment.Segment, error) {
	per := verseBandWidth / float64(total)
	base := progressPrepare + float64(idx-1)*per

	c.addLog(fmt.Sprintf("[3.%d] Downloading audio for verse %d", idx, ayah))
	c.updateProgress(int(base+per*checkpointFetch), fmt.Sprintf("جاري تحميل صوت الآية %d...", ayah))

	audioPath := filepath.Join(c.cfg.WorkDir, fmt.Sprintf("part%d.mp3", idx-1))
	overlayPath := filepath.Join(c.cfg.WorkDir, fmt.Sprintf("overlay-%s.png", uuid.NewString()))
	segPath := filepath.Join(c.cfg.WorkDir, fmt.Sprintf("segment%d.mp4", idx-1))
	*tempFiles = append(*tempFiles, audioPath, overlayPath, segPath)

	var (
		trim audio.TrimRange
		rate int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := c.comps.Audio.FetchAudio(gctx, reciterID, surah, ayah)
		if err != nil {
			return err
		}
		if err := os.WriteFile(audioPath, data, 0644); err != nil {
			return fmt.Errorf("write verse audio: %w", err)
		}

		trim, rate, err = c.comps.Analyzer.Analyze(data)
		if err != nil {
			return fmt.Errorf("analyze verse %d audio: %w", ayah, err)
		}
		if trim.Empty() {
			return fmt.Errorf("verse %d: %w", ayah, audio.ErrEmptyAudio)
		}
		return nil
	})
	g.Go(func() error {
		text, err := c.comps.Text.FetchText(gctx, surah, ayah)
		if err != nil {
			return err
		}
		if _, err := c.comps.Overlay.RenderToFile(text, overlayPath); err != nil {
			return fmt.Errorf("render overlay for verse %d: %w", ayah, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.addLog(fmt.Sprintf("[3.%d] Fetched text", idx))
	c.updateProgress(int(base+per*checkpointText), fmt.Sprintf("جاري جلب نص الآية %d...", ayah))

	duration := trim.Duration(rate)

	bg, err := c.comps.Backgrounds.Pick(ctx, duration)
	if err != nil {
		return nil, err
	}

	seg, err := c.comps.Builder.Build(ctx, segment.Request{
		Index:       ayah,
		AudioPath:   audioPath,
		Trim:        trim,
		SampleRate:  rate,
		Background:  bg,
		OverlayPath: overlayPath,
		OutputPath:  segPath,
	})
	if err != nil {
		return nil, err
	}

	c.addLog(fmt.Sprintf("[3.%d] Built segment for verse %d", idx, ayah))
	c.updateProgress(int(base+per*checkpointBuilt), fmt.Sprintf("جاري إنشاء مقطع الآية %d...", ayah))

	return seg, nil
}

// cancelled reports whether the run should stop at this verse
// boundary.
func (c *Controller) cancelled(ctx context.Context) bool {
	return c.state.cancelRequested() || ctx.Err() != nil
}

// abandon finishes a cancelled run: already-built segments are
// discarded and no output is written.
func (c *Controller) abandon() Result {
	c.addLog("Generation stopped by user")
	c.updateStatus("تم الإلغاء")
	c.logger.Info().Msg("run cancelled")
	return Result{Success: false, Err: ErrCancelled}
}

func (c *Controller) fail(err error) Result {
	c.addLog(fmt.Sprintf("[ERROR] %v", err))
	c.updateStatus(fmt.Sprintf("خطأ: %v", err))
	c.logger.Error().Err(err).Msg("run failed")
	return Result{Success: false, Err: err}
}

func (c *Controller) updateProgress(percent int, status string) {
	percent, status = c.state.setProgress(percent, status)
	c.progress.OnProgress(percent, status)
}

// updateStatus publishes a status change without advancing percent.
func (c *Controller) updateStatus(status string) {
	percent, status := c.state.setProgress(0, status)
	c.progress.OnProgress(percent, status)
}

func (c *Controller) addLog(message string) {
	c.state.appendLog(message)
	c.logs.OnLog(message)
	c.logger.Info().Msg(message)
}
