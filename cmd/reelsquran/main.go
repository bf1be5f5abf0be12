package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mosamy007/Reels-Quran/internal/background"
	"github.com/mosamy007/Reels-Quran/internal/config"
	"github.com/mosamy007/Reels-Quran/internal/encode"
	"github.com/mosamy007/Reels-Quran/internal/fetch"
	"github.com/mosamy007/Reels-Quran/internal/ffmpeg"
	"github.com/mosamy007/Reels-Quran/internal/layout"
	"github.com/mosamy007/Reels-Quran/internal/logging"
	"github.com/mosamy007/Reels-Quran/internal/pipeline"
	"github.com/mosamy007/Reels-Quran/internal/quran"
	"github.com/mosamy007/Reels-Quran/internal/segment"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reelsquran",
	Short: "reelsquran - Quran recitation reel generator",
	Long:  "Generates vertical recitation videos: fetches verse audio and text, trims silence, overlays the verse on a looping background, and concatenates the result.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Initialize logging, mirrored into the run log file
		if err := logging.InitWithRunLog(verbose, cfg.LogDir); err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(recitersCmd)
	rootCmd.AddCommand(surahsCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	genReciter string
	genSurah   int
	genStart   int
	genEnd     int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a recitation reel for a verse range",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		controller, err := buildController(cfg)
		if err != nil {
			return err
		}

		// Ctrl-C requests a clean stop at the next verse boundary.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			log.Warn().Msg("interrupt received, stopping after current verse")
			controller.Cancel()
		}()

		res := controller.Run(cmd.Context(), pipeline.Request{
			Reciter:   genReciter,
			Surah:     genSurah,
			StartAyah: genStart,
			EndAyah:   genEnd,
		})
		if res.Err != nil {
			return res.Err
		}

		log.Info().Str("output", res.OutputPath).Msg("reel generated")
		fmt.Println(res.OutputPath)
		return nil
	},
}

// buildController wires the production collaborators into a pipeline
// controller with a terminal progress bar attached.
func buildController(cfg *config.Config) (*pipeline.Controller, error) {
	exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.BinaryPath, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, err
	}

	client := fetch.NewClient(log.Logger, cfg.Fetch.AudioBaseURL, cfg.Fetch.TextBaseURL, cfg.Fetch.Timeout.Std())
	engine := layout.NewEngine(log.Logger, cfg.FontPath(), cfg.Layout.MaxWidth, cfg.Layout.Padding)
	selector := background.NewSelector(log.Logger, exec, cfg.BackgroundsDir, cfg.Segment.BackgroundPrefix, cfg.Segment.BackgroundSuffix)
	builder := segment.NewBuilder(log.Logger, exec, cfg.Segment.AudioFade.Std())
	encoder := encode.NewFFmpegEncoder(log.Logger, exec, ffmpeg.EncodeSettings{
		FPS:            cfg.Encode.FPS,
		VideoCodec:     cfg.Encode.VideoCodec,
		AudioCodec:     cfg.Encode.AudioCodec,
		AudioBitrate:   cfg.Encode.AudioBitrate,
		Preset:         cfg.FFmpeg.Preset,
		ContainerFlags: cfg.Encode.ContainerFlags,
	})

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("starting..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	progress := pipeline.ProgressSinkFunc(func(percent int, status string) {
		bar.Describe(status)
		_ = bar.Set(percent)
	})
	logs := pipeline.LogSinkFunc(func(message string) {
		log.Debug().Msg(message)
	})

	return pipeline.New(log.Logger, cfg, pipeline.Components{
		Audio:       client,
		Text:        client,
		Overlay:     engine,
		Backgrounds: selector,
		Builder:     builder,
		Encoder:     encoder,
	}, progress, logs), nil
}

var recitersCmd = &cobra.Command{
	Use:   "reciters",
	Short: "List available reciters",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range quran.Reciters() {
			id, _ := quran.ReciterID(name)
			fmt.Printf("%-40s %s\n", name, id)
		}
		return nil
	},
}

var surahsCmd = &cobra.Command{
	Use:   "surahs",
	Short: "List surahs with their verse counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		for i := 1; i <= quran.SurahCount; i++ {
			name, _ := quran.SurahName(i)
			count, _ := quran.VerseCount(i)
			fmt.Printf("%3d  %-20s %3d آيات\n", i, name, count)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		cfg := config.FromContext(cmd.Context())
		if err := cfg.Save(path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("config written")
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genReciter, "reciter", "r", "Alafasy_64kbps", "reciter display name or everyayah id")
	generateCmd.Flags().IntVarP(&genSurah, "surah", "s", 0, "surah number (1-114)")
	generateCmd.Flags().IntVar(&genStart, "start", 0, "first ayah of the range")
	generateCmd.Flags().IntVar(&genEnd, "end", 0, "last ayah (default: start+9, clamped)")
	_ = generateCmd.MarkFlagRequired("surah")
	_ = generateCmd.MarkFlagRequired("start")

	configCmd.AddCommand(configInitCmd)
}
