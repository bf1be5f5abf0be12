package layout

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Default canvas constraints, matching the 1080-wide vertical frame the
// overlay is composited onto.
const (
	DefaultMaxWidth = 900
	DefaultPadding  = 40
)

// Engine rasterizes caption plans onto transparent RGBA canvases.
type Engine struct {
	logger   zerolog.Logger
	font     *opentype.Font
	maxWidth int
	padding  int
}

// NewEngine loads the primary typeface from fontPath. If the file is
// missing or unparsable the engine falls back to the built-in Go
// Regular face instead of failing; the caption is then still rendered,
// just not in the configured font.
func NewEngine(logger zerolog.Logger, fontPath string, maxWidth, padding int) *Engine {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if padding < 0 {
		padding = DefaultPadding
	}

	e := &Engine{
		logger:   logger.With().Str("component", "layout").Logger(),
		maxWidth: maxWidth,
		padding:  padding,
	}

	data, err := os.ReadFile(fontPath)
	if err == nil {
		if f, perr := opentype.Parse(data); perr == nil {
			e.font = f
			return e
		} else {
			err = perr
		}
	}

	e.logger.Warn().Err(err).Str("font", fontPath).Msg("falling back to built-in typeface")
	fallback, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// goregular is a compiled-in asset; this cannot happen at runtime.
		panic(fmt.Sprintf("parse built-in font: %v", err))
	}
	e.font = fallback
	return e
}

// Render rasterizes the caption onto a transparent canvas: fully
// opaque white text, centered on both axes, everything else fully
// transparent. Canvas width is capped at the engine's max width.
func (e *Engine) Render(caption string) (*image.RGBA, Plan, error) {
	plan := PlanFor(caption)

	face, err := opentype.NewFace(e.font, &opentype.FaceOptions{
		Size:    float64(plan.FontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, plan, fmt.Errorf("build %dpt face: %w", plan.FontSize, err)
	}
	defer face.Close()

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	widths := make([]int, len(plan.Lines))
	textWidth := 0
	measurer := font.Drawer{Face: face}
	for i, line := range plan.Lines {
		widths[i] = measurer.MeasureString(line).Ceil()
		if widths[i] > textWidth {
			textWidth = widths[i]
		}
	}
	textHeight := lineHeight * len(plan.Lines)

	imgWidth := textWidth + 2*e.padding
	if imgWidth > e.maxWidth {
		imgWidth = e.maxWidth
	}
	if imgWidth < 1 {
		imgWidth = 1
	}
	imgHeight := textHeight + 2*e.padding
	if imgHeight < 1 {
		imgHeight = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: face,
	}

	y := (imgHeight-textHeight)/2 + ascent
	for i, line := range plan.Lines {
		x := (imgWidth - widths[i]) / 2
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(line)
		y += lineHeight
	}

	e.logger.Debug().
		Int("words", len(plan.Words())).
		Int("font_size", plan.FontSize).
		Int("lines", len(plan.Lines)).
		Int("width", imgWidth).
		Int("height", imgHeight).
		Msg("caption rendered")

	return img, plan, nil
}

// RenderToFile rasterizes the caption and writes it as a PNG.
func (e *Engine) RenderToFile(caption, path string) (Plan, error) {
	img, plan, err := e.Render(caption)
	if err != nil {
		return plan, err
	}

	f, err := os.Create(path)
	if err != nil {
		return plan, fmt.Errorf("create overlay file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return plan, fmt.Errorf("encode overlay png: %w", err)
	}
	return plan, nil
}
