package layout

import (
	"image"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caption(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = "كلمة"
	}
	return strings.Join(parts, " ")
}

func TestPlanBuckets(t *testing.T) {
	cases := []struct {
		words        int
		fontSize     int
		wordsPerLine int
	}{
		{5, 35, 6},
		{15, 35, 6},
		{16, 30, 7},
		{25, 30, 7},
		{26, 25, 8},
		{40, 25, 8},
		{41, 20, 9},
		{60, 20, 9},
		{61, 16, 10},
		{65, 16, 10},
	}

	for _, tc := range cases {
		plan := PlanFor(caption(tc.words))
		assert.Equal(t, tc.fontSize, plan.FontSize, "font size for %d words", tc.words)
		assert.Equal(t, tc.wordsPerLine, plan.WordsPerLine, "words per line for %d words", tc.words)
	}
}

func TestWrapPreservesWords(t *testing.T) {
	text := "قُلْ هُوَ ٱللَّهُ أَحَدٌ ٱللَّهُ ٱلصَّمَدُ لَمْ يَلِدْ وَلَمْ يُولَدْ وَلَمْ يَكُن لَّهُۥ كُفُوًا أَحَدٌۢ"
	plan := PlanFor(text)

	rejoined := strings.Join(plan.Words(), " ")
	assert.Equal(t, strings.Join(strings.Fields(text), " "), rejoined)
}

func TestWrapLineGrouping(t *testing.T) {
	plan := PlanFor(caption(20)) // 7 per line

	require.Len(t, plan.Lines, 3)
	assert.Len(t, strings.Fields(plan.Lines[0]), 7)
	assert.Len(t, strings.Fields(plan.Lines[1]), 7)
	assert.Len(t, strings.Fields(plan.Lines[2]), 6) // last line may be shorter
}

func TestWrappedText(t *testing.T) {
	plan := PlanFor("a b c d e f g")
	assert.Equal(t, "a b c d e f\ng", plan.WrappedText())
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	// Nonexistent font path exercises the built-in fallback face.
	return NewEngine(zerolog.Nop(), "testdata/nonexistent.ttf", DefaultMaxWidth, DefaultPadding)
}

func TestRenderFallbackFace(t *testing.T) {
	engine := newTestEngine(t)

	img, plan, err := engine.Render("short caption")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 35, plan.FontSize)
}

func TestRenderCanvasBounds(t *testing.T) {
	engine := newTestEngine(t)

	img, _, err := engine.Render(caption(70))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), DefaultMaxWidth)
	assert.Greater(t, bounds.Dy(), 2*DefaultPadding)
}

func TestRenderTransparentBackground(t *testing.T) {
	engine := newTestEngine(t)

	img, _, err := engine.Render("word")
	require.NoError(t, err)

	// Corners stay fully transparent; only glyph pixels carry alpha.
	corners := []image.Point{
		{0, 0},
		{img.Bounds().Dx() - 1, 0},
		{0, img.Bounds().Dy() - 1},
		{img.Bounds().Dx() - 1, img.Bounds().Dy() - 1},
	}
	for _, p := range corners {
		_, _, _, a := img.At(p.X, p.Y).RGBA()
		assert.Zero(t, a, "corner %v should be transparent", p)
	}

	opaque := false
	for y := 0; y < img.Bounds().Dy() && !opaque; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				opaque = true
				break
			}
		}
	}
	assert.True(t, opaque, "rendered caption should produce visible pixels")
}

func TestRenderToFile(t *testing.T) {
	engine := newTestEngine(t)
	path := t.TempDir() + "/overlay.png"

	plan, err := engine.RenderToFile("بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ", path)
	require.NoError(t, err)
	assert.Equal(t, 35, plan.FontSize)
	assert.FileExists(t, path)
}
