package ffmpeg

import (
	"fmt"
	"strings"
	"time"
)

// FilterBuilder helps construct ffmpeg filter chains
type FilterBuilder struct {
	filters []string
}

// NewFilterBuilder creates a new filter builder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]string, 0),
	}
}

// Scale adds a scale filter
func (fb *FilterBuilder) Scale(width, height int) *FilterBuilder {
	if width <= 0 || height <= 0 {
		// Return self without adding filter - allows chaining to continue
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("scale=%d:%d", width, height))
	return fb
}

// FPS adds an fps filter
func (fb *FilterBuilder) FPS(fps float64) *FilterBuilder {
	if fps <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("fps=%g", fps))
	return fb
}

// TrimDuration clips the stream to the first d and resets timestamps,
// so a looped background becomes exactly [0, d).
func (fb *FilterBuilder) TrimDuration(d time.Duration) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters,
		fmt.Sprintf("trim=duration=%.3f", d.Seconds()),
		"setpts=PTS-STARTPTS")
	return fb
}

// AFadeIn adds an audio fade-in of length d from the stream start.
func (fb *FilterBuilder) AFadeIn(d time.Duration) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters, fmt.Sprintf("afade=t=in:st=0:d=%.3f", d.Seconds()))
	return fb
}

// AFadeOut adds an audio fade-out of length d ending at total. The
// fade sits inside the clip, it does not shorten it.
func (fb *FilterBuilder) AFadeOut(total, d time.Duration) *FilterBuilder {
	if d <= 0 || total <= d {
		return fb
	}
	fb.filters = append(fb.filters,
		fmt.Sprintf("afade=t=out:st=%.3f:d=%.3f", (total-d).Seconds(), d.Seconds()))
	return fb
}

// ATrim clips the audio stream to [0, d) and resets timestamps.
func (fb *FilterBuilder) ATrim(d time.Duration) *FilterBuilder {
	if d <= 0 {
		return fb
	}
	fb.filters = append(fb.filters,
		fmt.Sprintf("atrim=duration=%.3f", d.Seconds()),
		"asetpts=PTS-STARTPTS")
	return fb
}

// Custom adds a custom filter string
func (fb *FilterBuilder) Custom(filter string) *FilterBuilder {
	fb.filters = append(fb.filters, filter)
	return fb
}

// Build returns the complete filter string joined with commas
func (fb *FilterBuilder) Build() string {
	if len(fb.filters) == 0 {
		return ""
	}
	return strings.Join(fb.filters, ",")
}

// OverlayCentered returns an overlay filter that composites the second
// input centered over the first, at the same pixel position for the
// whole duration regardless of background content.
func OverlayCentered() string {
	return "overlay=(W-w)/2:(H-h)/2"
}
