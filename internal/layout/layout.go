// Package layout sizes, wraps, and rasterizes verse captions into
// transparent overlay images.
package layout

import "strings"

// Plan is the deterministic layout decision for one caption: the font
// size and line grouping derived from its word count.
type Plan struct {
	FontSize     int
	WordsPerLine int
	Lines        []string
}

// PlanFor derives the layout plan for a caption. Shorter captions get
// larger text so a short verse stays legible and a long verse still
// fits vertically.
func PlanFor(caption string) Plan {
	words := strings.Fields(caption)

	size, perLine := bucket(len(words))

	var lines []string
	for i := 0; i < len(words); i += perLine {
		end := i + perLine
		if end > len(words) {
			end = len(words)
		}
		lines = append(lines, strings.Join(words[i:end], " "))
	}

	return Plan{FontSize: size, WordsPerLine: perLine, Lines: lines}
}

// bucket maps word count to (font size, words per line) as a monotone
// step function.
func bucket(wordCount int) (fontSize, wordsPerLine int) {
	switch {
	case wordCount > 60:
		return 16, 10
	case wordCount > 40:
		return 20, 9
	case wordCount > 25:
		return 25, 8
	case wordCount > 15:
		return 30, 7
	default:
		return 35, 6
	}
}

// WrappedText joins the planned lines with line breaks.
func (p Plan) WrappedText() string {
	return strings.Join(p.Lines, "\n")
}

// Words returns the word sequence in original order, for callers that
// need to verify no word was lost in wrapping.
func (p Plan) Words() []string {
	var words []string
	for _, line := range p.Lines {
		words = append(words, strings.Fields(line)...)
	}
	return words
}
