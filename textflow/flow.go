// Package textflow wraps text greedily into lines that fit a width and lays them
// out top to bottom with a moving vertical cursor.
package textflow

import (
	"iter"
	"strings"

	"github.com/zeptools/gw-invoice/colors"
	"github.com/zeptools/gw-invoice/pdfs"
)

const DefaultLineHeight = 1.2

// Measurer reports the advance width of text at a font size. pdfs.Font satisfies it
type Measurer interface {
	MeasureTextWidth(text string, size float64) float64
}

// Lines wraps text on whitespace so that no line exceeds maxWidth,
// except a single word that is wider on its own. Words are never split.
// The sequence is lazy and can be ranged over any number of times.
func Lines(text string, m Measurer, size float64, maxWidth float64) iter.Seq[string] {
	return func(yield func(string) bool) {
		line := ""
		for _, word := range strings.Fields(text) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && m.MeasureTextWidth(candidate, size) > maxWidth {
				if !yield(line) {
					return
				}
				line = word
				continue
			}
			line = candidate
		}
		if line != "" {
			yield(line)
		}
	}
}

// Block describes where and how a flowed paragraph is drawn
type Block struct {
	X          float64
	Y          float64 // baseline of the first line
	Font       pdfs.Font
	Size       float64
	MaxWidth   float64
	LineHeight float64 // multiple of Size. 0 = DefaultLineHeight
	Color      colors.RGB
}

func (b Block) leading() float64 {
	lh := b.LineHeight
	if lh == 0 {
		lh = DefaultLineHeight
	}
	return b.Size * lh
}

// Flow draws the wrapped lines of text and returns the cursor below the block:
// Y - Size*LineHeight*lineCount. Empty text draws nothing and returns Y.
func Flow(w pdfs.Writer, text string, b Block) float64 {
	y := b.Y
	step := b.leading()
	for line := range Lines(text, b.Font, b.Size, b.MaxWidth) {
		w.Text(line, b.X, y, pdfs.TextOpts{Font: b.Font, Size: b.Size, Color: b.Color})
		y -= step
	}
	return y
}

// Count returns how many lines text wraps into
func Count(text string, m Measurer, size float64, maxWidth float64) int {
	n := 0
	for range Lines(text, m, size, maxWidth) {
		n++
	}
	return n
}
