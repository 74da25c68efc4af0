package pdfs

import (
	"errors"
	"io"

	"github.com/zeptools/gw-invoice/colors"
)

// Writer — minimal, stream-style, append-only single page writer. No page navigation
// Coordinates are in pt with the origin at the bottom-left corner of the page (y grows upward)
type Writer interface {
	PaperSize() PaperSize

	AddPage(size PaperSize)

	// EmbedFont must be called before text in that font is drawn
	EmbedFont(family FontFamily, style FontStyle) (Font, error)

	Text(text string, x float64, y float64, opts TextOpts)
	Line(x1 float64, y1 float64, x2 float64, y2 float64, opts LineOpts)
	Rect(x float64, y float64, w float64, h float64, opts RectOpts)

	WriteTo(w io.Writer) (int64, error)
	ProduceBytes() ([]byte, error)
}

// Font - handle returned by Writer.EmbedFont
type Font interface {
	Family() FontFamily
	Style() FontStyle
	MeasureTextWidth(text string, size float64) float64
}

type FontFamily string

const (
	Helvetica FontFamily = "Helvetica"
	Times     FontFamily = "Times"
	Courier   FontFamily = "Courier"
)

type FontStyle string

const (
	Regular    FontStyle = ""
	Bold       FontStyle = "B"
	Italic     FontStyle = "I"
	BoldItalic FontStyle = "BI"
)

type TextOpts struct {
	Font  Font
	Size  float64
	Color colors.RGB
}

type LineOpts struct {
	Thickness float64
	Color     colors.RGB
}

// RectOpts - Fill and Border are independent. nil = not painted
type RectOpts struct {
	Fill        *colors.RGB
	Border      *colors.RGB
	BorderWidth float64
}

var (
	ErrNoPage       = errors.New("pdfs: no page added")
	ErrUnknownFont  = errors.New("pdfs: unknown font")
	ErrForeignFont  = errors.New("pdfs: font handle belongs to another writer")
	ErrWriterClosed = errors.New("pdfs: writer already produced output")
)
