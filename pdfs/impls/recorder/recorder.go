package recorder

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/zeptools/gw-invoice/colors"
	"github.com/zeptools/gw-invoice/pdfs"
)

type Op string

const (
	OpPage Op = "page"
	OpFont Op = "font"
	OpText Op = "text"
	OpLine Op = "line"
	OpRect Op = "rect"
)

// Instruction - one recorded call. Unused fields stay zero
type Instruction struct {
	Op        Op
	Text      string
	Font      string // "Family/Style"
	Size      float64
	X, Y      float64
	X2, Y2    float64 // line end
	W, H      float64 // rect size
	Color     colors.RGB
	Thickness float64
	Fill      *colors.RGB
	Border    *colors.RGB
}

// String renders the instruction as one stable line (golden file format)
func (in Instruction) String() string {
	switch in.Op {
	case OpPage:
		return fmt.Sprintf("page %.2fx%.2f", in.W, in.H)
	case OpFont:
		return "font " + in.Font
	case OpText:
		return fmt.Sprintf("text %.2f,%.2f %s %.2f %s %q", in.X, in.Y, in.Font, in.Size, rgb(in.Color), in.Text)
	case OpLine:
		return fmt.Sprintf("line %.2f,%.2f-%.2f,%.2f w=%.2f %s", in.X, in.Y, in.X2, in.Y2, in.Thickness, rgb(in.Color))
	case OpRect:
		s := fmt.Sprintf("rect %.2f,%.2f %.2fx%.2f", in.X, in.Y, in.W, in.H)
		if in.Fill != nil {
			s += " fill=" + rgb(*in.Fill)
		}
		if in.Border != nil {
			s += fmt.Sprintf(" border=%s w=%.2f", rgb(*in.Border), in.Thickness)
		}
		return s
	}
	return string(in.Op)
}

func rgb(c colors.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", toByte(c.R), toByte(c.G), toByte(c.B))
}

func toByte(v float64) int {
	r, _, _ := colors.RGB{R: v}.Bytes()
	return r
}

// MeasureFunc supplies text widths for recorded fonts
type MeasureFunc func(family pdfs.FontFamily, style pdfs.FontStyle, text string, size float64) float64

// Monospace measures every rune as advance*size
func Monospace(advance float64) MeasureFunc {
	return func(_ pdfs.FontFamily, _ pdfs.FontStyle, text string, size float64) float64 {
		return float64(utf8.RuneCountInString(text)) * advance * size
	}
}

// Writer records draw calls instead of producing a PDF.
// ProduceBytes returns the recorded stream, one instruction per line.
type Writer struct {
	size         pdfs.PaperSize
	measure      MeasureFunc
	Instructions []Instruction
	err          error
}

// Ensure recorder.Writer implements pdfs.Writer interface
var _ pdfs.Writer = (*Writer)(nil)

func New(size pdfs.PaperSize, measure MeasureFunc) *Writer {
	if measure == nil {
		measure = Monospace(0.5)
	}
	return &Writer{size: size, measure: measure}
}

func (w *Writer) PaperSize() pdfs.PaperSize {
	return w.size
}

func (w *Writer) AddPage(size pdfs.PaperSize) {
	w.size = size
	w.record(Instruction{Op: OpPage, W: size.Width, H: size.Height})
}

func (w *Writer) EmbedFont(family pdfs.FontFamily, style pdfs.FontStyle) (pdfs.Font, error) {
	f := &Font{owner: w, family: family, style: style}
	w.record(Instruction{Op: OpFont, Font: f.name()})
	return f, nil
}

func (w *Writer) Text(text string, x float64, y float64, opts pdfs.TextOpts) {
	name := ""
	if f, ok := opts.Font.(*Font); ok && f.owner == w {
		name = f.name()
	} else {
		w.fail(pdfs.ErrForeignFont)
	}
	w.record(Instruction{Op: OpText, Text: text, X: x, Y: y, Font: name, Size: opts.Size, Color: opts.Color})
}

func (w *Writer) Line(x1 float64, y1 float64, x2 float64, y2 float64, opts pdfs.LineOpts) {
	w.record(Instruction{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Thickness: opts.Thickness, Color: opts.Color})
}

func (w *Writer) Rect(x float64, y float64, width float64, height float64, opts pdfs.RectOpts) {
	in := Instruction{Op: OpRect, X: x, Y: y, W: width, H: height}
	if opts.Fill != nil {
		c := *opts.Fill
		in.Fill = &c
	}
	if opts.Border != nil {
		c := *opts.Border
		in.Border = &c
		in.Thickness = opts.BorderWidth
	}
	w.record(in)
}

func (w *Writer) record(in Instruction) {
	if in.Op != OpPage && in.Op != OpFont && !w.hasPage() {
		w.fail(pdfs.ErrNoPage)
	}
	w.Instructions = append(w.Instructions, in)
}

func (w *Writer) hasPage() bool {
	for _, in := range w.Instructions {
		if in.Op == OpPage {
			return true
		}
	}
	return false
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Err returns the first misuse recorded
func (w *Writer) Err() error {
	return w.err
}

// Texts returns the text of every OpText in order
func (w *Writer) Texts() []string {
	var out []string
	for _, in := range w.Instructions {
		if in.Op == OpText {
			out = append(out, in.Text)
		}
	}
	return out
}

// Find returns the first text instruction whose text equals s
func (w *Writer) Find(s string) (Instruction, bool) {
	for _, in := range w.Instructions {
		if in.Op == OpText && in.Text == s {
			return in, true
		}
	}
	return Instruction{}, false
}

// Dump renders all instructions, one per line
func (w *Writer) Dump() string {
	var sb strings.Builder
	for _, in := range w.Instructions {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (w *Writer) ProduceBytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if !w.hasPage() {
		return nil, pdfs.ErrNoPage
	}
	return []byte(w.Dump()), nil
}

func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	b, err := w.ProduceBytes()
	if err != nil {
		return 0, err
	}
	return bytes.NewReader(b).WriteTo(dst)
}

// Font - recorded font handle
type Font struct {
	owner  *Writer
	family pdfs.FontFamily
	style  pdfs.FontStyle
}

var _ pdfs.Font = (*Font)(nil)

func (f *Font) Family() pdfs.FontFamily { return f.family }
func (f *Font) Style() pdfs.FontStyle   { return f.style }

func (f *Font) MeasureTextWidth(text string, size float64) float64 {
	return f.owner.measure(f.family, f.style, text, size)
}

func (f *Font) name() string {
	style := string(f.style)
	if style == "" {
		style = "R"
	}
	return string(f.family) + "/" + style
}
