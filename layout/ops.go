package layout

import (
	"strings"

	"github.com/zeptools/gw-invoice/pdfs"
	"github.com/zeptools/gw-invoice/textflow"
)

// Op is one step of a zone program. Ops run in order against a single
// vertical cursor that only MoveTo, Move, Lines and Flow change.
type Op interface {
	apply(p *pass)
}

type FontRole uint8

const (
	RegularFont FontRole = iota
	BoldFont
	ItalicFont
)

type Align uint8

const (
	AlignLeft Align = iota
	// AlignCenter centers the measured text on the page width; X is ignored
	AlignCenter
)

// MoveTo sets the cursor
type MoveTo struct {
	Y Y
}

func (o MoveTo) apply(p *pass) {
	p.y = o.Y.resolve(p)
}

// Move shifts the cursor. Negative goes down the page
type Move float64

func (o Move) apply(p *pass) {
	p.y += float64(o)
}

// Text draws one line of text. Empty content draws nothing
type Text struct {
	X     Pos
	Y     Y
	Value Content
	Font  FontRole
	Size  float64
	Ink   Ink
	Align Align
}

func (o Text) apply(p *pass) {
	s := p.eval(o.Value)
	if s == "" {
		return
	}
	font := p.font(o.Font)
	x := o.X.resolve(p.page.Width)
	if o.Align == AlignCenter {
		x = (p.page.Width - font.MeasureTextWidth(s, o.Size)) / 2
	}
	p.w.Text(s, x, o.Y.resolve(p), pdfs.TextOpts{Font: font, Size: o.Size, Color: p.palette.resolve(o.Ink)})
}

// Lines draws a multi-line field one trimmed line at a time at the cursor,
// stepping down after every line, blank ones included
type Lines struct {
	X     Pos
	Value Content
	Font  FontRole
	Size  float64
	Ink   Ink
	Step  float64
}

func (o Lines) apply(p *pass) {
	font := p.font(o.Font)
	x := o.X.resolve(p.page.Width)
	color := p.palette.resolve(o.Ink)
	for _, line := range strings.Split(p.eval(o.Value), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			p.w.Text(line, x, p.y, pdfs.TextOpts{Font: font, Size: o.Size, Color: color})
		}
		p.y -= o.Step
	}
}

// Flow wraps a paragraph to MaxWidth and leaves the cursor below it
type Flow struct {
	X          Pos
	Y          Y
	Value      Content
	Font       FontRole
	Size       float64
	Ink        Ink
	MaxWidth   float64
	LineHeight float64 // multiple of Size. 0 = textflow.DefaultLineHeight
}

func (o Flow) apply(p *pass) {
	p.y = textflow.Flow(p.w, p.eval(o.Value), textflow.Block{
		X:          o.X.resolve(p.page.Width),
		Y:          o.Y.resolve(p),
		Font:       p.font(o.Font),
		Size:       o.Size,
		MaxWidth:   o.MaxWidth,
		LineHeight: o.LineHeight,
		Color:      p.palette.resolve(o.Ink),
	})
}

// Rect draws a rectangle anchored at its bottom-left corner.
// W and H resolve against the page width and height.
type Rect struct {
	X           Pos
	Y           Y
	W           Pos
	H           Pos
	Fill        Ink
	Border      Ink
	BorderWidth float64
}

func (o Rect) apply(p *pass) {
	p.w.Rect(
		o.X.resolve(p.page.Width),
		o.Y.resolve(p),
		o.W.resolve(p.page.Width),
		o.H.resolve(p.page.Height),
		pdfs.RectOpts{
			Fill:        p.palette.paint(o.Fill),
			Border:      p.palette.paint(o.Border),
			BorderWidth: o.BorderWidth,
		},
	)
}

// Line draws a horizontal rule from X1 to X2
type Line struct {
	X1        Pos
	X2        Pos
	Y         Y
	Thickness float64
	Ink       Ink
}

func (o Line) apply(p *pass) {
	y := o.Y.resolve(p)
	p.w.Line(o.X1.resolve(p.page.Width), y, o.X2.resolve(p.page.Width), y, pdfs.LineOpts{
		Thickness: o.Thickness,
		Color:     p.palette.resolve(o.Ink),
	})
}

// When runs Then only if the predicate holds
type When struct {
	If   Predicate
	Then []Op
}

func (o When) apply(p *pass) {
	if o.If(p.view) {
		p.run(o.Then)
	}
}
