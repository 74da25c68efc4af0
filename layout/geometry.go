package layout

// Pos is a horizontal coordinate or an extent, resolved against the page width
// (or height for rectangle heights).
//
//	Pt(50)    -> 50
//	Inset(150) -> extent - 150
//	Mid(-80)  -> extent/2 - 80
type Pos struct {
	ref posRef
	v   float64
}

type posRef uint8

const (
	fromStart posRef = iota
	fromEnd
	fromMiddle
)

func Pt(v float64) Pos    { return Pos{ref: fromStart, v: v} }
func Inset(v float64) Pos { return Pos{ref: fromEnd, v: v} }
func Mid(dv float64) Pos  { return Pos{ref: fromMiddle, v: dv} }

func (p Pos) resolve(extent float64) float64 {
	switch p.ref {
	case fromEnd:
		return extent - p.v
	case fromMiddle:
		return extent/2 + p.v
	}
	return p.v
}

// Y is a vertical coordinate. The zero value is the zone cursor itself.
//
//	Cur(-5)     -> cursor - 5
//	Top(60)     -> page height - 60
//	Bottom(40)  -> 40
type Y struct {
	ref yRef
	v   float64
}

type yRef uint8

const (
	yCursor yRef = iota
	yTop
	yBottom
)

func Cur(dy float64) Y   { return Y{ref: yCursor, v: dy} }
func Top(v float64) Y    { return Y{ref: yTop, v: v} }
func Bottom(v float64) Y { return Y{ref: yBottom, v: v} }

func (y Y) resolve(p *pass) float64 {
	switch y.ref {
	case yTop:
		return p.page.Height - y.v
	case yBottom:
		return y.v
	}
	return p.y + y.v
}
