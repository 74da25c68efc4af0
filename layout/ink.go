package layout

import "github.com/zeptools/gw-invoice/colors"

// Ink names a color either by role (taken from the invoice) or by value.
// The zero Ink is unset: black for text and lines, not painted for rectangles.
type Ink struct {
	role inkRole
	rgb  colors.RGB
}

type inkRole uint8

const (
	inkUnset inkRole = iota
	inkFixed
	inkPrimary
	inkSecondary
)

var (
	Primary   = Ink{role: inkPrimary}
	Secondary = Ink{role: inkSecondary}
	White     = Fixed(colors.White)
	Black     = Fixed(colors.Black)
)

func Fixed(c colors.RGB) Ink {
	return Ink{role: inkFixed, rgb: c}
}

func Gray(v float64) Ink {
	return Fixed(colors.Gray(v))
}

func RGB(r, g, b float64) Ink {
	return Fixed(colors.RGB{R: r, G: g, B: b})
}

func (i Ink) set() bool {
	return i.role != inkUnset
}

// Palette - the two invoice colors after parsing
type Palette struct {
	Primary   colors.RGB
	Secondary colors.RGB
}

func NewPalette(primaryHex string, secondaryHex string) Palette {
	return Palette{
		Primary:   colors.HexToRGB(primaryHex),
		Secondary: colors.HexToRGB(secondaryHex),
	}
}

func (pl Palette) resolve(i Ink) colors.RGB {
	switch i.role {
	case inkFixed:
		return i.rgb
	case inkPrimary:
		return pl.Primary
	case inkSecondary:
		return pl.Secondary
	}
	return colors.Black
}

// paint returns nil for an unset ink
func (pl Palette) paint(i Ink) *colors.RGB {
	if !i.set() {
		return nil
	}
	c := pl.resolve(i)
	return &c
}
