package colors

import (
	"regexp"
	"strconv"
)

// RGB - color with channels normalized to [0,1]
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

var hexPattern = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// HexToRGB parses "#RRGGBB" or "RRGGBB" (any case).
// Anything else yields Black instead of an error.
func HexToRGB(hex string) RGB {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return Black
	}
	return RGB{
		R: channel(m[1]),
		G: channel(m[2]),
		B: channel(m[3]),
	}
}

func channel(pair string) float64 {
	v, _ := strconv.ParseUint(pair, 16, 8) // pattern guarantees two hex digits
	return float64(v) / 255
}

// Gray returns a neutral color with all channels set to v
func Gray(v float64) RGB {
	return RGB{v, v, v}
}

// Lerp interpolates each channel linearly. t=0 -> a, t=1 -> b
func Lerp(a RGB, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// Bytes converts to 0-255 channel values, rounding to nearest
func (c RGB) Bytes() (int, int, int) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v*255 + 0.5)
}
