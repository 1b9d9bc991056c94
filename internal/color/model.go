package color

import (
	"fmt"
	"math"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R int
	G int
	B int
}

// HSL holds hue in degrees and saturation/lightness in whole percent.
type HSL struct {
	H int
	S int
	L int
}

// DefaultRGB is the color a new converter starts with (#3b82f6).
var DefaultRGB = RGB{R: 59, G: 130, B: 246}

const (
	channelMax    = 255
	hueMax        = 360
	percentageMax = 100
)

// Valid reports whether every channel is in [0, 255].
func (c RGB) Valid() bool {
	return inRange(c.R, channelMax) && inRange(c.G, channelMax) && inRange(c.B, channelMax)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// Valid reports whether the hue is in [0, 360] and both percentages in [0, 100].
// A hue of exactly 360 is accepted because RGBToHSL can round up to it.
func (c HSL) Valid() bool {
	return inRange(c.H, hueMax) && inRange(c.S, percentageMax) && inRange(c.L, percentageMax)
}

// RGBToHSL converts an 8-bit color to whole-number HSL.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / channelMax
	g := float64(c.G) / channelMax
	b := float64(c.B) / channelMax

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l := (hi + lo) / 2

	var h, s float64
	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}

		switch hi {
		case r:
			offset := 0.0
			if g < b {
				offset = 6
			}
			h = ((g-b)/d + offset) / 6
		case g:
			h = ((b-r)/d + 2) / 6
		case b:
			h = ((r-g)/d + 4) / 6
		}
	}

	return HSL{
		H: round(h * hueMax),
		S: round(s * percentageMax),
		L: round(l * percentageMax),
	}
}

// HSLToRGB converts whole-number HSL back to an 8-bit color.
func HSLToRGB(c HSL) RGB {
	h := float64(c.H) / hueMax
	s := float64(c.S) / percentageMax
	l := float64(c.L) / percentageMax

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q

		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}

	return RGB{
		R: round(r * channelMax),
		G: round(g * channelMax),
		B: round(b * channelMax),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// round rounds half up (127.5 -> 128).
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func inRange(v, max int) bool {
	return v >= 0 && v <= max
}
