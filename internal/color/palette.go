package color

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	black = RGB{}
	white = RGB{R: channelMax, G: channelMax, B: channelMax}
)

// Palette returns n colors with evenly spaced hues at the given saturation and
// lightness (both in [0, 1]). It backs the picker grid.
func Palette(n int, saturation, lightness float64) []RGB {
	if n <= 0 {
		return nil
	}
	out := make([]RGB, n)
	for i := range out {
		hue := float64(i) * hueMax / float64(n)
		out[i] = fromColorful(colorful.Hsl(hue, saturation, lightness))
	}
	return out
}

// Shades returns n colors of c's hue and saturation from dark to light, both
// ends excluded.
func Shades(c RGB, n int) []RGB {
	if n <= 0 {
		return nil
	}
	h, s, _ := toColorful(c).Hsl()
	out := make([]RGB, n)
	for i := range out {
		l := float64(i+1) / float64(n+1)
		out[i] = fromColorful(colorful.Hsl(h, s, l))
	}
	return out
}

// Luminance returns the WCAG relative luminance of c.
func Luminance(c RGB) float64 {
	_, y, _ := toColorful(c).Xyz()
	return y
}

// ContrastRatio returns the WCAG contrast ratio between a and b, from 1 to 21.
func ContrastRatio(a, b RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// Contrast picks black or white, whichever reads better on top of c.
func Contrast(c RGB) RGB {
	if ContrastRatio(c, black) >= ContrastRatio(c, white) {
		return black
	}
	return white
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / channelMax,
		G: float64(c.G) / channelMax,
		B: float64(c.B) / channelMax,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}
}

// Blend composites c at the given alpha over bg. Terminals have no alpha
// channel, so the UI previews translucent colors this way.
func Blend(c, bg RGB, alpha float64) RGB {
	return fromColorful(toColorful(bg).BlendRgb(toColorful(c), ClampAlpha(alpha)))
}
