package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Format names one of the five textual representations.
type Format int

const (
	FormatHex Format = iota
	FormatRGB
	FormatHSL
	FormatRGBA
	FormatHSLA
)

// Formats lists every representation in display order.
var Formats = []Format{FormatHex, FormatRGB, FormatRGBA, FormatHSL, FormatHSLA}

func (f Format) String() string {
	switch f {
	case FormatHex:
		return "HEX"
	case FormatRGB:
		return "RGB"
	case FormatHSL:
		return "HSL"
	case FormatRGBA:
		return "RGBA"
	case FormatHSLA:
		return "HSLA"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseError reports text that is not a valid color in the expected format.
// Only HEX, RGB and HSL are ever parsed.
type ParseError struct {
	Format Format
	Input  string
}

func (e *ParseError) Error() string {
	switch e.Format {
	case FormatHex:
		return "Invalid HEX color format"
	case FormatRGB:
		return "Invalid RGB color format. Use: rgb(r, g, b)"
	case FormatHSL:
		return "Invalid HSL color format. Use: hsl(h, s%, l%)"
	default:
		return fmt.Sprintf("Invalid %s color format", e.Format)
	}
}

var (
	hexPattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)
	// Unanchored and alpha-agnostic: "rgba(1, 2, 3, 0.4)" parses as rgb(1, 2, 3).
	rgbPattern = regexp.MustCompile(`(?i)rgba?\((\d+),\s*(\d+),\s*(\d+)`)
	hslPattern = regexp.MustCompile(`(?i)hsla?\((\d+),\s*(\d+)%,\s*(\d+)%`)
)

// ParseHex parses a 6-digit hex color with an optional leading '#'.
// The 3-digit short form is rejected.
func ParseHex(text string) (RGB, error) {
	m := hexPattern.FindStringSubmatch(text)
	if m == nil {
		return RGB{}, &ParseError{Format: FormatHex, Input: text}
	}
	var ch [3]int
	for i := range ch {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, &ParseError{Format: FormatHex, Input: text}
		}
		ch[i] = int(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ParseRGB reads the first three integers of an rgb() or rgba() expression.
// Any alpha component in the text is ignored.
func ParseRGB(text string) (RGB, error) {
	ch, ok := matchInts(rgbPattern, text)
	if !ok {
		return RGB{}, &ParseError{Format: FormatRGB, Input: text}
	}
	c := RGB{R: ch[0], G: ch[1], B: ch[2]}
	if !c.Valid() {
		return RGB{}, &ParseError{Format: FormatRGB, Input: text}
	}
	return c, nil
}

// ParseHSL reads hue, saturation and lightness from an hsl() or hsla()
// expression. Saturation and lightness require a '%' suffix; alpha is ignored.
func ParseHSL(text string) (HSL, error) {
	ch, ok := matchInts(hslPattern, text)
	if !ok {
		return HSL{}, &ParseError{Format: FormatHSL, Input: text}
	}
	c := HSL{H: ch[0], S: ch[1], L: ch[2]}
	if !c.Valid() {
		return HSL{}, &ParseError{Format: FormatHSL, Input: text}
	}
	return c, nil
}

func matchInts(re *regexp.Regexp, text string) ([3]int, bool) {
	var out [3]int
	m := re.FindStringSubmatch(text)
	if m == nil {
		return out, false
	}
	for i := range out {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return out, false
		}
		out[i] = v
	}
	return out, true
}

// RGBToHex renders c as lowercase "#rrggbb".
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RenderRGB renders c as "rgb(r, g, b)".
func RenderRGB(c RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// RenderRGBA renders c and alpha as "rgba(r, g, b, a)".
func RenderRGBA(c RGB, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, FormatAlpha(alpha))
}

// RenderHSL renders c as "hsl(h, s%, l%)".
func RenderHSL(c HSL) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// RenderHSLA renders c and alpha as "hsla(h, s%, l%, a)".
func RenderHSLA(c HSL, alpha float64) string {
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", c.H, c.S, c.L, FormatAlpha(alpha))
}

// FormatAlpha renders alpha in its shortest decimal form: 1, 0.5, 0.07.
func FormatAlpha(alpha float64) string {
	return strconv.FormatFloat(alpha, 'f', -1, 64)
}

// AlphaStep is the slider granularity.
const AlphaStep = 0.01

// ClampAlpha bounds alpha to [0, 1] and snaps it to AlphaStep.
func ClampAlpha(alpha float64) float64 {
	if math.IsNaN(alpha) || alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 1
	}
	return math.Round(alpha*100) / 100
}

// Sniff guesses which base representation text is written in. It is used by
// the UI to route pasted text; it does not validate.
func Sniff(text string) (Format, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(t, "#"):
		return FormatHex, true
	case strings.HasPrefix(t, "rgb"):
		return FormatRGB, true
	case strings.HasPrefix(t, "hsl"):
		return FormatHSL, true
	case hexPattern.MatchString(t):
		return FormatHex, true
	}
	return FormatHex, false
}
