package color

// State is one color in all five textual renderings plus its alpha.
//
// The rgb and hsl fields hold the values the texts were rendered from; RGBA
// and HSLA are always rebuilt from them so an alpha change never has to
// re-parse user text.
type State struct {
	Hex  string
	RGB  string
	HSL  string
	RGBA string
	HSLA string

	Alpha float64

	rgb RGB
	hsl HSL
}

// DefaultState returns the state a converter starts in: #3b82f6 at alpha 1.
func DefaultState() State {
	return NewState(DefaultRGB, 1)
}

// NewState renders every field from c and alpha.
func NewState(c RGB, alpha float64) State {
	hsl := RGBToHSL(c)
	alpha = ClampAlpha(alpha)
	return State{
		Hex:   RGBToHex(c),
		RGB:   RenderRGB(c),
		HSL:   RenderHSL(hsl),
		RGBA:  RenderRGBA(c, alpha),
		HSLA:  RenderHSLA(hsl, alpha),
		Alpha: alpha,
		rgb:   c,
		hsl:   hsl,
	}
}

// Color returns the RGB value behind the texts.
func (s State) Color() RGB { return s.rgb }

// HSLColor returns the HSL value behind the texts.
func (s State) HSLColor() HSL { return s.hsl }

// Text returns the rendering for f verbatim, as a copy action would read it.
func (s State) Text(f Format) string {
	switch f {
	case FormatRGB:
		return s.RGB
	case FormatHSL:
		return s.HSL
	case FormatRGBA:
		return s.RGBA
	case FormatHSLA:
		return s.HSLA
	default:
		return s.Hex
	}
}

// WithHex applies an edit to the HEX field. On error s is returned unchanged.
func (s State) WithHex(text string) (State, error) {
	c, err := ParseHex(text)
	if err != nil {
		return s, err
	}
	hsl := RGBToHSL(c)
	s.Hex = text
	s.RGB = RenderRGB(c)
	s.HSL = RenderHSL(hsl)
	s.rgb, s.hsl = c, hsl
	return s.withAlphaTexts(), nil
}

// WithRGB applies an edit to the RGB field. On error s is returned unchanged.
func (s State) WithRGB(text string) (State, error) {
	c, err := ParseRGB(text)
	if err != nil {
		return s, err
	}
	hsl := RGBToHSL(c)
	s.Hex = RGBToHex(c)
	s.RGB = text
	s.HSL = RenderHSL(hsl)
	s.rgb, s.hsl = c, hsl
	return s.withAlphaTexts(), nil
}

// WithHSL applies an edit to the HSL field. The HSLA text keeps the entered
// hue, saturation and lightness rather than a round trip through RGB.
func (s State) WithHSL(text string) (State, error) {
	hsl, err := ParseHSL(text)
	if err != nil {
		return s, err
	}
	c := HSLToRGB(hsl)
	s.Hex = RGBToHex(c)
	s.RGB = RenderRGB(c)
	s.HSL = text
	s.rgb, s.hsl = c, hsl
	return s.withAlphaTexts(), nil
}

// WithAlpha changes alpha and rewrites only RGBA and HSLA.
func (s State) WithAlpha(alpha float64) State {
	s.Alpha = ClampAlpha(alpha)
	return s.withAlphaTexts()
}

func (s State) withAlphaTexts() State {
	s.RGBA = RenderRGBA(s.rgb, s.Alpha)
	s.HSLA = RenderHSLA(s.hsl, s.Alpha)
	return s
}
