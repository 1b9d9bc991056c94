package color

import "errors"

// Converter is the mutable color model owned by one view. Each update either
// advances the state atomically or records a ParseError and leaves every text
// untouched.
type Converter struct {
	state State
	err   *ParseError
}

// NewConverter returns a converter in the default state.
func NewConverter() *Converter {
	return &Converter{state: DefaultState()}
}

// NewConverterFrom returns a converter starting at hex with alpha 1. An empty
// or invalid start falls back to the default color.
func NewConverterFrom(hex string) *Converter {
	c, err := ParseHex(hex)
	if err != nil {
		return NewConverter()
	}
	return &Converter{state: NewState(c, 1)}
}

// State returns a copy of the current state.
func (c *Converter) State() State { return c.state }

// Err returns the error from the most recent update, or nil.
func (c *Converter) Err() *ParseError { return c.err }

// UpdateFromHex applies text typed into the HEX field.
func (c *Converter) UpdateFromHex(text string) error {
	return c.apply(c.state.WithHex(text))
}

// UpdateFromRGB applies text typed into the RGB field.
func (c *Converter) UpdateFromRGB(text string) error {
	return c.apply(c.state.WithRGB(text))
}

// UpdateFromHSL applies text typed into the HSL field.
func (c *Converter) UpdateFromHSL(text string) error {
	return c.apply(c.state.WithHSL(text))
}

// UpdateFromPicker applies a color chosen from the palette. It behaves
// exactly like typing the color's hex into the HEX field.
func (c *Converter) UpdateFromPicker(rgb RGB) error {
	return c.UpdateFromHex(RGBToHex(rgb))
}

// UpdateAlpha sets alpha. It cannot fail and leaves HEX, RGB and HSL alone.
func (c *Converter) UpdateAlpha(alpha float64) {
	c.state = c.state.WithAlpha(alpha)
}

// CurrentRGB returns the color implied by the HEX text, falling back to the
// default color when that text does not parse.
func (c *Converter) CurrentRGB() RGB {
	rgb, err := ParseHex(c.state.Hex)
	if err != nil {
		return DefaultRGB
	}
	return rgb
}

func (c *Converter) apply(next State, err error) error {
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			c.err = perr
		}
		return err
	}
	c.state = next
	c.err = nil
	return nil
}
