// Package color implements the color model converter behind prism's main view.
//
// # Overview
//
// The converter keeps five textual renderings of one color in sync: HEX, RGB,
// HSL, RGBA and HSLA. The last two combine the base color with an alpha scalar
// that is edited separately (a slider in the UI). Editing any one of HEX, RGB or
// HSL recomputes the other four; moving the alpha slider rewrites RGBA and HSLA
// only.
//
// # Architecture
//
//   - model.go: RGB and HSL value types and the conversion algorithms
//   - format.go: parse/render pairs for each textual representation
//   - state.go: the immutable State value and its pure update functions
//   - converter.go: the mutable Converter owned by a single UI component
//   - palette.go: picker palette and swatch contrast helpers (go-colorful)
//
// # Parse and Render
//
// Each representation has a total parse function and a render function:
//
//	ParseHex("#3B82F6")          → RGB{59, 130, 246}, nil
//	RenderRGB(RGB{59, 130, 246}) → "rgb(59, 130, 246)"
//	ParseHSL("hsl(1, 2, 3)")     → HSL{}, *ParseError{Format: FormatHSL}
//
// Validation of an edited field is render∘parse; derived fields only use render.
//
// # Update Semantics
//
//	// Success: the edited text is kept verbatim, the other four are rendered.
//	s, err := s.WithRGB("rgb(255, 0, 0)")
//	→ s.Hex  = "#ff0000"
//	→ s.HSL  = "hsl(0, 100%, 50%)"
//	→ s.RGBA = "rgba(255, 0, 0, 1)"
//
//	// Failure: the previous state is returned byte-for-byte unchanged.
//	s2, err := s.WithRGB("not rgb")
//	→ s2 == s
//	→ err.Error() == "Invalid RGB color format. Use: rgb(r, g, b)"
//
// # Rounding
//
// All float-to-integer steps round half up, so 127.5 becomes 128. Banker's
// rounding is never used.
//
// # Concurrency
//
// State is a plain value and is safe to copy. Converter is not synchronized; it is
// meant to be owned by one Bubble Tea model and mutated only from Update.
package color
