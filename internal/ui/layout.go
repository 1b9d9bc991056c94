package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the swatch moves under the fields.
	LayoutCompactWidth = 90
)

// Converter geometry.
const (
	LabelWidth    = 6
	FieldWidth    = 32
	SwatchWidth   = 26
	SwatchHeight  = 7
	AlphaBarWidth = 20
)

// Picker geometry.
const (
	PickerColumns    = 12
	PickerSaturation = 0.85
	PickerCellWidth  = 4
)

// PickerLightness lists the lightness of each hue row, dark to light. The
// last picker row holds shades of the current color.
var PickerLightness = []float64{0.25, 0.4, 0.5, 0.6, 0.75}

// Timing constants.
const (
	// CopyNoticeDuration is how long the copied marker stays visible.
	CopyNoticeDuration = 2 * time.Second

	// TrackTimeout bounds the usage call made when the converter opens.
	TrackTimeout = 3 * time.Second

	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second
)

// LogTailLines is how many lines of the log file the Log view reads.
const LogTailLines = 200

// Usage identity of the converter tool.
const (
	ConverterToolID   = "color-converter"
	ConverterToolName = "Color Converter"
)

// Alpha slider steps.
const (
	AlphaFineStep   = 0.01
	AlphaCoarseStep = 0.1
)
