package filters

import "github.com/soypat/pixkern"

// GrayscaleMode determines the algorithm for RGB to grayscale conversion.
type GrayscaleMode int

const (
	// GrayscaleAverage uses the truncated average: (R + G + B) / 3
	GrayscaleAverage GrayscaleMode = iota
	// GrayscaleLuminance uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
	GrayscaleLuminance
	// GrayscaleLightness uses min/max average: (max(R,G,B) + min(R,G,B)) / 2
	GrayscaleLightness
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleAverage:
		return "Average"
	case GrayscaleLuminance:
		return "Luminance"
	case GrayscaleLightness:
		return "Lightness"
	default:
		return "Unknown"
	}
}

func (m GrayscaleMode) gray(r, g, b uint8) uint8 {
	switch m {
	case GrayscaleLuminance:
		return uint8((77*uint32(r) + 150*uint32(g) + 29*uint32(b)) >> 8)
	case GrayscaleLightness:
		return uint8((uint32(min(r, g, b)) + uint32(max(r, g, b))) / 2)
	default:
		return uint8((uint32(r) + uint32(g) + uint32(b)) / 3)
	}
}

// NewGrayscale creates the grayscale operator, which writes the integer
// average of R, G and B to all three channels.
func NewGrayscale() *PointFilter {
	return NewGrayscalePerPixel(GrayscaleAverage)
}

// NewGrayscalePerPixel creates a grayscale filter with a selectable conversion mode.
func NewGrayscalePerPixel(mode GrayscaleMode) *PointFilter {
	filterMode := mode
	return newRGBAPoint(
		func(r, g, b uint8) (uint8, uint8, uint8) {
			gray := filterMode.gray(r, g, b)
			return gray, gray, gray
		},
		&pixkern.ControlEnum[GrayscaleMode]{
			Name:        "Conversion Mode",
			Description: "Algorithm for RGB to grayscale conversion",
			Value:       filterMode,
			ValidValues: []GrayscaleMode{GrayscaleAverage, GrayscaleLuminance, GrayscaleLightness},
			OnChange: func(m GrayscaleMode) error {
				filterMode = m // Picked up by the closure above on the next Process.
				return nil
			},
		},
	)
}
