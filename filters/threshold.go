package filters

import "github.com/soypat/pixkern"

// DefaultThreshold is the level the two-color operator compares the channel average against.
const DefaultThreshold = 127

// NewThreshold creates the two-colorize operator: pixels whose R,G,B average
// is strictly greater than [DefaultThreshold] become white, all others black.
func NewThreshold() *PointFilter {
	return NewThresholdLevel(DefaultThreshold)
}

// NewThresholdLevel is [NewThreshold] with an adjustable level.
func NewThresholdLevel(level uint8) *PointFilter {
	// avg > level  <=>  r+g+b > 3*level, which avoids the fractional average.
	limit := 3 * uint32(level)
	ctrl := &pixkern.ControlOrdered[uint8]{
		Name:        "Level",
		Description: "Average above which a pixel turns white",
		Value:       level,
		Min:         0,
		Max:         255,
		Step:        1,
		OnChange: func(v uint8) error {
			limit = 3 * uint32(v)
			return nil
		},
	}
	return newRGBAPoint(func(r, g, b uint8) (uint8, uint8, uint8) {
		if uint32(r)+uint32(g)+uint32(b) > limit {
			return 255, 255, 255
		}
		return 0, 0, 0
	}, ctrl)
}
