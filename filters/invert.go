package filters

// NewInvertedPerPixel creates a filter that inverts R, G and B values.
func NewInvertedPerPixel() *PointFilter {
	return newRGBAPoint(func(r, g, b uint8) (uint8, uint8, uint8) {
		return 255 - r, 255 - g, 255 - b
	})
}
