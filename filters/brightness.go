package filters

import "github.com/soypat/pixkern"

// BrightnessStep is the factor the brighten and darken operators scale R, G and B by.
const BrightnessStep = 1.1

// NewBrighten multiplies R, G and B by [BrightnessStep].
func NewBrighten() *PointFilter {
	return NewScale(BrightnessStep)
}

// NewDarken divides R, G and B by [BrightnessStep].
func NewDarken() *PointFilter {
	return NewDivide(BrightnessStep)
}

// NewScale creates a filter that multiplies R, G and B by factor.
// Products are clamped to [0,255] and truncated toward zero.
func NewScale(factor float64) *PointFilter {
	return newScaleFilter("Factor", "Multiplier applied to R, G and B", factor, false)
}

// NewDivide creates a filter that divides R, G and B by divisor.
// Quotients are clamped to [0,255] and truncated toward zero.
func NewDivide(divisor float64) *PointFilter {
	return newScaleFilter("Divisor", "Divisor applied to R, G and B", divisor, true)
}

func newScaleFilter(name, desc string, k float64, divide bool) *PointFilter {
	ctrl := &pixkern.ControlOrdered[float64]{
		Name:        name,
		Description: desc,
		Value:       k,
		Min:         0.01,
		Max:         8,
		Step:        0.01,
	}
	ctrl.OnChange = func(v float64) error {
		k = v
		return nil
	}
	scale := func(v uint8) uint8 {
		if divide {
			return truncSample(float64(v) / k)
		}
		return truncSample(float64(v) * k)
	}
	return newRGBAPoint(func(r, g, b uint8) (uint8, uint8, uint8) {
		return scale(r), scale(g), scale(b)
	}, ctrl)
}
