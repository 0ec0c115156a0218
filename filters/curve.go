package filters

import (
	"cmp"
	"slices"

	"github.com/soypat/geometry/ms1"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/pixkern"
)

// NewCurve creates a tone curve filter applying the same curve to R, G and B.
// Levels between control points are linearly interpolated and levels outside
// the first and last point hold that point's output. No points is the identity.
func NewCurve(points []pixkern.CurvePoint) *PointFilter {
	lut := curveLUT(points)
	ctrl := &pixkern.ControlCurve{
		Name:        "Curve",
		Description: "Input to output level mapping",
		Points:      points,
		OnChange: func(p []pixkern.CurvePoint) error {
			lut = curveLUT(p)
			return nil
		},
	}
	return newRGBAPoint(func(r, g, b uint8) (uint8, uint8, uint8) {
		return lut[r], lut[g], lut[b]
	}, ctrl)
}

func curveLUT(points []pixkern.CurvePoint) (lut [256]uint8) {
	pts := make([]ms2.Vec, len(points))
	for i, p := range points {
		pts[i] = ms2.ClampElem(p, ms2.Vec{}, ms2.Vec{X: 1, Y: 1})
	}
	slices.SortStableFunc(pts, func(a, b ms2.Vec) int { return cmp.Compare(a.X, b.X) })
	for v := range lut {
		x := float32(v) / 255
		var y float32
		switch {
		case len(pts) == 0:
			y = x
		case x <= pts[0].X:
			y = pts[0].Y
		case x >= pts[len(pts)-1].X:
			y = pts[len(pts)-1].Y
		default:
			i, _ := slices.BinarySearchFunc(pts, x, func(p ms2.Vec, x float32) int { return cmp.Compare(p.X, x) })
			// pts[i-1].X < x <= pts[i].X
			lo, hi := pts[i-1], pts[i]
			seg := ms2.Sub(hi, lo)
			y = ms1.Interp(lo.Y, hi.Y, (x-lo.X)/seg.X)
		}
		lut[v] = uint8(ms1.Clamp(y, 0, 1)*255 + 0.5)
	}
	return lut
}
