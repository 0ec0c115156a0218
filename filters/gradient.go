package filters

import "github.com/soypat/pixkern"

// NewGradient creates the differential operator. Each output channel is the
// absolute difference between the pixel and its upper-left diagonal neighbor.
// The first row and first column have no such neighbor and are written as
// opaque black. Output alpha is always 255.
func NewGradient() *NeighborFilter {
	return &NeighborFilter{
		Fn: func(dst []byte, src *pixkern.Buffer, y, x0, x1 int) {
			pix := src.Pix()
			for x := x0; x < x1; x++ {
				o := (x - x0) * pixkern.BytesPerPixel
				d := dst[o : o+4 : o+4]
				d[3] = 255
				if x == 0 || y == 0 {
					d[0], d[1], d[2] = 0, 0, 0
					continue
				}
				c := pix[src.Offset(x, y):]
				n := pix[src.Offset(x-1, y-1):]
				d[0] = absDiff(c[0], n[0])
				d[1] = absDiff(c[1], n[1])
				d[2] = absDiff(c[2], n[2])
			}
		},
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
