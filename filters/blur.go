package filters

import "github.com/soypat/pixkern"

// Kernel3 is a 3x3 convolution weight matrix indexed [row][column],
// centered on the output pixel.
type Kernel3 [3][3]float64

// Sum returns the total weight of the kernel.
func (k Kernel3) Sum() (s float64) {
	for _, row := range k {
		for _, w := range row {
			s += w
		}
	}
	return s
}

// GaussianKernel returns the 3x3 binomial approximation of a Gaussian:
//
//	[1 2 1]
//	[2 4 2] / 16
//	[1 2 1]
func GaussianKernel() Kernel3 {
	return Kernel3{
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
		{2.0 / 16, 4.0 / 16, 2.0 / 16},
		{1.0 / 16, 2.0 / 16, 1.0 / 16},
	}
}

// NewBlur creates the 3x3 Gaussian blur operator.
func NewBlur() *NeighborFilter {
	return NewConvolve3(GaussianKernel())
}

// NewConvolve3 convolves R, G and B with k. Kernel cells that fall outside the
// image are skipped and the remaining weights are not renormalized, so border
// pixels receive only part of the total weight. Sums are clamped to [0,255]
// and truncated. Alpha is copied from the center pixel.
func NewConvolve3(k Kernel3) *NeighborFilter {
	return &NeighborFilter{
		Fn: func(dst []byte, src *pixkern.Buffer, y, x0, x1 int) {
			pix := src.Pix()
			for x := x0; x < x1; x++ {
				var r, g, b float64
				for i := -1; i <= 1; i++ {
					for j := -1; j <= 1; j++ {
						if !src.In(x+j, y+i) {
							continue
						}
						w := k[i+1][j+1]
						s := pix[src.Offset(x+j, y+i):]
						r += float64(s[0]) * w
						g += float64(s[1]) * w
						b += float64(s[2]) * w
					}
				}
				o := (x - x0) * pixkern.BytesPerPixel
				dst[o] = truncSample(r)
				dst[o+1] = truncSample(g)
				dst[o+2] = truncSample(b)
				dst[o+3] = pix[src.Offset(x, y)+3]
			}
		},
	}
}
