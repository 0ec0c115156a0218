package filters

import (
	"errors"
	"image"

	"github.com/soypat/pixkern"
)

var errShapeMismatch = errors.New("pixel shape mismatch")

// PointFunc processes a contiguous row of pixels.
// dst and src contain the same number of pixels worth of bytes.
// The function should iterate through pixels: for i := 0; i < len(src); i += bytesPerPixel { ... }
type PointFunc func(dst, src []byte)

// PointFilter applies a per-pixel transformation using a callback function.
// It handles the iteration, buffering, and ROI logic common to all per-pixel filters.
// The callback is invoked once per row with contiguous pixel data.
type PointFilter struct {
	In    pixkern.Shape
	Out   pixkern.Shape
	Fn    PointFunc
	Ctrls []pixkern.Control // User-defined controls for this filter.
}

var _ pixkern.Filter = (*PointFilter)(nil)

// newRGBAPoint returns a PointFilter over RGBA8888 rows that calls fn with
// each pixel's R,G,B samples and copies alpha unchanged.
func newRGBAPoint(fn func(r, g, b uint8) (uint8, uint8, uint8), ctrls ...pixkern.Control) *PointFilter {
	return &PointFilter{
		In:  pixkern.ShapeRGBA8888,
		Out: pixkern.ShapeRGBA8888,
		Fn: func(dst, src []byte) {
			for i := 0; i+3 < len(src); i += 4 {
				dst[i], dst[i+1], dst[i+2] = fn(src[i], src[i+1], src[i+2])
				dst[i+3] = src[i+3]
			}
		},
		Ctrls: ctrls,
	}
}

// ShapeIO implements [pixkern.Filter].
func (f *PointFilter) ShapeIO() (output, input pixkern.Shape) {
	return f.Out, f.In
}

// Controls implements [pixkern.Filter].
func (f *PointFilter) Controls() []pixkern.Control {
	return f.Ctrls
}

// Apply runs the filter over src and returns a new buffer. src is not modified.
func (f *PointFilter) Apply(src *pixkern.Buffer) (*pixkern.Buffer, error) {
	return pixkern.Apply(f, src)
}

// Process implements [pixkern.Filter]. A nil dst processes src in place.
func (f *PointFilter) Process(dst []byte, src pixkern.Image, roi *image.Rectangle) (pixkern.Dims, error) {
	if f.Fn == nil {
		return pixkern.Dims{}, errNilPixelFunc
	}

	outShape, inShape := f.ShapeIO()
	srcDims := src.Dims()
	if srcDims.Shape != inShape {
		return pixkern.Dims{}, errShapeMismatch
	}

	inBytesPerPixel := inShape.BytesPerPixel()
	outBytesPerPixel := outShape.BytesPerPixel()

	var outWidth, outHeight int
	if roi != nil {
		outWidth, outHeight = roi.Dx(), roi.Dy()
	} else {
		outWidth, outHeight = srcDims.Width, srcDims.Height
	}
	outStride := outWidth * outBytesPerPixel

	dstDims := pixkern.Dims{
		Width:  outWidth,
		Height: outHeight,
		Stride: outStride,
		Shape:  outShape,
	}

	dst, _, err := pixkern.ValidateProcessArgs(dst, dstDims, src, roi)
	if err != nil {
		return pixkern.Dims{}, err
	}

	startX, startY := 0, 0
	endX, endY := srcDims.Width, srcDims.Height
	if roi != nil {
		startX, startY = roi.Min.X, roi.Min.Y
		endX, endY = roi.Max.X, roi.Max.Y
	}

	rowBuf := make([]byte, srcDims.SizeRow()) // Fallback buffer for ReadAt.
	for y := startY; y < endY; y++ {
		srcRow, err := pixkern.ImageRow(rowBuf, src, y)
		if err != nil {
			return pixkern.Dims{}, err
		}

		dstRowStart := (y - startY) * outStride
		srcStart := startX * inBytesPerPixel
		srcEnd := endX * inBytesPerPixel

		f.Fn(dst[dstRowStart:dstRowStart+outStride], srcRow[srcStart:srcEnd])
	}

	return dstDims, nil
}

var errNilPixelFunc = errorString("nil PixelFunc")

type errorString string

func (e errorString) Error() string { return string(e) }

// truncSample clamps v to [0,255] and truncates toward zero.
func truncSample(v float64) uint8 {
	if v <= 0 {
		return 0
	} else if v >= 255 {
		return 255
	}
	return uint8(v)
}
