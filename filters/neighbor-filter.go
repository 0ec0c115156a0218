package filters

import (
	"errors"
	"image"
	"runtime"

	"github.com/soypat/pixkern"
	"golang.org/x/sync/errgroup"
)

var errInPlaceNeighborhood = errors.New("neighborhood filter cannot process in place")

// NeighborFunc computes output pixels x0..x1 of row y from src.
// dst holds exactly (x1-x0) RGBA8888 pixels. Implementations must read only
// from src and guard their own window against the image bounds.
type NeighborFunc func(dst []byte, src *pixkern.Buffer, y, x0, x1 int)

// NeighborFilter applies a transformation where each output pixel depends on
// a window of input pixels around it. Output rows are computed in contiguous
// bands in parallel; every output byte belongs to exactly one band.
type NeighborFilter struct {
	Fn NeighborFunc
	// Workers bounds the number of concurrently processed row bands.
	// Zero or negative uses GOMAXPROCS.
	Workers int
	Ctrls   []pixkern.Control
}

var _ pixkern.Filter = (*NeighborFilter)(nil)

// ShapeIO implements [pixkern.Filter].
func (f *NeighborFilter) ShapeIO() (output, input pixkern.Shape) {
	return pixkern.ShapeRGBA8888, pixkern.ShapeRGBA8888
}

// Controls implements [pixkern.Filter].
func (f *NeighborFilter) Controls() []pixkern.Control {
	return f.Ctrls
}

// Apply runs the filter over src and returns a new buffer. src is not modified.
func (f *NeighborFilter) Apply(src *pixkern.Buffer) (*pixkern.Buffer, error) {
	return pixkern.Apply(f, src)
}

// Process implements [pixkern.Filter]. dst must not be nil and must not
// alias src. With a ROI the window still reads source pixels outside the ROI.
func (f *NeighborFilter) Process(dst []byte, src pixkern.Image, roi *image.Rectangle) (pixkern.Dims, error) {
	if f.Fn == nil {
		return pixkern.Dims{}, errNilPixelFunc
	} else if dst == nil {
		return pixkern.Dims{}, errInPlaceNeighborhood
	} else if src.Dims().Shape != pixkern.ShapeRGBA8888 {
		return pixkern.Dims{}, errShapeMismatch
	}
	srcDims := src.Dims()
	bounds := image.Rect(0, 0, srcDims.Width, srcDims.Height)
	if roi != nil {
		bounds = *roi
	}
	dstDims := pixkern.Dims{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Stride: bounds.Dx() * pixkern.BytesPerPixel,
		Shape:  pixkern.ShapeRGBA8888,
	}
	dst, _, err := pixkern.ValidateProcessArgs(dst, dstDims, src, roi)
	if err != nil {
		return pixkern.Dims{}, err
	}
	buf, err := pixkern.ReadBuffer(src)
	if err != nil {
		return pixkern.Dims{}, err
	}

	rows := dstDims.Height
	bands := f.Workers
	if bands <= 0 {
		bands = runtime.GOMAXPROCS(0)
	}
	bands = min(bands, rows)
	bandRows := (rows + bands - 1) / bands

	var g errgroup.Group
	for start := 0; start < rows; start += bandRows {
		end := min(start+bandRows, rows)
		g.Go(func() error {
			for y := start; y < end; y++ {
				off := y * dstDims.Stride
				f.Fn(dst[off:off+dstDims.Stride], buf, bounds.Min.Y+y, bounds.Min.X, bounds.Max.X)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pixkern.Dims{}, err
	}
	return dstDims, nil
}
