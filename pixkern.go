// Package pixkern holds the in-memory RGBA raster [Buffer] and the low-level
// [Image] and [Filter] contracts the operators in pixkern/filters implement.
//
// A Buffer is packed row-major RGBA8888: pixel (x,y) starts at sample
// y*width*4 + x*4. Operators read one buffer and return a new one, so chains
// of operators never alias.
package pixkern

import (
	"errors"
	"image"
	"io"
)

// Image is a low-level, whole-buffer image access abstraction of raw memory.
// Rows are homogeneously spaced by Dims().Stride bytes.
type Image interface {
	// Dims returns information on in-memory image structure.
	Dims() Dims
	// ReadAt reads from the image buffer of pixels.
	//
	// Filters first try casting [Image] to [ImageBuffered]
	// and only fall back to ReadAt when no buffer is available.
	io.ReaderAt
}

// ImageBuffered is an [Image] whose samples live in memory.
type ImageBuffered interface {
	Image
	// Buffer returns the entire raw underlying buffer or nil to signal the
	// buffer is currently not in memory.
	Buffer() []byte
}

// Filter is the low-level image operator contract. All pixkern operators
// implement it.
type Filter interface {
	// ShapeIO returns expected output and input [Shape] of the filter.
	// output shape MUST match Process [Dims.Shape] output.
	ShapeIO() (output, input Shape)
	// Process reads src and writes the result to dst, returning the
	// dimensions of the resulting image.
	//
	// A nil dst requests in-place operation over [ImageBuffered.Buffer];
	// filters that read neighboring pixels reject in-place requests.
	// Use [ValidateProcessArgs] to acquire dst buffer and validate arguments.
	Process(dstOrNilForInPlace []byte, src Image, roi *image.Rectangle) (Dims, error)
	// Controls returns the adjustable parameters of the filter.
	Controls() []Control
}

type Shape int

const (
	shapeUndefined     Shape = iota // undefined
	ShapeRGB888                     // rgb888
	ShapeRGBA8888                   // rgba8888
	ShapeGrayscale8bit              // gray8
	ShapeMonochrome                 // monochrome
)

func (sh Shape) String() string {
	switch sh {
	case ShapeRGB888:
		return "rgb888"
	case ShapeRGBA8888:
		return "rgba8888"
	case ShapeGrayscale8bit:
		return "gray8"
	case ShapeMonochrome:
		return "monochrome"
	}
	return "undefined"
}

func (sh Shape) BitsPerPixel() (bits int) {
	switch sh {
	default:
		bits = -1
	case ShapeRGBA8888:
		bits = 32
	case ShapeRGB888:
		bits = 24
	case ShapeGrayscale8bit:
		bits = 8
	case ShapeMonochrome:
		bits = 1
	}
	return bits
}

// BytesPerPixel returns the whole number of bytes one pixel occupies,
// rounding sub-byte shapes up.
func (sh Shape) BytesPerPixel() int {
	return (sh.BitsPerPixel() + 7) / 8
}

type Dims struct {
	Width  int
	Height int
	Stride int
	Shape  Shape
}

func (d Dims) Validate() error {
	pixbits := d.Shape.BitsPerPixel()
	if d.Height <= 0 || d.Width <= 0 {
		return ErrInvalidDimensions
	} else if pixbits < 1 {
		return errors.New("bad pixel shape")
	} else if (d.Width*pixbits+7)/8 > d.Stride {
		return errors.New("stride smaller than pixel row size")
	}
	return nil
}

func (d Dims) NumPixels() int64 {
	return int64(d.Height) * int64(d.Width)
}

// Size returns the readable section size of raw image in bytes.
func (d Dims) Size() int64 {
	if d.Height == 0 || d.Width == 0 {
		return 0
	}
	return int64(d.Height-1)*int64(d.Stride) + int64(d.SizeRow())
}

func (d Dims) SizeRow() int {
	return (d.Width*d.Shape.BitsPerPixel() + 7) / 8
}

// ImageRow returns the bytes of a single row of img. The returned slice
// aliases the image buffer when img is an [ImageBuffered], otherwise it is
// dst resliced and filled through ReadAt.
func ImageRow(dst []byte, img Image, row int) (resultSized []byte, err error) {
	d := img.Dims()
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	rowLenBytes := d.SizeRow()
	if len(dst) < rowLenBytes {
		return nil, io.ErrShortBuffer
	} else if row < 0 || row >= d.Height {
		return nil, errors.New("row out of bounds")
	}
	off := int64(row) * int64(d.Stride)
	if buffered, ok := img.(ImageBuffered); ok {
		buf := buffered.Buffer()
		if buf != nil {
			return buf[off : off+int64(rowLenBytes)], nil
		}
	}
	resultSized = dst[:rowLenBytes]
	n, err := img.ReadAt(resultSized, off)
	if n != rowLenBytes {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return resultSized, nil
}

// ReadBuffer returns the whole of img as a [Buffer]. Buffered RGBA8888 images
// with packed rows are wrapped without copying; anything else is read row by row.
func ReadBuffer(img Image) (*Buffer, error) {
	if b, ok := img.(*Buffer); ok {
		return b, nil
	}
	d := img.Dims()
	if err := d.Validate(); err != nil {
		return nil, err
	} else if d.Shape != ShapeRGBA8888 {
		return nil, errShapeNotRGBA
	}
	rowLen := d.SizeRow()
	if buffered, ok := img.(ImageBuffered); ok && d.Stride == rowLen {
		if buf := buffered.Buffer(); int64(len(buf)) >= d.Size() {
			return &Buffer{width: d.Width, height: d.Height, pix: buf[:d.Size()]}, nil
		}
	}
	out := &Buffer{width: d.Width, height: d.Height, pix: make([]byte, d.Height*rowLen)}
	for y := 0; y < d.Height; y++ {
		dst := out.pix[y*rowLen : (y+1)*rowLen]
		row, err := ImageRow(dst, img, y)
		if err != nil {
			return nil, err
		}
		copy(dst, row) // No-op when ImageRow filled dst itself.
	}
	return out, nil
}

// ValidateProcessArgs gets correct write destination buffer and
// provides basic guarantees of inputs to Filter such as:
//   - Source [Dims.Validate] early validation. Always returned as called.
//   - Valid ROI argument.
//   - Valid input image for buffered in-place operations. In-place rejects non-nil ROI.
//   - shape match for in-place operations.
//   - For callers who know the output stride and height, a dst buffer size check.
//     Use dstDims.Stride=0 to omit this check.
//
// dstDims.Shape must be set to support in-place operations. Other fields are optional but provide buffer size checks.
func ValidateProcessArgs(dst []byte, dstDims Dims, src Image, roi *image.Rectangle) (_ []byte, srcDims Dims, err error) {
	srcDims = src.Dims()
	if err = srcDims.Validate(); err != nil {
		return nil, srcDims, err
	}
	var requiredMinDstSize int64
	if roi != nil {
		if roi.Max.X < 0 || roi.Min.X < 0 || roi.Min.Y < 0 || roi.Max.Y < 0 {
			return nil, srcDims, errors.New("negative ROI")
		} else if roi.Max.X > srcDims.Width || roi.Max.Y > srcDims.Height {
			return nil, srcDims, errors.New("ROI exceeds image bounds")
		} else if roi.Empty() {
			return nil, srcDims, errors.New("empty ROI")
		}
		requiredMinDstSize = int64(dstDims.Stride) * int64(roi.Dy())
	} else {
		requiredMinDstSize = int64(dstDims.Stride) * int64(dstDims.Height)
	}
	if dst == nil {
		if roi != nil {
			return nil, srcDims, errors.New("in-place operation does not support ROI")
		}
		if dstDims.Shape != srcDims.Shape {
			return nil, srcDims, errors.New("src must match filter output shape for in-place op")
		}
		buffered, ok := src.(ImageBuffered)
		if !ok {
			return nil, srcDims, errors.New("src does not implement ImageBuffered for in-place op")
		}
		buf := buffered.Buffer()
		if buf == nil {
			return nil, srcDims, errors.New("src returned nil buffer on in-place op")
		} else if len(buf) < int(srcDims.Size()) {
			return nil, srcDims, ErrInvalidBuffer
		}
		dst = buf
	}
	if int64(len(dst)) < requiredMinDstSize {
		return dst, srcDims, errors.New("destination buffer not large enough to store output")
	}
	return dst, srcDims, nil
}

// Apply runs f over the whole of src and returns the result in a newly
// allocated [Buffer] of the same dimensions. src is never written to.
func Apply(f Filter, src Image) (*Buffer, error) {
	if src == nil {
		return nil, ErrInvalidBuffer
	} else if b, ok := src.(*Buffer); ok && b == nil {
		return nil, ErrInvalidBuffer
	}
	d := src.Dims()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out, _ := f.ShapeIO()
	if out != ShapeRGBA8888 {
		return nil, errShapeNotRGBA
	}
	dst := newBlank(d.Width, d.Height)
	got, err := f.Process(dst.pix, src, nil)
	if err != nil {
		return nil, err
	} else if got.Width != d.Width || got.Height != d.Height {
		return nil, errors.New("filter output dimensions differ from input")
	}
	return dst, nil
}
