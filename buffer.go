package pixkern

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"
)

// BytesPerPixel is the sample count of one RGBA8888 pixel.
const BytesPerPixel = 4

// Buffer is a packed row-major RGBA8888 raster. It implements [ImageBuffered].
//
// Operators in the filters package never modify a Buffer handed to them
// through Apply: each call returns a newly allocated Buffer.
type Buffer struct {
	width  int
	height int
	pix    []byte
}

var _ ImageBuffered = (*Buffer)(nil)

// NewBuffer wraps samples as a width x height buffer. samples is not copied
// and must hold exactly width*height*4 bytes.
func NewBuffer(width, height uint32, samples []byte) (*Buffer, error) {
	n, err := bufferLen(width, height)
	if err != nil {
		return nil, err
	} else if uint64(len(samples)) != n {
		return nil, ErrInvalidBuffer
	}
	return &Buffer{width: int(width), height: int(height), pix: samples}, nil
}

// NewBufferSize allocates a zeroed (transparent black) width x height buffer.
func NewBufferSize(width, height uint32) (*Buffer, error) {
	n, err := bufferLen(width, height)
	if err != nil {
		return nil, err
	}
	return &Buffer{width: int(width), height: int(height), pix: make([]byte, n)}, nil
}

func bufferLen(width, height uint32) (uint64, error) {
	if width == 0 || height == 0 {
		return 0, ErrInvalidDimensions
	}
	n := uint64(width) * uint64(height) * BytesPerPixel
	if n > math.MaxInt {
		return 0, ErrInvalidBuffer
	}
	return n, nil
}

// newBlank allocates an output buffer for already validated dimensions.
func newBlank(width, height int) *Buffer {
	return &Buffer{width: width, height: height, pix: make([]byte, width*height*BytesPerPixel)}
}

// NewBlankLike allocates a zeroed buffer with the same dimensions as b.
func NewBlankLike(b *Buffer) *Buffer {
	return newBlank(b.width, b.height)
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Pix returns the raw samples. Writes through the returned slice modify b.
func (b *Buffer) Pix() []byte { return b.pix }

// Offset returns the index of the R sample of pixel (x,y). Bounds are not checked.
func (b *Buffer) Offset(x, y int) int {
	return y*b.width*BytesPerPixel + x*BytesPerPixel
}

// In reports whether (x,y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Dims implements [Image].
func (b *Buffer) Dims() Dims {
	return Dims{
		Width:  b.width,
		Height: b.height,
		Stride: b.width * BytesPerPixel,
		Shape:  ShapeRGBA8888,
	}
}

// Buffer implements [ImageBuffered].
func (b *Buffer) Buffer() []byte { return b.pix }

// ReadAt implements [io.ReaderAt].
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errNegativeOffset
	} else if off >= int64(len(b.pix)) {
		return 0, io.EOF
	}
	n := copy(p, b.pix[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// RGBAAt returns the color of pixel (x,y). Bounds are not checked.
func (b *Buffer) RGBAAt(x, y int) color.RGBA {
	i := b.Offset(x, y)
	s := b.pix[i : i+4 : i+4]
	return color.RGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// SetRGBA sets pixel (x,y) to c. Bounds are not checked.
func (b *Buffer) SetRGBA(x, y int, c color.RGBA) {
	i := b.Offset(x, y)
	s := b.pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{width: b.width, height: b.height, pix: bytes.Clone(b.pix)}
}

// Equal reports whether b and other have the same dimensions and samples.
func (b *Buffer) Equal(other *Buffer) bool {
	return b.width == other.width && b.height == other.height && bytes.Equal(b.pix, other.pix)
}

// FromNRGBA copies img into a new Buffer. Both store non-premultiplied
// R,G,B,A samples so rows are copied verbatim.
func FromNRGBA(img *image.NRGBA) (*Buffer, error) {
	r := img.Bounds()
	if r.Empty() {
		return nil, ErrInvalidDimensions
	}
	out := newBlank(r.Dx(), r.Dy())
	rowLen := r.Dx() * BytesPerPixel
	for y := 0; y < out.height; y++ {
		src := img.Pix[img.PixOffset(r.Min.X, r.Min.Y+y):]
		copy(out.pix[y*rowLen:(y+1)*rowLen], src[:rowLen])
	}
	return out, nil
}

// NRGBA returns a copy of b as an image.NRGBA with origin at (0,0).
func (b *Buffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}
