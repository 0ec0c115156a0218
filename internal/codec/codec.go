// Package codec converts between encoded image files and [pixkern.Buffer].
//
// Decoding accepts every format registered with the image package: PNG, JPEG,
// GIF, BMP, TIFF and WebP are linked in here. Encoding is lossless only.
package codec

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/pixkern"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is a lossless output encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	}
	return "unknown"
}

var errUnsupportedFormat = errors.New("unsupported output format")

// FormatFromPath picks an output format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return 0, fmt.Errorf("%w %q", errUnsupportedFormat, filepath.Ext(path))
}

// Decode reads an image from r and returns it as a buffer with its format name.
func Decode(r io.Reader) (*pixkern.Buffer, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	buf, err := FromImage(img)
	if err != nil {
		return nil, name, err
	}
	return buf, name, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (*pixkern.Buffer, string, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer fp.Close()
	return Decode(fp)
}

// FromImage converts any image to a non-premultiplied RGBA buffer.
func FromImage(img image.Image) (*pixkern.Buffer, error) {
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		b := img.Bounds()
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return pixkern.FromNRGBA(nrgba)
}

// Encode writes buf to w in format f.
func Encode(w io.Writer, buf *pixkern.Buffer, f Format) error {
	img := buf.NRGBA()
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = errUnsupportedFormat
	}
	if err != nil {
		return fmt.Errorf("encode %v: %w", f, err)
	}
	return nil
}

// EncodeFile writes buf to path in the format implied by its extension.
func EncodeFile(path string, buf *pixkern.Buffer) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	err = Encode(fp, buf, f)
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	return err
}
