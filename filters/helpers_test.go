package filters

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/pixkern"
	"github.com/soypat/pixkern/internal/codec"
)

// GenerateRandomSquares creates a buffer with random colored squares on an opaque black background.
func GenerateRandomSquares(rng *rand.Rand, width, height, numSquares, minSize, maxSize int) *pixkern.Buffer {
	img, _ := pixkern.NewBufferSize(uint32(width), uint32(height))
	pix := img.Pix()
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	for i := 0; i < numSquares; i++ {
		size := minSize + rng.Intn(maxSize-minSize+1)
		x := rng.Intn(width)
		y := rng.Intn(height)
		r := uint8(64 + rng.Intn(192))
		g := uint8(64 + rng.Intn(192))
		b := uint8(64 + rng.Intn(192))
		fillRect(img, x, y, size, size, r, g, b, 255)
	}
	return img
}

// randomNoise returns a buffer with every sample, alpha included, drawn uniformly.
func randomNoise(rng *rand.Rand, width, height int) *pixkern.Buffer {
	img, _ := pixkern.NewBufferSize(uint32(width), uint32(height))
	rng.Read(img.Pix())
	return img
}

func fillRect(img *pixkern.Buffer, x, y, w, h int, r, g, b, a uint8) {
	pix := img.Pix()
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := x+dx, y+dy
			if img.In(px, py) {
				idx := img.Offset(px, py)
				pix[idx], pix[idx+1], pix[idx+2], pix[idx+3] = r, g, b, a
			}
		}
	}
}

func uniform(t *testing.T, width, height int, r, g, b, a uint8) *pixkern.Buffer {
	t.Helper()
	img, err := pixkern.NewBufferSize(uint32(width), uint32(height))
	if err != nil {
		t.Fatal(err)
	}
	fillRect(img, 0, 0, width, height, r, g, b, a)
	return img
}

func saveAsPNG(img *pixkern.Buffer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return codec.EncodeFile(path, img)
}

func mustApply(t *testing.T, f interface {
	Apply(*pixkern.Buffer) (*pixkern.Buffer, error)
}, src *pixkern.Buffer) *pixkern.Buffer {
	t.Helper()
	out, err := f.Apply(src)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Width() != src.Width() || out.Height() != src.Height() {
		t.Fatalf("Apply changed dims %dx%d -> %dx%d", src.Width(), src.Height(), out.Width(), out.Height())
	}
	if &out.Pix()[0] == &src.Pix()[0] {
		t.Fatal("Apply output aliases its input")
	}
	return out
}

func assertPixel(t *testing.T, img *pixkern.Buffer, x, y int, want [4]uint8) {
	t.Helper()
	i := img.Offset(x, y)
	got := [4]uint8(img.Pix()[i : i+4])
	if got != want {
		t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
	}
}
