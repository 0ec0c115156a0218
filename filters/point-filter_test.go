package filters

import (
	"image"
	"math/rand"
	"testing"

	"github.com/soypat/pixkern"
)

func TestBrightenValues(t *testing.T) {
	in := []uint8{0, 10, 100, 200, 231, 232, 255}
	want := []uint8{0, 11, 110, 220, 254, 255, 255}
	src := rowBuffer(t, in)
	out := mustApply(t, NewBrighten(), src)
	for x := range in {
		assertPixel(t, out, x, 0, [4]uint8{want[x], want[x], want[x], 77})
	}
}

func TestDarkenValues(t *testing.T) {
	// 220/1.1 is 199.99999999999997 in float64 and truncates to 199.
	in := []uint8{0, 11, 100, 220, 255}
	want := []uint8{0, 10, 90, 199, 231}
	src := rowBuffer(t, in)
	out := mustApply(t, NewDarken(), src)
	for x := range in {
		assertPixel(t, out, x, 0, [4]uint8{want[x], want[x], want[x], 77})
	}
}

// rowBuffer builds a 1-row gray buffer with alpha 77.
func rowBuffer(t *testing.T, levels []uint8) *pixkern.Buffer {
	t.Helper()
	samples := make([]byte, 0, 4*len(levels))
	for _, v := range levels {
		samples = append(samples, v, v, v, 77)
	}
	b, err := pixkern.NewBuffer(uint32(len(levels)), 1, samples)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestBrightenDarkenApproximateInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := randomNoise(rng, 64, 64)
	bright := mustApply(t, NewBrighten(), src)
	back := mustApply(t, NewDarken(), bright)
	sp, bp, rp := src.Pix(), bright.Pix(), back.Pix()
	for i := 0; i < len(sp); i++ {
		if i%4 == 3 {
			if rp[i] != sp[i] {
				t.Fatalf("sample %d: alpha changed %d -> %d", i, sp[i], rp[i])
			}
			continue
		}
		if bp[i] == 255 {
			continue // Saturated in brighten.
		}
		if d := int(sp[i]) - int(rp[i]); d < 0 || d > 1 {
			t.Errorf("sample %d: %d -> %d -> %d", i, sp[i], bp[i], rp[i])
		}
	}
}

func TestInvertTwice(t *testing.T) {
	rng := rand.New(rand.NewSource(999))
	src := randomNoise(rng, 33, 17)
	orig := src.Clone()
	inverted := mustApply(t, NewInvertedPerPixel(), src)
	sp, ip := src.Pix(), inverted.Pix()
	for i := 0; i < len(sp); i++ {
		want := 255 - sp[i]
		if i%4 == 3 {
			want = sp[i]
		}
		if ip[i] != want {
			t.Fatalf("sample %d: got %d, want %d", i, ip[i], want)
		}
	}
	restored := mustApply(t, NewInvertedPerPixel(), inverted)
	if !restored.Equal(orig) {
		t.Error("invert twice did not restore the original")
	}
	if !src.Equal(orig) {
		t.Error("invert modified its input")
	}
}

func TestGrayscale(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	src := randomNoise(rng, 40, 30)
	gray := mustApply(t, NewGrayscale(), src)
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c := src.RGBAAt(x, y)
			avg := uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
			assertPixel(t, gray, x, y, [4]uint8{avg, avg, avg, c.A})
		}
	}
	again := mustApply(t, NewGrayscale(), gray)
	if !again.Equal(gray) {
		t.Error("grayscale is not a fixed point")
	}
}

func TestGrayscaleModes(t *testing.T) {
	src, _ := pixkern.NewBuffer(1, 1, []byte{255, 0, 0, 255})
	for _, tc := range []struct {
		mode GrayscaleMode
		want uint8
	}{
		{GrayscaleAverage, 85},
		{GrayscaleLuminance, 76},
		{GrayscaleLightness, 127},
	} {
		out := mustApply(t, NewGrayscalePerPixel(tc.mode), src)
		assertPixel(t, out, 0, 0, [4]uint8{tc.want, tc.want, tc.want, 255})
	}
	f := NewGrayscalePerPixel(GrayscaleAverage)
	if err := f.Controls()[0].ChangeValue(GrayscaleLightness); err != nil {
		t.Fatal(err)
	}
	out := mustApply(t, f, src)
	assertPixel(t, out, 0, 0, [4]uint8{127, 127, 127, 255})
}

func TestThreshold(t *testing.T) {
	// Sums 381 (avg exactly 127) and 382 straddle the strict comparison.
	src, _ := pixkern.NewBuffer(4, 1, []byte{
		127, 127, 127, 10,
		128, 127, 127, 20,
		0, 0, 0, 30,
		255, 255, 255, 40,
	})
	out := mustApply(t, NewThreshold(), src)
	assertPixel(t, out, 0, 0, [4]uint8{0, 0, 0, 10})
	assertPixel(t, out, 1, 0, [4]uint8{255, 255, 255, 20})
	assertPixel(t, out, 2, 0, [4]uint8{0, 0, 0, 30})
	assertPixel(t, out, 3, 0, [4]uint8{255, 255, 255, 40})

	rng := rand.New(rand.NewSource(7))
	noise := mustApply(t, NewThreshold(), randomNoise(rng, 50, 50))
	for i, v := range noise.Pix() {
		if i%4 != 3 && v != 0 && v != 255 {
			t.Fatalf("sample %d = %d, not two-color", i, v)
		}
	}
}

func TestThresholdLevelControl(t *testing.T) {
	src, _ := pixkern.NewBuffer(1, 1, []byte{100, 100, 100, 255})
	f := NewThreshold()
	assertPixel(t, mustApply(t, f, src), 0, 0, [4]uint8{0, 0, 0, 255})
	if err := f.Controls()[0].ChangeValue(uint8(99)); err != nil {
		t.Fatal(err)
	}
	assertPixel(t, mustApply(t, f, src), 0, 0, [4]uint8{255, 255, 255, 255})
	if err := f.Controls()[0].ChangeValue(99); err == nil {
		t.Error("int value accepted by uint8 control")
	}
}

func TestScaleControl(t *testing.T) {
	src := rowBuffer(t, []uint8{100})
	f := NewScale(1)
	assertPixel(t, mustApply(t, f, src), 0, 0, [4]uint8{100, 100, 100, 77})
	if err := f.Controls()[0].ChangeValue(2.0); err != nil {
		t.Fatal(err)
	}
	assertPixel(t, mustApply(t, f, src), 0, 0, [4]uint8{200, 200, 200, 77})
	if err := f.Controls()[0].ChangeValue(100.0); err == nil {
		t.Error("factor beyond Max accepted")
	}
}

func TestPointFilterROI(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src := randomNoise(rng, 8, 8)
	roi := image.Rect(2, 3, 6, 5)
	dst := make([]byte, roi.Dx()*roi.Dy()*4)
	d, err := NewInvertedPerPixel().Process(dst, src, &roi)
	if err != nil {
		t.Fatal(err)
	}
	if d.Width != 4 || d.Height != 2 {
		t.Fatalf("got dims %+v", d)
	}
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			c := src.RGBAAt(x+roi.Min.X, y+roi.Min.Y)
			i := (y*d.Width + x) * 4
			if dst[i] != 255-c.R || dst[i+3] != c.A {
				t.Errorf("roi pixel (%d,%d) got %v from %v", x, y, dst[i:i+4], c)
			}
		}
	}
}

func TestPointFilterInPlace(t *testing.T) {
	src := rowBuffer(t, []uint8{0, 200})
	if _, err := NewInvertedPerPixel().Process(nil, src, nil); err != nil {
		t.Fatal(err)
	}
	assertPixel(t, src, 0, 0, [4]uint8{255, 255, 255, 77})
	assertPixel(t, src, 1, 0, [4]uint8{55, 55, 55, 77})
}

func TestPointFilterErrors(t *testing.T) {
	src := rowBuffer(t, []uint8{1})
	if _, err := (&PointFilter{In: pixkern.ShapeRGBA8888, Out: pixkern.ShapeRGBA8888}).Apply(src); err != errNilPixelFunc {
		t.Errorf("nil Fn: got %v", err)
	}
	f := NewInvertedPerPixel()
	f.In = pixkern.ShapeRGB888
	if _, err := f.Apply(src); err != errShapeMismatch {
		t.Errorf("shape mismatch: got %v", err)
	}
	if _, err := NewInvertedPerPixel().Apply(nil); err != pixkern.ErrInvalidBuffer {
		t.Errorf("nil buffer: got %v", err)
	}
}

func TestCurve(t *testing.T) {
	src := rowBuffer(t, []uint8{0, 51, 128, 255})
	inv := mustApply(t, NewCurve([]pixkern.CurvePoint{{X: 0, Y: 1}, {X: 1, Y: 0}}), src)
	want := []uint8{255, 204, 127, 0}
	for x, w := range want {
		assertPixel(t, inv, x, 0, [4]uint8{w, w, w, 77})
	}
	ident := mustApply(t, NewCurve(nil), src)
	if !ident.Equal(src) {
		t.Error("empty curve is not the identity")
	}
	// Outside the point range the curve holds the end values.
	flat := mustApply(t, NewCurve([]pixkern.CurvePoint{{X: 0.6, Y: 0.2}, {X: 0.4, Y: 0.2}}), src)
	for x := range want {
		assertPixel(t, flat, x, 0, [4]uint8{51, 51, 51, 77})
	}
}
