package phash

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/nkuzmik/slidedistill/internal/classify"
)

// testImage renders a deterministic gradient so encoders have real content.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}
	return img
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	return buf.Bytes()
}

func TestComputeIdenticalImagesHaveZeroDistance(t *testing.T) {
	data := encodeJPEG(t)

	a, err := Compute(data)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	b, err := Compute(data)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	dist, err := a.Distance(b)
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if dist != 0 {
		t.Errorf("identical images should have distance 0, got %d", dist)
	}
}

func TestComputePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if _, err := Compute(buf.Bytes()); err != nil {
		t.Errorf("Compute on PNG failed: %v", err)
	}
}

func TestComputeCorruptInput(t *testing.T) {
	if _, err := Compute([]byte("not an image at all")); err == nil {
		t.Error("expected error for corrupt input")
	}
	if _, err := Compute(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestUint64RoundTrip(t *testing.T) {
	orig, err := Compute(encodeJPEG(t))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	restored := FromUint64(orig.Uint64())
	if restored.Uint64() != orig.Uint64() {
		t.Errorf("round trip changed bits: %x != %x", restored.Uint64(), orig.Uint64())
	}

	dist, err := orig.Distance(restored)
	if err != nil {
		t.Fatalf("Distance after round trip failed: %v", err)
	}
	if dist != 0 {
		t.Errorf("restored fingerprint should be identical, distance = %d", dist)
	}
}

type foreignFingerprint struct{}

func (foreignFingerprint) Distance(classify.Fingerprint) (int, error) { return 0, nil }

func TestDistanceRejectsForeignFingerprint(t *testing.T) {
	f, err := Compute(encodeJPEG(t))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if _, err := f.Distance(foreignFingerprint{}); err == nil {
		t.Error("expected error when comparing against a foreign fingerprint type")
	}
}
