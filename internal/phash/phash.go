// Package phash wraps the perceptual hash oracle: a 64-bit DCT hash (pHash)
// over decoded image pixels, compared by Hamming distance.
package phash

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/corona10/goimagehash"

	"github.com/nkuzmik/slidedistill/internal/classify"
)

// Fingerprint is a perceptual fingerprint of one image.
type Fingerprint struct {
	hash *goimagehash.ImageHash
}

var _ classify.Fingerprint = (*Fingerprint)(nil)

// Compute decodes raw image bytes and returns their perceptual fingerprint.
// Corrupt or unsupported input yields an error, never a partial fingerprint.
func Compute(data []byte) (*Fingerprint, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("perception hash: %w", err)
	}
	return &Fingerprint{hash: h}, nil
}

// Distance returns the Hamming distance to another pHash fingerprint.
func (f *Fingerprint) Distance(other classify.Fingerprint) (int, error) {
	o, ok := other.(*Fingerprint)
	if !ok {
		return 0, fmt.Errorf("cannot compare pHash against fingerprint of type %T", other)
	}
	return f.hash.Distance(o.hash)
}

// Uint64 exposes the raw hash bits for durable storage.
func (f *Fingerprint) Uint64() uint64 {
	return f.hash.GetHash()
}

// FromUint64 rebuilds a fingerprint from stored hash bits.
func FromUint64(bits uint64) *Fingerprint {
	return &Fingerprint{hash: goimagehash.NewImageHash(bits, goimagehash.PHash)}
}
