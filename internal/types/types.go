package types

import "github.com/nkuzmik/slidedistill/internal/classify"

// HashTask represents a single frame sent to the acquisition pool
type HashTask struct {
	Index int    // position in capture order
	Path  string // source image file
}

// HashResult is the outcome of hashing one frame. Err is set and Hash nil
// when the image could not be read or decoded.
type HashResult struct {
	Index int
	Path  string
	Hash  classify.Fingerprint
	Err   error
}
