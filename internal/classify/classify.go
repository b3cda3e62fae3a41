// Package classify implements the slide sequence classifier: a single
// forward pass over perceptual-hash distances that collapses duplicate and
// build-up frames into one representative frame per slide.
package classify

import "fmt"

// Fingerprint is a perceptual fingerprint of one frame. Distance returns the
// Hamming distance to another fingerprint of the same kind.
type Fingerprint interface {
	Distance(other Fingerprint) (int, error)
}

// Frame is one captured screenshot in strict capture order. Hash is nil when
// fingerprint acquisition failed for this frame.
type Frame struct {
	Index  int
	Source string
	Hash   Fingerprint
}

// Thresholds split the Hamming distance range into three classes:
//
//	d <= Animation            duplicate, drop the frame
//	Animation < d <= NewSlide incremental reveal, replace the candidate
//	d > NewSlide              new slide, emit the candidate
type Thresholds struct {
	Animation int
	NewSlide  int
}

// Validate rejects threshold pairs that don't partition the distance range.
func (t Thresholds) Validate() error {
	if t.Animation < 0 {
		return fmt.Errorf("animation threshold must be >= 0, got %d", t.Animation)
	}
	if t.NewSlide <= t.Animation {
		return fmt.Errorf("new-slide threshold (%d) must be greater than animation threshold (%d)", t.NewSlide, t.Animation)
	}
	return nil
}

// Classify runs the single-pass classification and returns the indices of the
// representative frames, strictly increasing in capture order. If no frame
// carries a valid fingerprint the result is empty; that is a no-op outcome,
// not an error.
//
// Frames with a nil fingerprint are skipped entirely: they never become the
// candidate, are never compared against it, and are never selected. The
// candidate therefore stays live across arbitrarily long runs of unreadable
// frames; the next valid frame is compared against it as if adjacent.
//
// progress may be nil; when set it is called once per frame inspected.
func Classify(frames []Frame, t Thresholds, progress func(done, total int)) ([]int, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	total := len(frames)
	var selected []int
	candidate := -1 // position in frames of the current candidate

	for i, f := range frames {
		if progress != nil {
			progress(i+1, total)
		}
		if f.Hash == nil {
			continue
		}
		if candidate == -1 {
			candidate = i
			continue
		}

		dist, err := f.Hash.Distance(frames[candidate].Hash)
		if err != nil {
			return nil, fmt.Errorf("distance between frames %d and %d: %w", frames[candidate].Index, f.Index, err)
		}

		switch {
		case dist <= t.Animation:
			// Duplicate of the current slide state. Drop it.
		case dist <= t.NewSlide:
			// Same slide with more content revealed. The newer frame
			// supersedes the candidate; the older state is never emitted.
			candidate = i
		default:
			// Slide boundary: the candidate was the final state of its slide.
			selected = append(selected, frames[candidate].Index)
			candidate = i
		}
	}

	if candidate == -1 {
		return nil, nil
	}

	// The last slide never sees a boundary; flush it.
	selected = append(selected, frames[candidate].Index)
	return selected, nil
}
