package imageprocessor

import (
	"image"
	"runtime/debug"

	"snapdedup/logging"
	"snapdedup/types"

	"gocv.io/x/gocv"
)

// MinContourArea is the smallest changed region, in pixels, that counts
// towards a pair's difference score
const MinContourArea = 1000

// PairScorer loads, normalizes, aligns and compares two snapshot files
type PairScorer struct {
	Loader       ImageLoader
	Preprocessor Preprocessor
	Comparator   Comparator
}

// NewPairScorer wires a scorer to the gocv loader and the given detector
func NewPairScorer(detector *ChangeDetector) *PairScorer {
	return &PairScorer{
		Loader:       &DefaultImageLoader{},
		Preprocessor: detector,
		Comparator:   detector,
	}
}

// Score returns only the difference score for the pair
func (s *PairScorer) Score(path1, path2 string) float64 {
	return s.Compare(path1, path2).Score
}

// Compare scores the difference between two image files.
//
// If either file cannot be read the error is logged and a zero score is
// returned with Unreadable set, which makes the pair look identical.
// The same applies when preprocessing or comparison fails.
func (s *PairScorer) Compare(path1, path2 string) (score types.PairScore) {
	// OpenCV errors surface as panics from cgo
	defer func() {
		if r := recover(); r != nil {
			logging.LogError("Panic while comparing %s, %s: %v\nStack trace: %s", path1, path2, r, debug.Stack())
			score = types.PairScore{Unreadable: true}
		}
	}()

	img1, err1 := s.Loader.LoadImage(path1)
	defer img1.Close()
	img2, err2 := s.Loader.LoadImage(path2)
	defer img2.Close()

	if err1 != nil || err2 != nil {
		logging.LogError("Failed to read images: %s, %s", path1, path2)
		return types.PairScore{Unreadable: true}
	}

	pre1, err := s.Preprocessor.Preprocess(img1)
	defer pre1.Close()
	if err != nil {
		logging.LogError("Failed to preprocess %s (paired with %s): %v", path1, path2, err)
		return types.PairScore{Unreadable: true}
	}

	pre2, err := s.Preprocessor.Preprocess(img2)
	defer pre2.Close()
	if err != nil {
		logging.LogError("Failed to preprocess %s (paired with %s): %v", path2, path1, err)
		return types.PairScore{Unreadable: true}
	}

	// Resize rather than crop so both frames keep their full field of view
	rows := min(pre1.Rows(), pre2.Rows())
	cols := min(pre1.Cols(), pre2.Cols())

	aligned1 := resizeTo(pre1, rows, cols)
	defer aligned1.Close()
	aligned2 := resizeTo(pre2, rows, cols)
	defer aligned2.Close()

	diff, err := s.Comparator.Compare(aligned1, aligned2, MinContourArea)
	if err != nil {
		logging.LogError("Failed to compare images: %s, %s: %v", path1, path2, err)
		return types.PairScore{Unreadable: true}
	}

	logging.DebugLog("Compared %s -> %s: score=%.1f regions=%d", path1, path2, diff.Score, len(diff.Regions))

	return types.PairScore{
		Score:   diff.Score,
		Regions: diff.Regions,
	}
}

// resizeTo returns a copy of img scaled to rows x cols
func resizeTo(img gocv.Mat, rows, cols int) gocv.Mat {
	if img.Rows() == rows && img.Cols() == cols {
		return img.Clone()
	}
	resized := gocv.NewMat()
	gocv.Resize(img, &resized, image.Point{X: cols, Y: rows}, 0, 0, gocv.InterpolationLinear)
	return resized
}
