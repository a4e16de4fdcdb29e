// Package imageprocessor scores how much two camera snapshots differ.
//
// Loading, normalization and frame differencing are separate capabilities so
// the pair scorer can run against any backend that honours their contracts.
package imageprocessor

import (
	"image"

	"gocv.io/x/gocv"
)

// ImageLoader reads an image file into a BGR Mat
type ImageLoader interface {
	// CanLoad checks if the loader can handle the given file
	CanLoad(path string) bool

	// LoadImage loads and returns the image. The caller closes the Mat.
	LoadImage(path string) (gocv.Mat, error)
}

// Preprocessor normalizes a raw frame into a comparison-ready raster.
// Implementations must not modify img and must return a new Mat.
type Preprocessor interface {
	Preprocess(img gocv.Mat) (gocv.Mat, error)
}

// Comparator scores the difference between two preprocessed frames of
// identical shape. Implementations must be deterministic and leave their
// inputs untouched.
type Comparator interface {
	Compare(prev, next gocv.Mat, minContourArea float64) (Difference, error)
}

// Difference is the result of comparing two frames
type Difference struct {
	Score   float64
	Regions []image.Rectangle
}
