package imageprocessor

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

const (
	// DefaultDeltaThreshold is the per-pixel intensity change that counts as different
	DefaultDeltaThreshold = 45

	dilateIterations = 2
)

// ChangeDetector is the gocv backed Preprocessor and Comparator
type ChangeDetector struct {
	// Gaussian blur kernel sizes applied in order after greyscale conversion
	BlurRadii []int

	// Border widths blacked out before differencing, in percent of the
	// frame: left, top, right, bottom
	BlackMask [4]float64

	DeltaThreshold float32
}

// NewChangeDetector builds a detector. blackMask must hold four percentages
// or be empty for no masking.
func NewChangeDetector(blurRadii []int, blackMask []float64) *ChangeDetector {
	d := &ChangeDetector{
		BlurRadii:      blurRadii,
		DeltaThreshold: DefaultDeltaThreshold,
	}
	copy(d.BlackMask[:], blackMask)
	return d
}

// Preprocess converts to greyscale, blurs and masks the frame borders
func (d *ChangeDetector) Preprocess(img gocv.Mat) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.NewMat(), errors.New("cannot preprocess empty image")
	}

	gray := gocv.NewMat()
	switch img.Channels() {
	case 1:
		img.CopyTo(&gray)
	case 4:
		gocv.CvtColor(img, &gray, gocv.ColorBGRAToGray)
	default:
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	}

	for _, radius := range d.BlurRadii {
		// OpenCV needs odd kernel sizes
		k := radius
		if k%2 == 0 {
			k++
		}
		gocv.GaussianBlur(gray, &gray, image.Pt(k, k), 0, 0, gocv.BorderDefault)
	}

	drawBlackMask(&gray, d.BlackMask)

	return gray, nil
}

// drawBlackMask paints the configured border bands black
func drawBlackMask(img *gocv.Mat, mask [4]float64) {
	w, h := img.Cols(), img.Rows()

	xMin := int(mask[0] * float64(w) / 100)
	yMin := int(mask[1] * float64(h) / 100)
	xMax := w - int(mask[2]*float64(w)/100)
	yMax := h - int(mask[3]*float64(h)/100)

	black := color.RGBA{0, 0, 0, 0}
	for _, band := range []image.Rectangle{
		image.Rect(0, 0, xMin, h),
		image.Rect(0, 0, w, yMin),
		image.Rect(xMax, 0, w, h),
		image.Rect(0, yMax, w, h),
	} {
		if band.Empty() {
			continue
		}
		gocv.Rectangle(img, band, black, -1)
	}
}

// Compare sums the area of every changed region of at least minContourArea
func (d *ChangeDetector) Compare(prev, next gocv.Mat, minContourArea float64) (Difference, error) {
	if prev.Empty() || next.Empty() {
		return Difference{}, errors.New("cannot compare empty frames")
	}
	if prev.Rows() != next.Rows() || prev.Cols() != next.Cols() {
		return Difference{}, fmt.Errorf("frame shapes differ: %dx%d vs %dx%d",
			prev.Cols(), prev.Rows(), next.Cols(), next.Rows())
	}
	if prev.Channels() != 1 || next.Channels() != 1 {
		return Difference{}, errors.New("frames must be single channel")
	}

	delta := gocv.NewMat()
	defer delta.Close()
	gocv.AbsDiff(prev, next, &delta)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(delta, &thresh, d.DeltaThreshold, 255, gocv.ThresholdBinary)

	// Merge nearby changed pixels into solid regions
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	for i := 0; i < dilateIterations; i++ {
		gocv.Dilate(thresh, &thresh, kernel)
	}

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var diff Difference
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < minContourArea {
			continue
		}
		diff.Score += area
		diff.Regions = append(diff.Regions, gocv.BoundingRect(contour))
	}

	return diff, nil
}
