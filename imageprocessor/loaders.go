package imageprocessor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// DefaultImageLoader handles the formats gocv decodes directly
type DefaultImageLoader struct{}

// CanLoad checks the extension and that the file is present
func (l *DefaultImageLoader) CanLoad(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return fileExists(path)
	}
	return false
}

// LoadImage reads the file in colour
func (l *DefaultImageLoader) LoadImage(path string) (gocv.Mat, error) {
	if !fileExists(path) {
		return gocv.NewMat(), newImageLoadError("image not found", path)
	}
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return img, newImageLoadError("failed to load image", path)
	}
	return img, nil
}

// fileExists checks if a file exists and is accessible
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newImageLoadError creates a standardized error for image loading failures
func newImageLoadError(message, path string) error {
	return fmt.Errorf("%s: %s", message, path)
}
