package types

import "image"

// SortKey orders snapshots by camera, then by capture time
type SortKey struct {
	CameraID  uint64
	Timestamp uint64
}

// Less reports whether k sorts before other
func (k SortKey) Less(other SortKey) bool {
	if k.CameraID != other.CameraID {
		return k.CameraID < other.CameraID
	}
	return k.Timestamp < other.Timestamp
}

// ImageRecord is one snapshot file found in the source folder
type ImageRecord struct {
	Name string `json:"name"`
	SortKey
}

// PairScore holds the outcome of comparing two neighbouring snapshots
type PairScore struct {
	Score float64 `json:"score"`

	// Unreadable is set when either image failed to load or process.
	// Score is 0 in that case.
	Unreadable bool `json:"unreadable"`

	// Regions are the bounding boxes of the contours that were counted
	Regions []image.Rectangle `json:"regions,omitempty"`
}
