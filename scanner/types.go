package scanner

import (
	"io"
	"time"

	"snapdedup/types"
)

// Scorer compares two snapshot files
type Scorer interface {
	Compare(path1, path2 string) types.PairScore
}

// MoveFunc relocates a file from src to dst
type MoveFunc func(src, dst string) error

// Options defines the options for one deduplication run
type Options struct {
	SourceFolder      string
	DestinationFolder string

	// Images scoring strictly below Threshold against their predecessor are moved
	Threshold float64

	Scorer Scorer
	Move   MoveFunc // defaults to MoveFile

	DryRun       bool
	ShowProgress bool
	Output       io.Writer // progress output, defaults to os.Stdout
}

// Relocation records one image judged a near-duplicate of its predecessor
type Relocation struct {
	Name     string
	Previous string
	Score    float64
	Size     int64
}

// Result summarises a run. After a failed move it reflects the files that
// were relocated before the failure.
type Result struct {
	Images      int
	Pairs       int
	Unreadable  int
	Moved       int
	BytesMoved  int64
	Relocations []Relocation
	Elapsed     time.Duration
}
