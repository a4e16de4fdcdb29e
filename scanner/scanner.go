package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"snapdedup/logging"
)

// Process moves every snapshot that is a near-duplicate of its predecessor
// from the source folder to the destination folder.
//
// All adjacent pairs of the sorted listing are scored before anything is
// moved, so each comparison sees the original neighbours. A move failure
// stops the run; files already moved stay in the destination.
func Process(opts Options) (*Result, error) {
	if opts.Scorer == nil {
		return nil, errors.New("no scorer configured")
	}
	move := opts.Move
	if move == nil {
		move = MoveFile
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	startTime := time.Now()

	records, err := ListSnapshots(opts.SourceFolder)
	if err != nil {
		return nil, err
	}
	SortRecords(records)

	result := &Result{Images: len(records)}
	logging.DebugLog("Found %d snapshots in %s, threshold %g", len(records), opts.SourceFolder, opts.Threshold)

	pairs := 0
	if len(records) > 1 {
		pairs = len(records) - 1
	}
	tracker := NewProgressTracker(pairs, out, opts.ShowProgress)

	var pending []Relocation
	for i := 0; i+1 < len(records); i++ {
		prev, next := records[i], records[i+1]

		score := opts.Scorer.Compare(
			filepath.Join(opts.SourceFolder, prev.Name),
			filepath.Join(opts.SourceFolder, next.Name),
		)
		result.Pairs++
		if score.Unreadable {
			result.Unreadable++
		}

		duplicate := score.Score < opts.Threshold
		tracker.Update(duplicate, score.Unreadable)
		if duplicate {
			pending = append(pending, Relocation{
				Name:     next.Name,
				Previous: prev.Name,
				Score:    score.Score,
			})
		}
	}
	tracker.Stop()

	for _, rel := range pending {
		src := filepath.Join(opts.SourceFolder, rel.Name)
		if info, err := os.Stat(src); err == nil {
			rel.Size = info.Size()
		}

		if !opts.DryRun {
			if err := move(src, filepath.Join(opts.DestinationFolder, rel.Name)); err != nil {
				result.Elapsed = time.Since(startTime)
				return result, fmt.Errorf("cannot move %s to %s: %w", rel.Name, opts.DestinationFolder, err)
			}
			result.Moved++
			result.BytesMoved += rel.Size
		}

		result.Relocations = append(result.Relocations, rel)
		logging.LogImageMoved(rel.Name, rel.Score, opts.DryRun)
	}

	result.Elapsed = time.Since(startTime)
	return result, nil
}
