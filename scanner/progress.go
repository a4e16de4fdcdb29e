package scanner

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

const progressInterval = 500 * time.Millisecond

// ProgressTracker renders a single updating progress line while pairs are scored
type ProgressTracker struct {
	out        io.Writer
	enabled    bool
	total      int
	processed  int
	duplicates int
	unreadable int
	lastRender time.Time
}

// NewProgressTracker initializes the progress tracker
func NewProgressTracker(total int, out io.Writer, enabled bool) *ProgressTracker {
	return &ProgressTracker{
		out:     out,
		enabled: enabled,
		total:   total,
	}
}

// ShouldShowProgress reports whether w is an interactive terminal
func ShouldShowProgress(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Update records one scored pair
func (p *ProgressTracker) Update(duplicate, unreadable bool) {
	p.processed++
	if duplicate {
		p.duplicates++
	}
	if unreadable {
		p.unreadable++
	}

	if !p.enabled {
		return
	}
	if time.Since(p.lastRender) < progressInterval && p.processed < p.total {
		return
	}
	p.render()
}

func (p *ProgressTracker) render() {
	p.lastRender = time.Now()
	if p.unreadable > 0 {
		fmt.Fprintf(p.out, "\rProgress: %d/%d pairs (Duplicates: %d, Unreadable: %d)",
			p.processed, p.total, p.duplicates, p.unreadable)
	} else {
		fmt.Fprintf(p.out, "\rProgress: %d/%d pairs (Duplicates: %d)",
			p.processed, p.total, p.duplicates)
	}
}

// Stop ends the progress line
func (p *ProgressTracker) Stop() {
	if p.enabled && p.processed > 0 {
		fmt.Fprintln(p.out)
	}
}
