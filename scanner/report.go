package scanner

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SummaryLine is the one line report printed after every run
func SummaryLine(result *Result, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("Would move %d similar-looking images.", len(result.Relocations))
	}
	return fmt.Sprintf("Moved %d similar-looking images.", result.Moved)
}

// RenderRelocations formats the relocated images as a table
func RenderRelocations(relocations []Relocation) string {
	if len(relocations) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Image", "Previous", "Score", "Size"})

	var total int64
	for i, rel := range relocations {
		tw.AppendRow(table.Row{
			i + 1,
			rel.Name,
			rel.Previous,
			strconv.FormatFloat(rel.Score, 'f', 1, 64),
			humanize.Bytes(uint64(rel.Size)),
		})
		total += rel.Size
	}
	tw.AppendFooter(table.Row{"", "", "", "Total", humanize.Bytes(uint64(total))})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	return tw.Render()
}

// PrintCompletionStats displays statistics after a run
func PrintCompletionStats(w io.Writer, result *Result, dryRun bool) {
	fmt.Fprintf(w, "Compared %d pairs from %d images in %v.\n",
		result.Pairs, result.Images, result.Elapsed.Round(time.Millisecond))

	if result.Unreadable > 0 {
		fmt.Fprintf(w, "%d pairs could not be read and were treated as duplicates.\n", result.Unreadable)
		fmt.Fprintln(w, "Check the log for details.")
	}

	if !dryRun && result.BytesMoved > 0 {
		fmt.Fprintf(w, "Freed %s in the source folder.\n", humanize.Bytes(uint64(result.BytesMoved)))
	}
}
