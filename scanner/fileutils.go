package scanner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"snapdedup/types"
)

// SnapshotExt is the only extension picked up from the source folder
const SnapshotExt = ".png"

var snapshotName = regexp.MustCompile(`^c(\d+)-(\d+)\.png$`)

// IsSnapshotFile checks if a file name carries the snapshot extension.
// The match is case-sensitive.
func IsSnapshotFile(name string) bool {
	return strings.HasSuffix(name, SnapshotExt)
}

// ParseFilename extracts the camera id and timestamp from names like
// c3-1622548800.png. Anything else yields the zero key, so malformed names
// sort first.
func ParseFilename(name string) types.SortKey {
	m := snapshotName.FindStringSubmatch(name)
	if m == nil {
		return types.SortKey{}
	}

	camera, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return types.SortKey{}
	}
	ts, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return types.SortKey{}
	}

	return types.SortKey{CameraID: camera, Timestamp: ts}
}

// ListSnapshots returns the snapshot files directly inside dir, unsorted
// beyond the directory listing order
func ListSnapshots(dir string) ([]types.ImageRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list source folder %s: %w", dir, err)
	}

	var records []types.ImageRecord
	for _, entry := range entries {
		if entry.IsDir() || !IsSnapshotFile(entry.Name()) {
			continue
		}
		records = append(records, types.ImageRecord{
			Name:    entry.Name(),
			SortKey: ParseFilename(entry.Name()),
		})
	}
	return records, nil
}

// SortRecords orders records by camera and timestamp, keeping the listing
// order of equal keys
func SortRecords(records []types.ImageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortKey.Less(records[j].SortKey)
	})
}

// MoveFile renames src to dst, copying across filesystems when needed
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
