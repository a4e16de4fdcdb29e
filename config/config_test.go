package config_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapdedup/config"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\nthreshold: 1000\n", src, dst))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, src, cfg.SourceFolder)
	assert.Equal(t, dst, cfg.DestinationFolder)
	assert.Equal(t, 1000.0, cfg.ThresholdValue())
	assert.Equal(t, config.DefaultBlackMask(), cfg.Preprocess.BlackMask)
	assert.Empty(t, cfg.Preprocess.BlurRadii)
}

func TestLoadTOMLMatchesYAML(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := writeConfig(t, "config.toml", fmt.Sprintf(`source_folder = %q
destination_folder = %q
threshold = 250.5

[preprocess]
blur_radii = [3, 5]
black_mask = [0.0, 0.0, 0.0, 0.0]
`, src, dst))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250.5, cfg.ThresholdValue())
	assert.Equal(t, []int{3, 5}, cfg.Preprocess.BlurRadii)
	assert.Equal(t, []float64{0, 0, 0, 0}, cfg.Preprocess.BlackMask)
}

func TestLoadMissingThresholdIsFatal(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\n", src, dst))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissingKey))
	assert.Contains(t, err.Error(), "threshold")
}

func TestLoadMissingFolders(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
		key  string
	}{
		{"no source", "destination_folder: /tmp\nthreshold: 1\n", "source_folder"},
		{"no destination", "source_folder: /tmp\nthreshold: 1\n", "destination_folder"},
		{"empty document", "", "source_folder"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, "config.yaml", tc.body))
			require.ErrorIs(t, err, config.ErrMissingKey)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoadRejectsMalformedThreshold(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\nthreshold: lots\n", src, dst))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\nthreshold: -1\n", src, dst))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestLoadZeroThresholdIsAllowed(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\nthreshold: 0\n", src, dst))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.ThresholdValue())
}

func TestLoadRejectsMissingDirectories(t *testing.T) {
	dst := t.TempDir()
	missing := filepath.Join(t.TempDir(), "nope")
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\nthreshold: 10\n", missing, dst))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source_folder does not exist")
}

func TestLoadRejectsFileAsDestination(t *testing.T) {
	src := t.TempDir()
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\nthreshold: 10\n", src, file))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination_folder is not a directory")
}

func TestLoadRejectsBadBlackMask(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	path := writeConfig(t, "config.yaml", fmt.Sprintf(
		"source_folder: %s\ndestination_folder: %s\nthreshold: 10\npreprocess:\n  black_mask: [1, 2]\n", src, dst))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "black_mask")
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "config.yaml", "source_folder: /tmp\nthreshhold: 10\n")
	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
