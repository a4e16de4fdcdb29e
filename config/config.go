// Package config loads the run configuration from a YAML or TOML document.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given
const DefaultPath = "config.yaml"

// ErrMissingKey is wrapped by validation errors for absent required keys
var ErrMissingKey = errors.New("missing required key")

// Config holds the settings for one deduplication run
type Config struct {
	SourceFolder      string     `yaml:"source_folder" toml:"source_folder"`
	DestinationFolder string     `yaml:"destination_folder" toml:"destination_folder"`
	Threshold         *float64   `yaml:"threshold" toml:"threshold"`
	LogFile           string     `yaml:"log_file" toml:"log_file"`
	Preprocess        Preprocess `yaml:"preprocess" toml:"preprocess"`
}

// Preprocess tunes the image normalization step
type Preprocess struct {
	BlurRadii []int     `yaml:"blur_radii" toml:"blur_radii"`
	BlackMask []float64 `yaml:"black_mask" toml:"black_mask"` // left, top, right, bottom in percent
}

// DefaultBlackMask blanks the frame edges where camera overlays usually sit
func DefaultBlackMask() []float64 {
	return []float64{5, 10, 5, 0}
}

// Load reads, decodes and validates the configuration at path.
// The format is picked from the file extension.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes a configuration document. ext selects the format
// (".toml" for TOML, anything else is treated as YAML).
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config

	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Preprocess.BlackMask == nil {
		cfg.Preprocess.BlackMask = DefaultBlackMask()
	}
	return &cfg, nil
}

// ThresholdValue returns the configured threshold; call only after Validate
func (c *Config) ThresholdValue() float64 {
	if c.Threshold == nil {
		return 0
	}
	return *c.Threshold
}
