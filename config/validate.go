package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRequired(); err != nil {
		return err
	}
	if err := c.validatePreprocess(); err != nil {
		return err
	}
	if err := validateDir("source_folder", c.SourceFolder); err != nil {
		return err
	}
	return validateDir("destination_folder", c.DestinationFolder)
}

func (c *Config) validateRequired() error {
	if c.SourceFolder == "" {
		return fmt.Errorf("%w: source_folder", ErrMissingKey)
	}
	if c.DestinationFolder == "" {
		return fmt.Errorf("%w: destination_folder", ErrMissingKey)
	}
	if c.Threshold == nil {
		return fmt.Errorf("%w: threshold", ErrMissingKey)
	}
	if *c.Threshold < 0 {
		return errors.New("threshold must not be negative")
	}
	return nil
}

func (c *Config) validatePreprocess() error {
	for _, r := range c.Preprocess.BlurRadii {
		if r <= 0 {
			return fmt.Errorf("preprocess.blur_radii entries must be positive, got %d", r)
		}
	}
	if len(c.Preprocess.BlackMask) != 4 {
		return fmt.Errorf("preprocess.black_mask needs 4 values (left, top, right, bottom), got %d", len(c.Preprocess.BlackMask))
	}
	for _, p := range c.Preprocess.BlackMask {
		if p < 0 || p > 100 {
			return fmt.Errorf("preprocess.black_mask values must be between 0 and 100, got %g", p)
		}
	}
	return nil
}

func validateDir(key, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist: %s", key, path)
		}
		return fmt.Errorf("cannot access %s %s: %w", key, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %s", key, path)
	}
	return nil
}
