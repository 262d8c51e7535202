package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateNormalize(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOutput() error {
	if strings.ContainsRune(c.Output.Filename, filepath.Separator) {
		return fmt.Errorf("output.filename must be a bare file name, got %q", c.Output.Filename)
	}
	if !strings.HasSuffix(strings.ToLower(c.Output.Filename), ".gif") {
		return fmt.Errorf("output.filename must end in .gif, got %q", c.Output.Filename)
	}
	if c.Output.DelayMS < MinDelayMS || c.Output.DelayMS > MaxDelayMS {
		return fmt.Errorf("output.delay_ms must be between %d and %d", MinDelayMS, MaxDelayMS)
	}
	return nil
}

func (c *Config) validateNormalize() error {
	if c.Normalize.MaxDimension < 1 {
		return errors.New("normalize.max_dimension must be positive")
	}
	if c.Normalize.MaxDimension > 8192 {
		return errors.New("normalize.max_dimension must not exceed 8192")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.Workers < 1 || c.Encoder.Workers > 64 {
		return errors.New("encoder.workers must be between 1 and 64")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
