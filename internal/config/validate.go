package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateSeparation()
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}

func (c *Config) validateSeparation() error {
	if c.Separation.DefaultThreshold < 0 || c.Separation.DefaultThreshold > 1 {
		return errors.New("separation.default_threshold must be between 0 and 1")
	}
	if c.Separation.Workers < 1 {
		return errors.New("separation.workers must be at least 1")
	}
	return nil
}
