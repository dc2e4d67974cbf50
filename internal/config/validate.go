package config

import (
	"errors"
	"fmt"
	"strings"

	"filesort/internal/category"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateMimeTypes(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOrganize() error {
	if strings.TrimSpace(c.Organize.SourceDir) == "" {
		return errors.New("organize.source_dir must be set")
	}
	for _, label := range c.Organize.Labels {
		if err := category.ValidateLabel(label); err != nil {
			return fmt.Errorf("organize.labels: %w", err)
		}
	}
	if c.Organize.UnmatchedLabel != "" {
		if err := category.ValidateLabel(c.Organize.UnmatchedLabel); err != nil {
			return fmt.Errorf("organize.unmatched_label: %w", err)
		}
	}
	return nil
}

func (c *Config) validateMimeTypes() error {
	for ext, mediaType := range c.MimeTypes {
		if ext == "." || strings.ContainsAny(ext[1:], `./\`) {
			return fmt.Errorf("mime_types: invalid extension %q", ext)
		}
		major, minor, ok := strings.Cut(mediaType, "/")
		if !ok || major == "" || minor == "" {
			return fmt.Errorf("mime_types: %q must map to a type/subtype value, got %q", ext, mediaType)
		}
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
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
