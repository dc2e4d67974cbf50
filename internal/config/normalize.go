package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeOrganize(); err != nil {
		return err
	}
	c.normalizeMimeTypes()
	return c.normalizeLogging()
}

func (c *Config) normalizeOrganize() error {
	if strings.TrimSpace(c.Organize.SourceDir) == "" {
		c.Organize.SourceDir = defaultSourceDir
	}
	var err error
	if c.Organize.SourceDir, err = expandPath(strings.TrimSpace(c.Organize.SourceDir)); err != nil {
		return fmt.Errorf("organize.source_dir: %w", err)
	}

	labels := make([]string, 0, len(c.Organize.Labels))
	for _, label := range c.Organize.Labels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	if len(labels) == 0 {
		labels = append(labels, DefaultLabels...)
	}
	c.Organize.Labels = labels
	c.Organize.UnmatchedLabel = strings.TrimSpace(c.Organize.UnmatchedLabel)
	return nil
}

func (c *Config) normalizeMimeTypes() {
	normalized := make(map[string]string, len(c.MimeTypes))
	for ext, mediaType := range c.MimeTypes {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[ext] = strings.ToLower(strings.TrimSpace(mediaType))
	}
	c.MimeTypes = normalized
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}
	return nil
}
