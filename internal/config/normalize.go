package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSources()
	c.normalizeWorkers()
	c.normalizeSecrets()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSources() {
	channels := make([]string, 0, len(c.Sources.Channels))
	for _, channel := range c.Sources.Channels {
		if trimmed := strings.TrimSpace(channel); trimmed != "" {
			channels = append(channels, trimmed)
		}
	}
	c.Sources.Channels = channels
	c.Sources.Listing = strings.ToLower(strings.TrimSpace(c.Sources.Listing))
	if c.Sources.Listing == "" {
		c.Sources.Listing = defaultListing
	}
	if c.Sources.ItemsPerSource <= 0 {
		c.Sources.ItemsPerSource = defaultItemsPerSource
	}
}

func (c *Config) normalizeWorkers() {
	if c.Workers.SourceWidth <= 0 {
		c.Workers.SourceWidth = defaultSourceWidth
	}
	if c.Workers.ItemWidth <= 0 {
		c.Workers.ItemWidth = defaultItemWidth
	}
}

// normalizeSecrets lets environment variables stand in for credentials so
// the config file never has to contain them.
func (c *Config) normalizeSecrets() {
	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if strings.TrimSpace(c.Transcriber.APIKey) == "" {
		c.Transcriber.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if strings.TrimSpace(c.Postmark.ServerToken) == "" {
		c.Postmark.ServerToken = os.Getenv("POSTMARK_SERVER_TOKEN")
	}
	if strings.TrimSpace(c.Postmark.FromEmail) == "" {
		c.Postmark.FromEmail = os.Getenv("POSTMARK_FROM_EMAIL")
	}
	if strings.TrimSpace(c.Postmark.ToEmail) == "" {
		c.Postmark.ToEmail = os.Getenv("POSTMARK_TO_EMAIL")
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// ExpandPath resolves ~ prefixes and cleans the supplied path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Clean(trimmed), nil
}
