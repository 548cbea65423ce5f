package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Postmark settings are
// deliberately not validated here: the digest send checks them itself and
// an incomplete email setup must not abort a batch run.
func (c *Config) Validate() error {
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	if err := c.validateTranscriber(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSources() error {
	if len(c.Sources.Channels) == 0 {
		return errors.New("sources.channels must list at least one channel handle or ID")
	}
	switch c.Sources.Listing {
	case ListingYtDlp, ListingRSS:
	default:
		return fmt.Errorf("sources.listing must be \"ytdlp\" or \"rss\", got %q", c.Sources.Listing)
	}
	return nil
}

func (c *Config) validateWindow() error {
	if c.Window.DaysBack < 0 {
		return errors.New("window.days_back must not be negative")
	}
	if c.Window.DaysForward < 0 {
		return errors.New("window.days_forward must not be negative")
	}
	return nil
}

func (c *Config) validateOpenAI() error {
	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/tubedigest/config.toml"
		}
		return fmt.Errorf("openai.api_key is required. Set OPENAI_API_KEY env var or edit %s (create with 'tubedigest config init')", defaultPath)
	}
	if strings.TrimSpace(c.OpenAI.Model) == "" {
		return errors.New("openai.model must be set")
	}
	return nil
}

func (c *Config) validateTranscriber() error {
	if strings.TrimSpace(c.Transcriber.APIKey) == "" {
		return errors.New("transcriber.api_key is required. Set GROQ_API_KEY env var or add it to the config file")
	}
	if strings.TrimSpace(c.Transcriber.Model) == "" {
		return errors.New("transcriber.model must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
