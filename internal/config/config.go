package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sources lists the channels to watch and how candidates are discovered.
type Sources struct {
	Channels       []string `toml:"channels"`
	Listing        string   `toml:"listing"`
	ItemsPerSource int      `toml:"items_per_source"`
}

// Window bounds how far around "now" a publish date may fall.
type Window struct {
	DaysBack    int `toml:"days_back"`
	DaysForward int `toml:"days_forward"`
}

// Workers sets the widths of the two worker pools.
type Workers struct {
	SourceWidth int `toml:"source_width"`
	ItemWidth   int `toml:"item_width"`
}

// Paths contains directory configuration.
type Paths struct {
	DataDir       string `toml:"data_dir"`
	TranscriptDir string `toml:"transcript_dir"`
	AudioDir      string `toml:"audio_dir"`
	LogDir        string `toml:"log_dir"`
}

// OpenAI contains settings for the text-generation API.
type OpenAI struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Transcriber contains settings for the audio transcription API.
type Transcriber struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Postmark contains settings for outbound email. All three identity fields
// are required to send; their absence skips the send rather than the run.
type Postmark struct {
	ServerToken    string `toml:"server_token"`
	FromEmail      string `toml:"from_email"`
	ToEmail        string `toml:"to_email"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the full application configuration.
type Config struct {
	Sources     Sources     `toml:"sources"`
	Window      Window      `toml:"window"`
	Workers     Workers     `toml:"workers"`
	Paths       Paths       `toml:"paths"`
	OpenAI      OpenAI      `toml:"openai"`
	Transcriber Transcriber `toml:"transcriber"`
	Postmark    Postmark    `toml:"postmark"`
	Logging     Logging     `toml:"logging"`
}

// LedgerPath returns the location of the processed-video ledger file.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.DataDir, "processed_videos.json")
}

// RunLogPath returns the location of the run journal database.
func (c *Config) RunLogPath() string {
	return filepath.Join(c.Paths.DataDir, "runs.db")
}

// LockPath returns the location of the single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "tubedigest.lock")
}

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tubedigest", "config.toml"), nil
}

// Load reads the config at path (or the default location when path is
// empty), applies defaults, normalizes paths and secrets, and validates.
// It returns the resolved path and whether a file existed there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	candidate := path
	if candidate == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		candidate = defaultPath
	}

	expanded, err := expandPath(candidate)
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, true, nil
}

// WriteSample writes the embedded sample configuration to path, creating
// parent directories as needed. Callers decide whether overwriting is
// acceptable.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the data, transcript, audio, and log
// directories if they do not already exist.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.TranscriptDir, c.Paths.AudioDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}
