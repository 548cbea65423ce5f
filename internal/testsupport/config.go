package testsupport

import (
	"path/filepath"
	"testing"

	"tubedigest/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Sources.Channels = []string{"@test-channel"}
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.TranscriptDir = filepath.Join(base, "transcripts")
	cfgVal.Paths.AudioDir = filepath.Join(base, "audio")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.OpenAI.APIKey = "test"
	cfgVal.Transcriber.APIKey = "test"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithChannels overrides the watched channels on the test config.
func WithChannels(channels ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sources.Channels = channels
	}
}

// WithListing selects the candidate discovery backend on the test config.
func WithListing(listing string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sources.Listing = listing
	}
}

// WithPostmark fills the Postmark identity fields on the test config.
func WithPostmark(token, from, to string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Postmark.ServerToken = token
		b.cfg.Postmark.FromEmail = from
		b.cfg.Postmark.ToEmail = to
	}
}
