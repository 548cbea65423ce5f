package config

// Candidate discovery backends.
const (
	ListingYtDlp = "ytdlp"
	ListingRSS   = "rss"
)

const (
	defaultDataDir        = "~/.local/share/tubedigest"
	defaultTranscriptDir  = "~/.local/share/tubedigest/transcripts"
	defaultAudioDir       = "~/.local/share/tubedigest/audio"
	defaultLogDir         = "~/.local/share/tubedigest/logs"
	defaultListing        = ListingYtDlp
	defaultItemsPerSource = 5
	defaultWindowBack     = 3
	defaultWindowForward  = 1
	defaultSourceWidth    = 10
	defaultItemWidth      = 10

	defaultOpenAIBaseURL         = "https://api.openai.com/v1"
	defaultOpenAIModel           = "gpt-4o"
	defaultOpenAITimeoutSeconds  = 120
	defaultTranscriberBaseURL    = "https://api.groq.com/openai/v1"
	defaultTranscriberModel      = "distil-whisper-large-v3-en"
	defaultTranscriberTimeoutSec = 300

	defaultPostmarkTimeout = 30

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sources: Sources{
			Listing:        defaultListing,
			ItemsPerSource: defaultItemsPerSource,
		},
		Window: Window{
			DaysBack:    defaultWindowBack,
			DaysForward: defaultWindowForward,
		},
		Workers: Workers{
			SourceWidth: defaultSourceWidth,
			ItemWidth:   defaultItemWidth,
		},
		Paths: Paths{
			DataDir:       defaultDataDir,
			TranscriptDir: defaultTranscriptDir,
			AudioDir:      defaultAudioDir,
			LogDir:        defaultLogDir,
		},
		OpenAI: OpenAI{
			BaseURL:        defaultOpenAIBaseURL,
			Model:          defaultOpenAIModel,
			TimeoutSeconds: defaultOpenAITimeoutSeconds,
		},
		Transcriber: Transcriber{
			BaseURL:        defaultTranscriberBaseURL,
			Model:          defaultTranscriberModel,
			TimeoutSeconds: defaultTranscriberTimeoutSec,
		},
		Postmark: Postmark{
			RequestTimeout: defaultPostmarkTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
