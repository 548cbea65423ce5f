package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"tubedigest/internal/logging"
)

// YtDlpCommand is the external binary used for listing and audio download.
const YtDlpCommand = "yt-dlp"

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

// YtDlp lists channel uploads and fetches low-bitrate audio by shelling
// out to yt-dlp. It implements both Lister and Fetcher.
type YtDlp struct {
	binary   string
	audioDir string
	logger   *slog.Logger
	runner   Runner
}

// NewYtDlp builds the yt-dlp backed media source. Downloaded audio is
// written under audioDir, one file per video ID.
func NewYtDlp(audioDir string, logger *slog.Logger) *YtDlp {
	return &YtDlp{
		binary:   YtDlpCommand,
		audioDir: audioDir,
		logger:   logging.WithComponent(logger, "ytdlp"),
		runner:   defaultRunner,
	}
}

// WithRunner sets a custom command runner (for testing).
func (y *YtDlp) WithRunner(runner Runner) *YtDlp {
	y.runner = runner
	return y
}

// channelURL maps a source ID to its uploads page. Handles beginning with
// '@' address the channel by handle, everything else by channel ID.
func channelURL(sourceID string) string {
	if strings.HasPrefix(sourceID, "@") {
		return "https://www.youtube.com/" + sourceID + "/videos"
	}
	return "https://www.youtube.com/channel/" + sourceID + "/videos"
}

// ListRecent dumps channel metadata as JSON and keeps entries whose
// publish time falls inside the window. Entries without a resolvable
// publish time are dropped individually rather than failing the listing.
func (y *YtDlp) ListRecent(ctx context.Context, sourceID string, window Window, limit int) ([]Candidate, error) {
	args := []string{
		"--dump-single-json",
		"--playlist-end", strconv.Itoa(limit),
		"--quiet",
		channelURL(sourceID),
	}
	output, err := y.runner(ctx, y.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", sourceID, err)
	}

	var root ytdlpEntry
	if err := json.Unmarshal(output, &root); err != nil {
		return nil, fmt.Errorf("list %s: decode dump: %w", sourceID, err)
	}

	var candidates []Candidate
	for _, entry := range flattenEntries(root) {
		published, ok := resolvePublished(entry)
		if !ok {
			y.logger.Warn("dropping entry without a publish date",
				logging.String(logging.FieldSource, sourceID),
				logging.String(logging.FieldVideoID, entry.ID),
				logging.String("title", entry.Title))
			continue
		}
		if !window.Contains(published) {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:        entry.ID,
			SourceID:  sourceID,
			Title:     entry.Title,
			Published: published,
		})
	}
	y.logger.Info("channel listed",
		logging.String(logging.FieldSource, sourceID),
		logging.Int("candidates", len(candidates)))
	return candidates, nil
}

// FetchAudio downloads the lowest usable audio quality for transcription.
// The resulting m4a is owned by the caller and must be removed by it.
func (y *YtDlp) FetchAudio(ctx context.Context, videoID string) (string, error) {
	if err := os.MkdirAll(y.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure audio dir: %w", err)
	}
	template := filepath.Join(y.audioDir, videoID)
	finalPath := template + ".m4a"

	args := []string{
		"--format", "bestaudio[abr<50]/worstaudio/worst",
		"--extract-audio",
		"--audio-format", "m4a",
		"--postprocessor-args", "ffmpeg:-ar 8000 -ac 1 -b:a 8k",
		"--output", template + ".%(ext)s",
		"--quiet",
		"https://www.youtube.com/watch?v=" + videoID,
	}
	if _, err := y.runner(ctx, y.binary, args...); err != nil {
		return "", fmt.Errorf("fetch audio for %s: %w", videoID, err)
	}
	if _, err := os.Stat(finalPath); err != nil {
		return "", fmt.Errorf("fetch audio for %s: expected %s: %w", videoID, finalPath, err)
	}
	return finalPath, nil
}
