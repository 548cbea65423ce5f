package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tubedigest/internal/logging"
)

func TestListRecentParsesDumpAndFiltersWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	window := WindowAround(now, 3, 1)

	dump := `{
		"entries": [
			{"id": "fresh", "title": "Fresh Video", "upload_date": "20260814"},
			{"id": "stale", "title": "Old Video", "upload_date": "20260801"},
			{"id": "undated", "title": "Mystery Video"}
		]
	}`

	var gotArgs []string
	source := NewYtDlp(t.TempDir(), logging.NewNop()).WithRunner(
		func(ctx context.Context, name string, args ...string) ([]byte, error) {
			gotArgs = args
			return []byte(dump), nil
		})

	candidates, err := source.ListRecent(context.Background(), "@mkbhd", window, 5)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	got := candidates[0]
	if got.ID != "fresh" || got.SourceID != "@mkbhd" || got.Title != "Fresh Video" {
		t.Fatalf("unexpected candidate: %+v", got)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "https://www.youtube.com/@mkbhd/videos") {
		t.Fatalf("expected channel URL in args: %q", joined)
	}
	if !strings.Contains(joined, "--playlist-end 5") {
		t.Fatalf("expected playlist limit in args: %q", joined)
	}
}

func TestListRecentPropagatesRunnerFailure(t *testing.T) {
	source := NewYtDlp(t.TempDir(), logging.NewNop()).WithRunner(
		func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("network down")
		})
	if _, err := source.ListRecent(context.Background(), "@mkbhd", Window{}, 5); err == nil {
		t.Fatal("expected error from failing runner")
	}
}

func TestFetchAudioReturnsDownloadedPath(t *testing.T) {
	audioDir := t.TempDir()
	source := NewYtDlp(audioDir, logging.NewNop()).WithRunner(
		func(ctx context.Context, name string, args ...string) ([]byte, error) {
			// Simulate yt-dlp producing the m4a the caller expects.
			path := filepath.Join(audioDir, "v1.m4a")
			if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
				return nil, fmt.Errorf("stub write: %w", err)
			}
			return nil, nil
		})

	path, err := source.FetchAudio(context.Background(), "v1")
	if err != nil {
		t.Fatalf("FetchAudio: %v", err)
	}
	if path != filepath.Join(audioDir, "v1.m4a") {
		t.Fatalf("unexpected path: %q", path)
	}
}

func TestFetchAudioFailsWhenFileMissing(t *testing.T) {
	source := NewYtDlp(t.TempDir(), logging.NewNop()).WithRunner(
		func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, nil // command "succeeds" but writes nothing
		})
	if _, err := source.FetchAudio(context.Background(), "v1"); err == nil {
		t.Fatal("expected error when download output is missing")
	}
}
