package docstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Kind identifies one of the text artifacts produced per video.
type Kind string

const (
	KindTranscript Kind = "transcript"
	KindDerived    Kind = "bullet_points"
	KindSummary    Kind = "summary"
)

// Store writes per-video text artifacts under a root directory, one
// subdirectory per source. Paths are namespaced by source and video ID so
// concurrently running pipelines never contend on the same file.
type Store struct {
	root string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Path returns the location an artifact would be written to.
func (s *Store) Path(sourceID, videoID string, kind Kind) string {
	return filepath.Join(s.root, sourceID, fmt.Sprintf("%s_%s.txt", videoID, kind))
}

// Write persists the artifact text and returns its path.
func (s *Store) Write(sourceID, videoID string, kind Kind, text string) (string, error) {
	path := s.Path(sourceID, videoID, kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("ensure document dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s for %s: %w", kind, videoID, err)
	}
	return path, nil
}
