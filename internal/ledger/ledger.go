package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"time"

	"tubedigest/internal/logging"
)

// Entry is the persisted subset of a processed video record. Summary text
// is deliberately excluded to keep the ledger small; the summary file path
// points at the full artifact.
type Entry struct {
	SourceID       string    `json:"channel_id"`
	Title          string    `json:"title"`
	ProcessedAt    time.Time `json:"processed_date"`
	TranscriptPath string    `json:"transcript_path"`
	SummaryPath    string    `json:"summary_path"`
}

// Ledger is the durable record of which videos have completed the
// pipeline. It is loaded once at startup and mutated only by the
// orchestrator after all workers have drained, so it needs no locking.
type Ledger struct {
	path    string
	logger  *slog.Logger
	entries map[string]Entry

	// writeFile is swappable so tests can force a mid-save failure.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// Open loads the ledger at path. A missing file yields an empty ledger;
// malformed content is logged and discarded rather than failing the run.
func Open(path string, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = logging.NewNop()
	}
	l := &Ledger{
		path:      path,
		logger:    logging.WithComponent(logger, "ledger"),
		entries:   make(map[string]Entry),
		writeFile: os.WriteFile,
	}
	l.load()
	return l
}

func (l *Ledger) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("could not read ledger, starting fresh", logging.Error(err))
		}
		return
	}
	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		l.logger.Warn("could not decode ledger, starting fresh",
			logging.String("path", l.path), logging.Error(err))
		return
	}
	l.entries = entries
}

// Contains reports whether the video has already been processed.
func (l *Ledger) Contains(videoID string) bool {
	_, ok := l.entries[videoID]
	return ok
}

// Set inserts or overwrites the entry for videoID.
func (l *Ledger) Set(videoID string, entry Entry) {
	l.entries[videoID] = entry
}

// Len returns the number of recorded videos.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the ledger contents.
func (l *Ledger) Entries() map[string]Entry {
	cp := make(map[string]Entry, len(l.entries))
	for id, entry := range l.entries {
		cp[id] = entry
	}
	return cp
}

// IDs returns all recorded video IDs ordered by processing time, newest
// first, for display purposes.
func (l *Ledger) IDs() []string {
	ids := make([]string, 0, len(l.entries))
	for id := range l.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := l.entries[ids[i]], l.entries[ids[j]]
		if !a.ProcessedAt.Equal(b.ProcessedAt) {
			return a.ProcessedAt.After(b.ProcessedAt)
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Save writes the full ledger durably. The existing file is first moved
// aside as a backup; on write failure the backup is restored so the prior
// state survives a crash mid-write. Saving an empty ledger is a no-op so
// an aborted run can never clobber real state with nothing.
func (l *Ledger) Save() error {
	if len(l.entries) == 0 {
		return nil
	}

	backup := l.path + ".backup"
	hadPrimary := true
	if err := os.Rename(l.path, backup); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("could not create ledger backup", logging.Error(err))
		}
		hadPrimary = false
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err == nil {
		err = l.writeFile(l.path, data, 0o644)
	}
	if err != nil {
		if hadPrimary {
			if restoreErr := os.Rename(backup, l.path); restoreErr != nil {
				l.logger.Error("could not restore ledger backup", logging.Error(restoreErr))
			}
		}
		return fmt.Errorf("save ledger: %w", err)
	}

	if hadPrimary {
		if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("could not remove ledger backup", logging.Error(err))
		}
	}
	return nil
}
