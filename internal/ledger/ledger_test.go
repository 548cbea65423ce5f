package ledger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func ledgerPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "processed_videos.json")
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	l := Open(ledgerPath(t), nil)
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d entries", l.Len())
	}
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	path := ledgerPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	l := Open(path, nil)
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger after corrupt file, got %d entries", l.Len())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := ledgerPath(t)
	l := Open(path, nil)
	l.Set("v1", Entry{
		SourceID:       "@mkbhd",
		Title:          "A Video",
		ProcessedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		TranscriptPath: "/tmp/v1_transcript.txt",
		SummaryPath:    "/tmp/v1_summary.txt",
	})
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := Open(path, nil)
	if !reloaded.Contains("v1") {
		t.Fatal("expected v1 after reload")
	}
	entry := reloaded.Entries()["v1"]
	if entry.SourceID != "@mkbhd" || entry.Title != "A Video" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, err := os.Stat(path + ".backup"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("backup should be removed after a successful save: %v", err)
	}
}

func TestSaveEmptyIsNoOp(t *testing.T) {
	path := ledgerPath(t)
	l := Open(path, nil)
	if err := l.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("empty save must not create a ledger file")
	}
}

func TestFailedSaveRestoresPriorState(t *testing.T) {
	path := ledgerPath(t)

	first := Open(path, nil)
	first.Set("v1", Entry{SourceID: "@mkbhd", Title: "Original"})
	if err := first.Save(); err != nil {
		t.Fatalf("initial Save: %v", err)
	}

	second := Open(path, nil)
	second.Set("v2", Entry{SourceID: "@casey", Title: "New"})
	second.writeFile = func(string, []byte, os.FileMode) error {
		return errors.New("disk full")
	}
	if err := second.Save(); err == nil {
		t.Fatal("expected Save to fail")
	}

	// The in-memory state keeps the new entry; durable state keeps the old.
	if !second.Contains("v2") {
		t.Fatal("in-memory state must keep the unsaved entry")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("prior ledger must remain readable: %v", err)
	}
	entries := map[string]Entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("prior ledger must remain valid JSON: %v", err)
	}
	if _, ok := entries["v1"]; !ok {
		t.Fatal("prior entry lost after failed save")
	}
	if _, ok := entries["v2"]; ok {
		t.Fatal("failed save must not leave partial new state")
	}
}

func TestIDsOrderedNewestFirst(t *testing.T) {
	l := Open(ledgerPath(t), nil)
	l.Set("old", Entry{ProcessedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)})
	l.Set("new", Entry{ProcessedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)})
	ids := l.IDs()
	if len(ids) != 2 || ids[0] != "new" || ids[1] != "old" {
		t.Fatalf("unexpected order: %v", ids)
	}
}
