package runlog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tubedigest/internal/runlog"
)

func openStore(t *testing.T, dir string) *runlog.Store {
	t.Helper()
	store, err := runlog.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatalf("open run log: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndList(t *testing.T) {
	dir := t.TempDir()
	store := openStore(t, dir)
	ctx := context.Background()

	base := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	first := runlog.Entry{
		ID:         "run-1",
		StartedAt:  base,
		FinishedAt: base.Add(5 * time.Minute),
		Sources:    3,
		Candidates: 4,
		Processed:  2,
		Skipped:    1,
		Failed:     1,
		DigestSent: true,
	}
	second := runlog.Entry{
		ID:         "run-2",
		StartedAt:  base.Add(time.Hour),
		FinishedAt: base.Add(time.Hour + time.Minute),
	}
	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	entries, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "run-2" || entries[1].ID != "run-1" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].ID, entries[1].ID)
	}
	got := entries[1]
	if got.Processed != 2 || got.Skipped != 1 || got.Failed != 1 || !got.DigestSent {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if !got.StartedAt.Equal(first.StartedAt) {
		t.Fatalf("started_at mismatch: %v vs %v", got.StartedAt, first.StartedAt)
	}
}

func TestListOrdersSubSecondStarts(t *testing.T) {
	dir := t.TempDir()
	store := openStore(t, dir)
	ctx := context.Background()

	// 500ms and 520ms differ only in fractional digits. A layout that
	// drops trailing zeros would sort ".5Z" after ".52Z" as TEXT.
	base := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	older := runlog.Entry{
		ID:         "run-older",
		StartedAt:  base.Add(500 * time.Millisecond),
		FinishedAt: base.Add(time.Minute),
	}
	newer := runlog.Entry{
		ID:         "run-newer",
		StartedAt:  base.Add(520 * time.Millisecond),
		FinishedAt: base.Add(time.Minute),
	}
	if err := store.Append(ctx, older); err != nil {
		t.Fatalf("append older: %v", err)
	}
	if err := store.Append(ctx, newer); err != nil {
		t.Fatalf("append newer: %v", err)
	}

	entries, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "run-newer" || entries[1].ID != "run-older" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].ID, entries[1].ID)
	}
	if !entries[0].StartedAt.Equal(newer.StartedAt) {
		t.Fatalf("started_at mismatch: %v vs %v", entries[0].StartedAt, newer.StartedAt)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := openStore(t, dir)
	entry := runlog.Entry{
		ID:         "run-1",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}
	if err := store.Append(ctx, entry); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openStore(t, dir)
	entries, err := reopened.List(ctx, 10)
	if err != nil {
		t.Fatalf("list after reopen: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "run-1" {
		t.Fatalf("expected persisted run, got %+v", entries)
	}
}
