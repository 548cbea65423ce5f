package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tubedigest/internal/ledger"
	"tubedigest/internal/logging"
	"tubedigest/internal/runlog"
	"tubedigest/internal/testsupport"
)

func writeTestConfig(t *testing.T, opts ...testsupport.ConfigOption) string {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLedgerPathCommand(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "ledger", "path")
	if err != nil {
		t.Fatalf("ledger path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "processed_videos.json") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLedgerListShowsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.DataDir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}
	completed := ledger.Open(cfg.LedgerPath(), logging.NewNop())
	completed.Set("vid123", ledger.Entry{
		SourceID:    "@test-channel",
		Title:       "Generics Deep Dive",
		ProcessedAt: time.Now(),
	})
	if err := completed.Save(); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "ledger", "list")
	if err != nil {
		t.Fatalf("ledger list: %v", err)
	}
	for _, want := range []string{"vid123", "@test-channel", "Generics Deep Dive", "1 of 1 shown"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestRunsCommandShowsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	journal, err := runlog.Open(cfg.RunLogPath())
	if err != nil {
		t.Fatalf("open run journal: %v", err)
	}
	started := time.Now().Add(-time.Minute)
	entry := runlog.Entry{
		ID:         "run-42",
		StartedAt:  started,
		FinishedAt: started.Add(30 * time.Second),
		Sources:    1,
		Candidates: 5,
		Processed:  3,
		Skipped:    1,
		Failed:     1,
		DigestSent: true,
	}
	if err := journal.Append(context.Background(), entry); err != nil {
		t.Fatalf("append run: %v", err)
	}
	if err := journal.Close(); err != nil {
		t.Fatalf("close run journal: %v", err)
	}

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	for _, want := range []string{"run-42", "30s", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestLedgerListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "ledger", "list")
	if err != nil {
		t.Fatalf("ledger list: %v", err)
	}
	if !strings.Contains(out, "Ledger is empty") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunsCommandEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out, "No runs recorded") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	if _, err := runCLI(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config: %v", err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "@test-channel") {
		t.Fatalf("expected channel in output: %q", out)
	}
	if !strings.Contains(out, "window:            -3d .. +1d") {
		t.Fatalf("expected window line: %q", out)
	}
}

func TestConfigShowResolvedOverrides(t *testing.T) {
	configPath := writeTestConfig(t,
		testsupport.WithChannels("@news-channel"),
		testsupport.WithListing("rss"),
		testsupport.WithPostmark("server-token", "digest@example.com", "inbox@example.com"),
	)
	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "channels:          @news-channel") {
		t.Fatalf("expected overridden channel: %q", out)
	}
	if !strings.Contains(out, "listing:           rss") {
		t.Fatalf("expected rss listing: %q", out)
	}
	if !strings.Contains(out, "postmark:          yes") {
		t.Fatalf("expected postmark configured: %q", out)
	}
}
