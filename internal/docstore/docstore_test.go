package docstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCreatesNamespacedFile(t *testing.T) {
	store := New(t.TempDir())

	path, err := store.Write("@mkbhd", "v1", KindTranscript, "hello world")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("@mkbhd", "v1_transcript.txt")) {
		t.Fatalf("unexpected path: %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestPathsDoNotCollideAcrossKinds(t *testing.T) {
	store := New(t.TempDir())
	seen := map[string]bool{}
	for _, kind := range []Kind{KindTranscript, KindDerived, KindSummary} {
		p := store.Path("@mkbhd", "v1", kind)
		if seen[p] {
			t.Fatalf("duplicate path for kind %s: %q", kind, p)
		}
		seen[p] = true
	}
	if p := store.Path("@casey", "v1", KindTranscript); seen[p] {
		t.Fatalf("source namespace collision: %q", p)
	}
}
