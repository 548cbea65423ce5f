package digest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tubedigest/internal/logging"
	"tubedigest/internal/pipeline"
)

type stubGenerator struct {
	html string
	err  error
}

func (g *stubGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.html, nil
}

func sampleRecords() []pipeline.Record {
	return []pipeline.Record{
		{
			VideoID:      "v1",
			SourceID:     "@tech-channel",
			Title:        "Big Announcement",
			VideoURL:     "https://www.youtube.com/watch?v=v1",
			ThumbnailURL: "https://img.youtube.com/vi/v1/maxresdefault.jpg",
			Summary:      "# Big Announcement\n\nSomething shipped.",
		},
		{
			VideoID:  "v2",
			SourceID: "UCabc",
			Title:    "Second Video",
			Summary:  "# Second\n\nMore news.",
		},
	}
}

func newTestAssembler(g pipeline.Generator) *Assembler {
	a := NewAssembler(g, logging.NewNop())
	a.now = func() time.Time { return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC) }
	return a
}

func TestAssembleBuildsSubjectAndTextBody(t *testing.T) {
	assembler := newTestAssembler(&stubGenerator{html: "<h1>ok</h1>"})
	msg, ok := assembler.Assemble(context.Background(), sampleRecords())
	if !ok {
		t.Fatal("expected a message")
	}
	if msg.Subject != "YouTube Update - August 29, 2026" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.TextBody, "YouTube Update - August 29, 2026\n\n") {
		t.Fatalf("text body missing header: %q", msg.TextBody[:40])
	}
	if !strings.Contains(msg.TextBody, "Channel: @tech-channel\n# Big Announcement") {
		t.Fatalf("text body missing channel block: %q", msg.TextBody)
	}
	if strings.Count(msg.TextBody, "\n---\n") != 2 {
		t.Fatalf("expected a separator after each summary: %q", msg.TextBody)
	}
}

func TestAssembleBuildsHTMLCards(t *testing.T) {
	assembler := newTestAssembler(&stubGenerator{html: "<h1>Converted</h1><p>body</p>"})
	msg, ok := assembler.Assemble(context.Background(), sampleRecords())
	if !ok {
		t.Fatal("expected a message")
	}
	if strings.Contains(msg.HTMLBody, "VIDEO_CONTENT_PLACEHOLDER") {
		t.Fatal("placeholder not replaced")
	}
	if !strings.Contains(msg.HTMLBody, "<h1>YouTube Update - August 29, 2026</h1>") {
		t.Fatal("heading not updated with date")
	}
	if strings.Count(msg.HTMLBody, `<div class="video-card">`) != 2 {
		t.Fatal("expected one card per record")
	}
	if !strings.Contains(msg.HTMLBody, "Channel: Tech Channel") {
		t.Fatalf("handle should be displayed as a readable name: %s", msg.HTMLBody)
	}
	if !strings.Contains(msg.HTMLBody, `href="https://www.youtube.com/watch?v=v1"`) {
		t.Fatal("card missing video link")
	}
	if !strings.Contains(msg.HTMLBody, "<h1>Converted</h1>") {
		t.Fatal("converted summary missing from card")
	}
}

func TestAssembleFallsBackWhenConversionFails(t *testing.T) {
	assembler := newTestAssembler(&stubGenerator{err: errors.New("model unavailable")})
	records := []pipeline.Record{{
		VideoID:  "v1",
		SourceID: "@c",
		Summary:  "line <one>\nline two",
	}}
	msg, ok := assembler.Assemble(context.Background(), records)
	if !ok {
		t.Fatal("expected a message")
	}
	if !strings.Contains(msg.HTMLBody, "<p>line &lt;one&gt;<br>line two</p>") {
		t.Fatalf("expected escaped fallback, got %s", msg.HTMLBody)
	}
}

func TestAssembleEmptyBatch(t *testing.T) {
	assembler := newTestAssembler(&stubGenerator{})
	if _, ok := assembler.Assemble(context.Background(), nil); ok {
		t.Fatal("empty batch must not produce a message")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@tech-channel", "Tech Channel"},
		{"@some_name", "Some Name"},
		{"UCabc123", "UCabc123"},
		{"@", "@"},
	}
	for _, tc := range tests {
		if got := displayName(tc.in); got != tc.want {
			t.Errorf("displayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
