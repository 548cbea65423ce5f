package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tubedigest/internal/logging"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns="http://www.w3.org/2005/Atom">
  <title>Example Channel</title>
  <entry>
    <id>yt:video:abc123</id>
    <title>Inside the Window</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <published>2026-08-14T10:00:00+00:00</published>
  </entry>
  <entry>
    <id>yt:video:old456</id>
    <title>Outside the Window</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=old456"/>
    <published>2026-08-01T10:00:00+00:00</published>
  </entry>
</feed>`

func TestFeedListerParsesAndFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	window := WindowAround(now, 3, 1)

	lister := NewFeedLister(logging.NewNop())
	candidates, err := lister.ListRecent(context.Background(), server.URL, window, 5)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	if candidates[0].ID != "abc123" || candidates[0].Title != "Inside the Window" {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
}

func TestFeedURLMapping(t *testing.T) {
	tests := []struct {
		sourceID string
		want     string
		wantErr  bool
	}{
		{sourceID: "https://example.com/feed.xml", want: "https://example.com/feed.xml"},
		{sourceID: "UCX6OQ3DkcsbYNE6H8uQQuVA", want: "https://www.youtube.com/feeds/videos.xml?channel_id=UCX6OQ3DkcsbYNE6H8uQQuVA"},
		{sourceID: "@handle", wantErr: true},
	}
	for _, tc := range tests {
		got, err := feedURL(tc.sourceID)
		if tc.wantErr {
			if err == nil {
				t.Errorf("feedURL(%q): expected error", tc.sourceID)
			}
			continue
		}
		if err != nil {
			t.Errorf("feedURL(%q): %v", tc.sourceID, err)
			continue
		}
		if got != tc.want {
			t.Errorf("feedURL(%q) = %q, want %q", tc.sourceID, got, tc.want)
		}
	}
}
