package media

import (
	"strings"
	"time"
)

// resolvePublished extracts a publish timestamp from a yt-dlp entry by
// trying fields in priority order until one parses. Different extractors
// populate different subsets, so every fallback here occurs in practice.
func resolvePublished(entry ytdlpEntry) (time.Time, bool) {
	if t, ok := parseCompactDate(entry.UploadDate); ok {
		return t, true
	}
	if t, ok := parseCompactDate(entry.ReleaseDate); ok {
		return t, true
	}
	if entry.Timestamp > 0 {
		return time.Unix(entry.Timestamp, 0).UTC(), true
	}
	if t, ok := parseISODate(entry.PublishedAt); ok {
		return t, true
	}
	return time.Time{}, false
}

// parseCompactDate parses yt-dlp's YYYYMMDD date strings.
func parseCompactDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("20060102", value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseISODate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ytdlpEntry is the subset of a yt-dlp JSON dump entry we consume. Channel
// dumps nest one level when the extractor returns tab playlists, so the
// type is recursive and flattened before use.
type ytdlpEntry struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	UploadDate  string       `json:"upload_date"`
	ReleaseDate string       `json:"release_date"`
	Timestamp   int64        `json:"timestamp"`
	PublishedAt string       `json:"published_at"`
	Entries     []ytdlpEntry `json:"entries"`
}

func flattenEntries(root ytdlpEntry) []ytdlpEntry {
	if len(root.Entries) == 0 {
		if root.ID == "" {
			return nil
		}
		return []ytdlpEntry{root}
	}
	var leaves []ytdlpEntry
	for _, entry := range root.Entries {
		leaves = append(leaves, flattenEntries(entry)...)
	}
	return leaves
}
