package media

import (
	"context"
	"time"
)

// Candidate is one recently published video discovered for a source. It is
// ephemeral: candidates live only for the duration of a single run.
type Candidate struct {
	ID        string
	SourceID  string
	Title     string
	Published time.Time
}

// WatchURL returns the public page for the video.
func (c Candidate) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + c.ID
}

// ThumbnailURL returns the highest-resolution thumbnail for the video.
func (c Candidate) ThumbnailURL() string {
	return "https://img.youtube.com/vi/" + c.ID + "/maxresdefault.jpg"
}

// Window is an inclusive publish-time acceptance range.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowAround builds the acceptance range around now. The forward slack
// tolerates clock skew and future-dated premieres.
func WindowAround(now time.Time, daysBack, daysForward int) Window {
	return Window{
		Start: now.Add(-time.Duration(daysBack) * 24 * time.Hour),
		End:   now.Add(time.Duration(daysForward) * 24 * time.Hour),
	}
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Lister discovers recently published candidates for one source. A listing
// failure affects only that source; the batch scheduler logs the error and
// treats the source as having produced nothing.
type Lister interface {
	ListRecent(ctx context.Context, sourceID string, window Window, limit int) ([]Candidate, error)
}

// Fetcher retrieves the raw audio for a video into a local file owned by
// the caller. The caller must delete the file before pipeline exit.
type Fetcher interface {
	FetchAudio(ctx context.Context, videoID string) (string, error)
}
