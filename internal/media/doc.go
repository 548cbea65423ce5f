// Package media discovers recently published videos and retrieves their
// raw audio.
//
// Two listing backends exist: YtDlp shells out to yt-dlp for a JSON
// metadata dump (the default, works with handles), and FeedLister reads
// YouTube's per-channel Atom feeds (cheaper, channel IDs only). Both
// implement Lister; the rest of the system is agnostic to the backend.
// Audio retrieval always goes through yt-dlp at the lowest usable
// bitrate, since the file exists only to be transcribed and deleted.
package media
