package request

import (
	"fmt"
	"net/url"
	"strings"
)

// Request holds the user's choices for one invocation.
type Request struct {
	URL            string
	Destination    string
	Format         Format
	EmbedThumbnail bool
	Playlist       bool
}

// Validate checks the invariants the orchestrator relies on.
func (r Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("destination is required")
	}
	if !r.Format.Valid() {
		return fmt.Errorf("unsupported audio format %q", r.Format)
	}
	return nil
}

// Mode returns "playlist" or "single".
func (r Request) Mode() string {
	if r.Playlist {
		return "playlist"
	}
	return "single"
}

// LooksLikePlaylist reports whether the URL carries a playlist reference,
// either as a list= query parameter or a /playlist path.
func LooksLikePlaylist(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.Contains(raw, "list=")
	}
	if parsed.Query().Get("list") != "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(parsed.Path), "/playlist")
}

// IsPlaylistOnly reports whether the URL addresses a playlist page rather than
// a single video that happens to belong to a playlist.
func IsPlaylistOnly(raw string) bool {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "playlist?list=") {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(parsed.Path), "/playlist") && parsed.Query().Get("v") == ""
}
