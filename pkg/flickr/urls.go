package flickr

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// BaseURL is the canonical base URL for Flickr
	BaseURL = "https://www.flickr.com"

	albumPathSegment  = "albums"
	legacyPathSegment = "sets"
)

// AlbumRef identifies a Flickr album/photoset by its owner and album ID.
type AlbumRef struct {
	Owner string
	ID    string
}

// URL returns the canonical album page URL
func (a AlbumRef) URL() string {
	return fmt.Sprintf("%s/photos/%s/albums/%s", BaseURL, a.Owner, a.ID)
}

// ParseAlbumURL validates a raw album URL and extracts the owner and album
// ID. Accepted forms are /photos/<owner>/albums/<id> and the legacy
// /photos/<owner>/sets/<id>, with or without a scheme, on any flickr.com
// host.
func ParseAlbumURL(raw string) (AlbumRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AlbumRef{}, fmt.Errorf("empty album URL")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return AlbumRef{}, fmt.Errorf("malformed album URL: %w", err)
	}

	host := strings.ToLower(u.Hostname())
	if host != "flickr.com" && !strings.HasSuffix(host, ".flickr.com") {
		return AlbumRef{}, fmt.Errorf("not a flickr.com URL: %s", u.Hostname())
	}

	// Expect /photos/<owner>/albums/<id>[/...]
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != "photos" {
		return AlbumRef{}, fmt.Errorf("not an album URL path: %s", u.Path)
	}
	if parts[2] != albumPathSegment && parts[2] != legacyPathSegment {
		return AlbumRef{}, fmt.Errorf("not an album URL path: %s", u.Path)
	}
	if parts[1] == "" || parts[3] == "" {
		return AlbumRef{}, fmt.Errorf("album URL missing owner or album id: %s", u.Path)
	}

	return AlbumRef{Owner: parts[1], ID: parts[3]}, nil
}

// NormalizePhotoURL resolves an href collected from an album page against
// the Flickr base URL and strips fragments and query parameters, so the
// same photo linked twice collapses to one URL.
func NormalizePhotoURL(href string) (string, error) {
	base, _ := url.Parse(BaseURL)

	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("malformed photo URL %q: %w", href, err)
	}

	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawQuery = ""

	if !IsPhotoURL(resolved.String()) {
		return "", fmt.Errorf("not a photo page URL: %s", resolved.String())
	}

	return resolved.String(), nil
}

// IsPhotoURL reports whether the URL points at a photo detail page
// (/photos/<owner>/<photoid>).
func IsPhotoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "photos" {
		return false
	}

	// The third segment must be a numeric photo id, not a sub-collection
	// like "albums" or "sets"
	for _, r := range parts[2] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return parts[2] != ""
}
