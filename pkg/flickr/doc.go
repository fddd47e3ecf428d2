// Package flickr holds the Flickr-specific knowledge the extractor depends
// on: album and photo page URL handling, and the CSS selectors and
// JavaScript snippets used against Flickr's rendered album and photo pages.
//
// Not every photoset visible on the website is reachable through Flickr's
// REST API, and the photo URLs cannot be read from the static HTML source
// either, so the pages have to be driven by a JavaScript-capable browser.
// This package centralizes the markup contract so a Flickr redesign means
// updating selectors in one place.
//
// Example usage:
//
//	ref, err := flickr.ParseAlbumURL("https://www.flickr.com/photos/endless_autumn/albums/72157659099366191")
//	if err != nil {
//	    // not an album URL
//	}
//	albumURL := ref.URL()
package flickr
