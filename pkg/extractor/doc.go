// Package extractor drives a browser session through a Flickr album and
// collects the embed-code fragment of every photo in display order.
//
// The walk is strictly sequential: one page at a time, one photo at a
// time. The package takes a browser.PageSession rather than a concrete
// browser so the whole pipeline can be tested without Chrome.
package extractor
