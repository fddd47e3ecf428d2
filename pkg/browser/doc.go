// Package browser abstracts the automated browser behind the PageSession
// interface and provides the chromedp-backed implementation used in
// production.
//
// A PageSession owns exactly one browser process. It is acquired at the
// start of an extraction run and must be released with Close on every exit
// path; nothing else in the program touches the browser.
package browser
