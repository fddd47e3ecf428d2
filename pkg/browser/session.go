package browser

import "context"

// PageSession drives a single automated browser session. Implementations
// may use real browser automation; the extractor only depends on this
// interface so its sequential logic is testable without a browser.
//
// All methods honor ctx for cancellation. Implementations apply their own
// bounded timeouts on top, so no call blocks indefinitely.
type PageSession interface {
	// Navigate loads the URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error

	// Title returns the current page title.
	Title(ctx context.Context) (string, error)

	// WaitVisible blocks until an element matching the selector is visible.
	WaitVisible(ctx context.Context, selector string) error

	// Click clicks the first element matching the selector.
	Click(ctx context.Context, selector string) error

	// Evaluate runs a JavaScript expression in the page and unmarshals its
	// result into out.
	Evaluate(ctx context.Context, expression string, out interface{}) error

	// Close tears down the browser session. Must be called on every exit
	// path once the session is no longer needed.
	Close() error
}
