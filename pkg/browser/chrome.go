package browser

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/chromedp/chromedp"

	"flickrembed/pkg/config"
	"flickrembed/pkg/errors"
	"flickrembed/pkg/logger"
)

// ChromeSession implements PageSession on top of a headless Chrome
// instance driven through chromedp. One ChromeSession owns one browser
// process for its whole lifetime.
type ChromeSession struct {
	ctx           context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc

	pageTimeout time.Duration
	waitTimeout time.Duration
	logger      logger.Logger
}

// NewChromeSession launches a browser according to cfg and returns a
// session bound to it. The caller must Close the session.
func NewChromeSession(cfg *config.BrowserConfig, log logger.Logger) (*ChromeSession, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.UserAgent(cfg.UserAgent),
	)
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &ChromeSession{
		ctx:           browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
		pageTimeout:   cfg.PageTimeout,
		waitTimeout:   cfg.WaitTimeout,
		logger:        log,
	}

	// Start the browser process now so a missing Chrome binary fails the
	// constructor instead of the first navigation
	startCtx, cancel := context.WithTimeout(browserCtx, cfg.PageTimeout)
	defer cancel()
	if err := chromedp.Run(startCtx); err != nil {
		s.Close()
		return nil, errors.NewNavigation("", "failed to start browser", err)
	}

	log.DebugWithFields("Browser session started", map[string]interface{}{
		"headless":     cfg.Headless,
		"page_timeout": cfg.PageTimeout,
	})

	return s, nil
}

// run executes chromedp actions under both the caller's ctx and the given
// per-operation timeout.
func (s *ChromeSession) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	opCtx, cancel := mergeContext(s.ctx, ctx)
	defer cancel()

	opCtx, timeoutCancel := context.WithTimeout(opCtx, timeout)
	defer timeoutCancel()

	return chromedp.Run(opCtx, actions...)
}

// mergeContext derives an operation context from the browser context that
// is also cancelled when the caller's ctx is done.
func mergeContext(browserCtx, callerCtx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(browserCtx)
	stop := context.AfterFunc(callerCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Navigate loads the URL and waits for the body element to be ready
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	start := time.Now()
	err := s.run(ctx, s.pageTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	logger.LogNavigation(url, float64(time.Since(start).Milliseconds()), err)

	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.NewTimeout(url, "page load timed out", err)
		}
		return errors.NewNavigation(url, "page load failed", err)
	}
	return nil
}

// Title returns the current page title
func (s *ChromeSession) Title(ctx context.Context) (string, error) {
	var title string
	if err := s.run(ctx, s.waitTimeout, chromedp.Title(&title)); err != nil {
		return "", errors.NewNavigation("", "failed to read page title", err)
	}
	return title, nil
}

// WaitVisible blocks until an element matching the selector is visible
func (s *ChromeSession) WaitVisible(ctx context.Context, selector string) error {
	err := s.run(ctx, s.waitTimeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.NewTimeout("", "timed out waiting for "+selector, err)
		}
		return err
	}
	return nil
}

// Click clicks the first element matching the selector
func (s *ChromeSession) Click(ctx context.Context, selector string) error {
	err := s.run(ctx, s.waitTimeout, chromedp.Click(selector, chromedp.ByQuery))
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.NewTimeout("", "timed out clicking "+selector, err)
		}
		return err
	}
	return nil
}

// Evaluate runs a JavaScript expression and unmarshals its result into out
func (s *ChromeSession) Evaluate(ctx context.Context, expression string, out interface{}) error {
	return s.run(ctx, s.waitTimeout, chromedp.Evaluate(expression, out))
}

// Close tears down the browser process and its allocator
func (s *ChromeSession) Close() error {
	s.browserCancel()
	s.allocCancel()
	if s.logger != nil {
		s.logger.Debug("Browser session closed")
	}
	return nil
}
