package extractor

import (
	"context"
	"strings"
	"time"

	"flickrembed/pkg/browser"
	"flickrembed/pkg/config"
	"flickrembed/pkg/errors"
	"flickrembed/pkg/flickr"
	"flickrembed/pkg/logger"
)

// Progress reports the state of an extraction run after each photo.
type Progress struct {
	PhotoURL  string
	Completed int
	Total     int
}

// ProgressFunc is called as photos are processed.
type ProgressFunc func(Progress)

// Extractor walks a Flickr album and captures the embed-code fragment of
// every photo it contains, in display order.
type Extractor struct {
	session  browser.PageSession
	config   *config.Config
	logger   logger.Logger
	progress ProgressFunc
}

// New creates a new Extractor using the given browser session. The caller
// retains ownership of the session and is responsible for closing it.
func New(session browser.PageSession, cfg *config.Config, log logger.Logger) *Extractor {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Extractor{
		session: session,
		config:  cfg,
		logger:  log,
	}
}

// SetProgressFunc registers a callback invoked after each photo.
func (e *Extractor) SetProgressFunc(fn ProgressFunc) {
	e.progress = fn
}

// ExtractAlbum loads the album page, enumerates its photo pages in display
// order, and returns one embed-code fragment per photo.
//
// An empty album yields an empty slice and no error. By default the first
// photo whose embed code cannot be read aborts the whole run; with
// extraction.skip_failed_photos enabled the photo is skipped with a
// warning instead.
func (e *Extractor) ExtractAlbum(ctx context.Context, albumURL string) ([]string, error) {
	ref, err := flickr.ParseAlbumURL(albumURL)
	if err != nil {
		return nil, errors.NewNavigation(albumURL, "not a Flickr album URL", err)
	}

	log := e.logger.WithField("album_url", ref.URL())
	log.Info("Loading album page")

	if err := e.session.Navigate(ctx, ref.URL()); err != nil {
		return nil, err
	}

	// The site serves a "Problem" page instead of an HTTP error when it
	// cannot show the content
	title, err := e.session.Title(ctx)
	if err != nil {
		return nil, err
	}
	if strings.Contains(title, "Problem") {
		return nil, errors.NewNavigation(ref.URL(), "album page could not be reached: "+title, nil)
	}

	var isAlbum bool
	if err := e.session.Evaluate(ctx, flickr.JSElementExists(flickr.SelAlbumContainer), &isAlbum); err != nil {
		return nil, errors.NewNavigation(ref.URL(), "failed to inspect album page", err)
	}
	if !isAlbum {
		return nil, errors.NewNavigation(ref.URL(), "page is not a recognizable album page", nil)
	}

	photoURLs, err := e.enumeratePhotoURLs(ctx)
	if err != nil {
		return nil, err
	}

	log.WithField("photo_count", len(photoURLs)).Info("Album enumerated")

	fragments := make([]string, 0, len(photoURLs))
	for i, photoURL := range photoURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fragment, err := e.extractEmbedCode(ctx, photoURL)
		if err != nil {
			if e.config.Extraction.SkipFailedPhotos {
				log.WithError(err).WithField("photo_url", photoURL).Warn("Skipping photo")
				continue
			}
			return nil, err
		}

		fragments = append(fragments, fragment)
		log.WithFields(map[string]interface{}{
			"photo_url":    photoURL,
			"fragment_len": len(fragment),
		}).Debug("Embed code captured")

		if e.progress != nil {
			e.progress(Progress{
				PhotoURL:  photoURL,
				Completed: i + 1,
				Total:     len(photoURLs),
			})
		}
	}

	return fragments, nil
}

// enumeratePhotoURLs collects the photo page URLs of the current album in
// display order, following pagination until no next-page control remains.
func (e *Extractor) enumeratePhotoURLs(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var ordered []string

	appendHrefs := func(hrefs []string) {
		for _, href := range hrefs {
			photoURL, err := flickr.NormalizePhotoURL(href)
			if err != nil {
				e.logger.WithError(err).WithField("href", href).Debug("Ignoring non-photo link")
				continue
			}
			if !seen[photoURL] {
				seen[photoURL] = true
				ordered = append(ordered, photoURL)
			}
		}
	}

	hrefs, err := e.collectCurrentPage(ctx)
	if err != nil {
		return nil, err
	}
	appendHrefs(hrefs)

	// Follow-up pages, if any
	for {
		var hasNext bool
		if err := e.session.Evaluate(ctx, flickr.JSElementExists(flickr.SelPaginationNext), &hasNext); err != nil {
			return nil, errors.NewNavigation("", "failed to check for pagination", err)
		}
		if !hasNext {
			break
		}

		e.logger.Debug("Following album pagination")
		if err := e.session.Click(ctx, flickr.SelPaginationNext); err != nil {
			return nil, errors.NewNavigation("", "failed to open next album page", err)
		}
		if err := e.session.WaitVisible(ctx, flickr.SelAlbumContainer); err != nil {
			return nil, errors.NewNavigation("", "next album page did not render", err)
		}

		hrefs, err := e.collectCurrentPage(ctx)
		if err != nil {
			return nil, err
		}
		appendHrefs(hrefs)
	}

	return ordered, nil
}

// collectCurrentPage scrolls to the document bottom until the number of
// photo links stops growing, then returns their hrefs in document order.
// The album view lazy-loads tiles on scroll, so a plain query after page
// load only sees the first batch.
func (e *Extractor) collectCurrentPage(ctx context.Context) ([]string, error) {
	known := 0
	for round := 0; round < e.config.Extraction.MaxScrollRounds; round++ {
		if err := e.session.Evaluate(ctx, flickr.JSScrollToBottom, nil); err != nil {
			return nil, errors.NewNavigation("", "failed to scroll album page", err)
		}

		if err := sleep(ctx, e.config.Extraction.ScrollSettleDelay); err != nil {
			return nil, err
		}

		var count int
		if err := e.session.Evaluate(ctx, flickr.JSCountElements(flickr.SelPhotoOverlay), &count); err != nil {
			return nil, errors.NewNavigation("", "failed to count photo links", err)
		}

		e.logger.WithFields(map[string]interface{}{
			"round": round,
			"count": count,
		}).Debug("Scroll round completed")

		if count <= known {
			break
		}
		known = count
	}

	var hrefs []string
	if err := e.session.Evaluate(ctx, flickr.JSCollectPhotoHrefs(), &hrefs); err != nil {
		return nil, errors.NewNavigation("", "failed to collect photo links", err)
	}
	return hrefs, nil
}

// extractEmbedCode opens one photo page, activates the share panel's embed
// view, and reads the generated markup.
func (e *Extractor) extractEmbedCode(ctx context.Context, photoURL string) (string, error) {
	if err := e.session.Navigate(ctx, photoURL); err != nil {
		return "", err
	}

	if err := e.session.Click(ctx, flickr.SelShareButton); err != nil {
		return "", errors.NewExtraction(photoURL, "share control not found", err)
	}
	if err := e.session.Click(ctx, flickr.SelEmbedTab); err != nil {
		return "", errors.NewExtraction(photoURL, "embed tab not found", err)
	}
	if err := e.session.WaitVisible(ctx, flickr.SelEmbedCode); err != nil {
		return "", errors.NewExtraction(photoURL, "embed code did not render", err)
	}

	var code string
	if err := e.session.Evaluate(ctx, flickr.JSReadValue(flickr.SelEmbedCode), &code); err != nil {
		return "", errors.NewExtraction(photoURL, "failed to read embed code", err)
	}
	if strings.TrimSpace(code) == "" {
		return "", errors.NewExtraction(photoURL, "embed code is empty", nil)
	}

	return code, nil
}

// sleep blocks for d or until ctx is cancelled
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
