package flickr

import (
	"encoding/json"
	"fmt"
)

// CSS selectors for the pieces of Flickr's album and photo pages the
// extractor interacts with. Flickr ships no stable API for these pages, so
// the markup classes are the contract.
const (
	// SelAlbumContainer marks a rendered album/photoset page
	SelAlbumContainer = "div.photo-list-view"

	// SelPhotoOverlay is the anchor laid over each photo tile, carrying the
	// photo detail page href
	SelPhotoOverlay = "a.overlay"

	// SelPaginationNext is the control that loads the next album page
	SelPaginationNext = "a[data-track='paginationRightClick']"

	// SelShareButton opens the sharing panel on a photo page
	SelShareButton = ".sub-photo-engagement-view .share"

	// SelEmbedTab switches the sharing panel to the embed view
	SelEmbedTab = "li[data-tab-name='embed']"

	// SelEmbedCode is the textarea holding the generated embed markup
	SelEmbedCode = ".embed-code-container textarea"
)

// JSScrollToBottom scrolls the window to the document bottom, which is what
// makes Flickr's album view lazy-load the next batch of photo tiles.
const JSScrollToBottom = `window.scrollTo(0, document.body.scrollHeight);`

// JSCollectPhotoHrefs returns a script that collects the href of every
// photo overlay anchor currently in the DOM, in document order.
func JSCollectPhotoHrefs() string {
	return fmt.Sprintf(`
	(() => {
		const anchors = document.querySelectorAll(%q);
		return Array.from(anchors).map(a => a.getAttribute('href')).filter(h => h);
	})()
	`, SelPhotoOverlay)
}

// JSCountElements returns a script that counts elements matching the selector.
func JSCountElements(selector string) string {
	return fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
}

// JSElementExists returns a script reporting whether an element matching
// the selector is present.
func JSElementExists(selector string) string {
	return fmt.Sprintf(`document.querySelector(%q) !== null`, selector)
}

// JSReadValue returns a script that reads the value of the first element
// matching the selector, or an empty string when it is absent.
func JSReadValue(selector string) string {
	sel, _ := json.Marshal(selector)
	return fmt.Sprintf(`
	(() => {
		const el = document.querySelector(%s);
		return el ? el.value : '';
	})()
	`, sel)
}
