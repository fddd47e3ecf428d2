package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flickrembed/pkg/config"
	"flickrembed/pkg/errors"
	"flickrembed/pkg/extractor"
	"flickrembed/pkg/flickr"
	"flickrembed/pkg/logger"
	"flickrembed/pkg/storage"
)

// TestAlbumToFileFlow walks the full pipeline from album URL to output
// file using a scripted page session.
func TestAlbumToFileFlow(t *testing.T) {
	session := NewScriptedSession(map[string]string{
		"/photos/demo/100/in/album-7/": `<a data-flickr-embed="true" href="p100"><img/></a>`,
		"/photos/demo/200/in/album-7/": `<a data-flickr-embed="true" href="p200"><img/></a>`,
	})

	cfg := testConfig()
	ext := extractor.New(session, cfg, logger.NewTestLogger())

	fragments, err := ext.ExtractAlbum(context.Background(), "https://www.flickr.com/photos/demo/albums/7")
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}

	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(fragments))
	}

	dir := t.TempDir()
	outPath := filepath.Join(dir, "embeds.html")

	writer := storage.NewWriter(&cfg.Output)
	if err := writer.WriteFile(outPath, fragments); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	want := `<a data-flickr-embed="true" href="p100"><img/></a>` +
		`<a data-flickr-embed="true" href="p200"><img/></a>`
	if string(data) != want {
		t.Errorf("unexpected output content:\n got: %s\nwant: %s", data, want)
	}
}

// TestEmptyAlbumProducesEmptyFile verifies an album with no photos still
// completes and produces empty output.
func TestEmptyAlbumProducesEmptyFile(t *testing.T) {
	session := NewScriptedSession(nil)

	cfg := testConfig()
	ext := extractor.New(session, cfg, logger.NewTestLogger())

	fragments, err := ext.ExtractAlbum(context.Background(), "https://www.flickr.com/photos/demo/albums/7")
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if len(fragments) != 0 {
		t.Fatalf("expected no fragments, got %d", len(fragments))
	}

	outPath := filepath.Join(t.TempDir(), "embeds.html")
	writer := storage.NewWriter(&cfg.Output)
	if err := writer.WriteFile(outPath, fragments); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file, got %q", data)
	}
}

// TestFailedPhotoLeavesNoOutput verifies that an aborted extraction
// produces no partial output file.
func TestFailedPhotoLeavesNoOutput(t *testing.T) {
	session := NewScriptedSession(map[string]string{
		"/photos/demo/100/in/album-7/": `<a href="p100"></a>`,
		"/photos/demo/200/in/album-7/": "", // embed code never renders
	})

	cfg := testConfig()
	ext := extractor.New(session, cfg, logger.NewTestLogger())

	outPath := filepath.Join(t.TempDir(), "embeds.html")

	_, err := ext.ExtractAlbum(context.Background(), "https://www.flickr.com/photos/demo/albums/7")
	if err == nil {
		t.Fatal("expected extraction to fail")
	}
	if !errors.IsExtraction(err) {
		t.Errorf("expected an extraction error, got %v", err)
	}

	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("no output file should exist after a failed extraction")
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Extraction.ScrollSettleDelay = time.Millisecond
	cfg.Extraction.MaxScrollRounds = 3
	return cfg
}

// ScriptedSession simulates a browser session over a fixed album. The
// photo map's keys are album-relative photo hrefs; display order follows
// their numeric photo IDs.
type ScriptedSession struct {
	hrefs   []string
	embeds  map[string]string
	current string
}

// NewScriptedSession builds a session over the given photos. Iteration
// order of the hrefs follows their numeric photo IDs.
func NewScriptedSession(photos map[string]string) *ScriptedSession {
	s := &ScriptedSession{embeds: make(map[string]string)}
	for href, embed := range photos {
		s.hrefs = append(s.hrefs, href)
		full, err := flickr.NormalizePhotoURL(href)
		if err == nil {
			s.embeds[full] = embed
		}
	}
	sortStrings(s.hrefs)
	return s
}

func sortStrings(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j] < ss[j-1]; j-- {
			ss[j], ss[j-1] = ss[j-1], ss[j]
		}
	}
}

func (s *ScriptedSession) Navigate(ctx context.Context, url string) error {
	s.current = url
	return nil
}

func (s *ScriptedSession) Title(ctx context.Context) (string, error) {
	return "Album | Flickr", nil
}

func (s *ScriptedSession) WaitVisible(ctx context.Context, selector string) error {
	if selector == flickr.SelEmbedCode && s.embeds[s.current] == "" {
		return context.DeadlineExceeded
	}
	return nil
}

func (s *ScriptedSession) Click(ctx context.Context, selector string) error {
	return nil
}

func (s *ScriptedSession) Evaluate(ctx context.Context, expression string, out interface{}) error {
	switch {
	case strings.Contains(expression, flickr.SelAlbumContainer):
		*(out.(*bool)) = true
	case strings.Contains(expression, flickr.SelPaginationNext):
		*(out.(*bool)) = false
	case strings.Contains(expression, "length"):
		*(out.(*int)) = len(s.hrefs)
	case strings.Contains(expression, "getAttribute"):
		*(out.(*[]string)) = s.hrefs
	case strings.Contains(expression, "value"):
		*(out.(*string)) = s.embeds[s.current]
	}
	return nil
}

func (s *ScriptedSession) Close() error { return nil }
