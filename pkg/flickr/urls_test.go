package flickr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlbumURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		owner   string
		albumID string
		wantErr bool
	}{
		{
			name:    "canonical album URL",
			input:   "https://www.flickr.com/photos/endless_autumn/albums/72157659099366191",
			owner:   "endless_autumn",
			albumID: "72157659099366191",
		},
		{
			name:    "legacy sets URL",
			input:   "https://www.flickr.com/photos/endless_autumn/sets/72157659099366191",
			owner:   "endless_autumn",
			albumID: "72157659099366191",
		},
		{
			name:    "no scheme",
			input:   "www.flickr.com/photos/someone/albums/123",
			owner:   "someone",
			albumID: "123",
		},
		{
			name:    "bare host",
			input:   "https://flickr.com/photos/someone/albums/123",
			owner:   "someone",
			albumID: "123",
		},
		{
			name:    "trailing page path",
			input:   "https://www.flickr.com/photos/someone/albums/123/page2",
			owner:   "someone",
			albumID: "123",
		},
		{
			name:    "surrounding whitespace",
			input:   "  https://www.flickr.com/photos/someone/albums/123  ",
			owner:   "someone",
			albumID: "123",
		},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong host", input: "https://example.com/photos/x/albums/1", wantErr: true},
		{name: "photo page not album", input: "https://www.flickr.com/photos/someone/21526920079", wantErr: true},
		{name: "photostream", input: "https://www.flickr.com/photos/someone", wantErr: true},
		{name: "not photos path", input: "https://www.flickr.com/groups/x/albums/1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseAlbumURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, ref.Owner)
			assert.Equal(t, tt.albumID, ref.ID)
		})
	}
}

func TestAlbumRefURL(t *testing.T) {
	ref := AlbumRef{Owner: "endless_autumn", ID: "72157659099366191"}
	assert.Equal(t,
		"https://www.flickr.com/photos/endless_autumn/albums/72157659099366191",
		ref.URL())
}

func TestNormalizePhotoURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "relative href",
			input:    "/photos/endless_autumn/21526920079/in/album-72157659099366191/",
			expected: "https://www.flickr.com/photos/endless_autumn/21526920079/in/album-72157659099366191/",
		},
		{
			name:     "absolute href",
			input:    "https://www.flickr.com/photos/endless_autumn/21526920079/",
			expected: "https://www.flickr.com/photos/endless_autumn/21526920079/",
		},
		{
			name:     "strips query and fragment",
			input:    "/photos/x/123/?rb=1#comments",
			expected: "https://www.flickr.com/photos/x/123/",
		},
		{name: "album href rejected", input: "/photos/x/albums/123", wantErr: true},
		{name: "unrelated href rejected", input: "/help/forum", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhotoURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsPhotoURL(t *testing.T) {
	assert.True(t, IsPhotoURL("https://www.flickr.com/photos/x/21526920079/"))
	assert.True(t, IsPhotoURL("/photos/x/123"))
	assert.False(t, IsPhotoURL("/photos/x/albums/123"))
	assert.False(t, IsPhotoURL("/photos/x"))
	assert.False(t, IsPhotoURL("/groups/x/123"))
}

func TestJSCollectPhotoHrefs(t *testing.T) {
	js := JSCollectPhotoHrefs()
	assert.Contains(t, js, SelPhotoOverlay)
	assert.Contains(t, js, "querySelectorAll")
}

func TestJSReadValueEscapesSelector(t *testing.T) {
	js := JSReadValue(`textarea[name="embed"]`)
	assert.Contains(t, js, `\"embed\"`)
	assert.NotContains(t, strings.ReplaceAll(js, `\"`, ""), `""embed""`)
}
