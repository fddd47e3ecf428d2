package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flickrembed/pkg/config"
	"flickrembed/pkg/errors"
)

func TestConcat(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{
			name:      "joins without separators",
			fragments: []string{"<a>one</a>", "<a>two</a>", "<a>three</a>"},
			want:      "<a>one</a><a>two</a><a>three</a>",
		},
		{
			name:      "single fragment unchanged",
			fragments: []string{"<blockquote>only</blockquote>"},
			want:      "<blockquote>only</blockquote>",
		},
		{
			name:      "empty input yields empty string",
			fragments: nil,
			want:      "",
		},
		{
			name:      "preserves fragment whitespace",
			fragments: []string{"<a>one</a>\n", "  <a>two</a>"},
			want:      "<a>one</a>\n  <a>two</a>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Concat(tt.fragments))
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "embeds.html")

	w := NewWriter(&config.OutputConfig{FilePermissions: 0644})
	err := w.WriteFile(path, []string{"<a>one</a>", "<a>two</a>"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<a>one</a><a>two</a>", string(data))

	// No temp file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "embeds.html")

	w := NewWriter(&config.OutputConfig{FilePermissions: 0644})
	require.NoError(t, w.WriteFile(path, []string{"<a></a>"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<a></a>", string(data))
}

func TestWriteFileOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "embeds.html")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0644))

	w := NewWriter(&config.OutputConfig{FilePermissions: 0644})
	require.NoError(t, w.WriteFile(path, []string{"<a>fresh</a>"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<a>fresh</a>", string(data))
}

func TestWriteFileUnwritablePath(t *testing.T) {
	w := NewWriter(&config.OutputConfig{FilePermissions: 0644})
	err := w.WriteFile(filepath.Join(string(os.PathSeparator), "proc", "no-such-dir", "embeds.html"), []string{"<a></a>"})
	require.Error(t, err)
	assert.True(t, errors.IsIO(err))
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&config.OutputConfig{})
	require.NoError(t, w.WriteTo(&buf, []string{"<a>one</a>", "<a>two</a>"}))
	assert.Equal(t, "<a>one</a><a>two</a>", buf.String())
}

func TestWriteToEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&config.OutputConfig{})
	require.NoError(t, w.WriteTo(&buf, nil))
	assert.Zero(t, buf.Len())
}
