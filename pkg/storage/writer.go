package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"flickrembed/pkg/config"
	"flickrembed/pkg/errors"
)

// Writer persists the embed-code fragments an extraction run produced.
type Writer struct {
	perms os.FileMode
}

// NewWriter creates a Writer using the output settings from cfg.
func NewWriter(cfg *config.OutputConfig) *Writer {
	perms := cfg.FilePermissions
	if perms == 0 {
		perms = 0644
	}
	return &Writer{perms: perms}
}

// Concat joins the fragments exactly as captured. No separators are added;
// each fragment already carries its own markup.
func Concat(fragments []string) string {
	return strings.Join(fragments, "")
}

// WriteTo streams the concatenated fragments to dst.
func (w *Writer) WriteTo(dst io.Writer, fragments []string) error {
	if _, err := io.WriteString(dst, Concat(fragments)); err != nil {
		return errors.NewIO("", "failed to write embed codes", err)
	}
	return nil
}

// WriteFile writes the concatenated fragments to path. The content goes to
// a temporary file first and is moved into place with a rename, so a
// failed run never leaves a truncated output file behind.
func (w *Writer) WriteFile(path string, fragments []string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewIO(path, "failed to create output directory", err)
		}
	}

	tempPath := path + ".tmp"
	out, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, w.perms)
	if err != nil {
		return errors.NewIO(path, "failed to create temporary file", err)
	}

	_, writeErr := io.WriteString(out, Concat(fragments))
	closeErr := out.Close()

	if writeErr != nil {
		os.Remove(tempPath)
		return errors.NewIO(path, "failed to write embed codes", writeErr)
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return errors.NewIO(path, "failed to close temporary file", closeErr)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewIO(path, "failed to move output file into place", err)
	}

	return nil
}
