// Package storage writes extraction results to disk.
//
// Output files are written atomically: content goes to a temporary file
// next to the target and is renamed into place, so an interrupted or
// failed write never leaves a truncated file behind.
//
// Usage:
//
//	writer := storage.NewWriter(&cfg.Output)
//	if err := writer.WriteFile("embeds.html", fragments); err != nil {
//	    log.Error(err.Error())
//	}
package storage
