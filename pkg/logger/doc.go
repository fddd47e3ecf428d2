// Package logger provides a structured logging interface for the Flickr
// embed extractor.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output on stderr with colors
// - Optional file output
// - Global logger instance for easy access
//
// Diagnostic output is written to stderr so that stdout stays reserved for
// the embed codes themselves when no output file is specified.
//
// Basic Usage:
//
//	import "flickrembed/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "debug",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.Info("Extraction started")
//	logger.WithField("album_url", url).Info("Album page loaded")
//	logger.WithError(err).Error("Failed to read embed code")
package logger
