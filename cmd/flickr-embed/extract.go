package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"flickrembed/pkg/browser"
	"flickrembed/pkg/config"
	"flickrembed/pkg/extractor"
	"flickrembed/pkg/logger"
	"flickrembed/pkg/storage"
	"flickrembed/pkg/ui"
)

var (
	// Extract flags
	outputFile  string
	pageTimeout int
	headless    bool
	skipFailed  bool
)

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file for the embed codes (default: stdout)")
	rootCmd.Flags().IntVar(&pageTimeout, "timeout", 30, "per-page timeout in seconds")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")
	rootCmd.Flags().BoolVar(&skipFailed, "skip-failed", false, "skip photos whose embed code cannot be read instead of aborting")
}

func runExtract(cmd *cobra.Command, args []string) {
	os.Exit(doExtract(cmd, args))
}

// doExtract returns the process exit code. Deferred cleanup must run
// before the process exits, so os.Exit stays out of this function.
func doExtract(cmd *cobra.Command, args []string) int {
	albumURL := strings.TrimSpace(args[0])

	target := outputFile
	if len(args) == 2 {
		target = strings.TrimSpace(args[1])
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if target != "" {
		flags["output-file"] = target
	}
	if pageTimeout != 30 {
		flags["page-timeout"] = time.Duration(pageTimeout) * time.Second
	}
	if cmd.Flags().Changed("headless") {
		flags["headless"] = headless
	}
	if cmd.Flags().Changed("skip-failed") {
		flags["skip-failed"] = skipFailed
	}
	switch {
	case debug:
		flags["log-level"] = "debug"
	case logLevel != "info":
		flags["log-level"] = logLevel
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return 1
	}

	// Initialize logger
	logger.Initialize(&cfg.Logging)
	logger.WithField("version", version).Info("Flickr Embed starting")

	ui.PrintInfo("Target Album", albumURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Launch the browser
	session, err := browser.NewChromeSession(&cfg.Browser, logger.GetLogger())
	if err != nil {
		logger.WithError(err).Error("Browser startup failed")
		ui.PrintError("Failed to start browser", err.Error())
		return 1
	}
	defer session.Close()

	progress := ui.NewProgress(!quiet)
	progress.Start("Loading album page")

	ext := extractor.New(session, cfg, logger.GetLogger())
	ext.SetProgressFunc(func(p extractor.Progress) {
		progress.UpdatePhoto(p.Completed, p.Total)
		logger.LogAlbumProgress(albumURL, p.Completed, p.Total)
	})

	fragments, err := ext.ExtractAlbum(ctx, albumURL)
	if err != nil {
		progress.Fail()
		logger.WithError(err).WithField("album_url", albumURL).Error("Extraction failed")
		ui.PrintError("EXTRACTION FAILED", err.Error())
		return 1
	}

	progress.Stop(fmt.Sprintf("Extracted %d embed codes in %s",
		len(fragments), progress.Elapsed().Round(time.Second)))

	if len(fragments) == 0 {
		ui.PrintWarning("Album contains no photos")
	}

	// Write results
	writer := storage.NewWriter(&cfg.Output)
	if cfg.Output.File != "" {
		if err := writer.WriteFile(cfg.Output.File, fragments); err != nil {
			logger.WithError(err).Error("Failed to write output file")
			ui.PrintError("Failed to write output", err.Error())
			return 1
		}
		ui.PrintSuccess("Embed codes written to " + cfg.Output.File)
	} else {
		if err := writer.WriteTo(os.Stdout, fragments); err != nil {
			logger.WithError(err).Error("Failed to write results")
			ui.PrintError("Failed to write output", err.Error())
			return 1
		}
	}

	logger.WithField("album_url", albumURL).Info("Extraction completed successfully")
	return 0
}
