package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"flickrembed/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	debug      bool
	quiet      bool
)

// rootCmd represents the base command. Extraction is the default action:
// the album URL and optional output file are positional arguments.
var rootCmd = &cobra.Command{
	Use:   "flickr-embed [flags] <album_url> [output_file]",
	Short: "Extract the embed codes of every photo in a public Flickr album",
	Long: `Flickr Embed walks a public Flickr album in a headless browser, opens
each photo page in display order, and captures the HTML embed code that
Flickr's share panel generates for it.

The embed codes are concatenated in album order and written to the output
file, or to stdout when no file is given. All diagnostics go to stderr, so
stdout can be piped safely.

A Chrome or Chromium binary must be installed; the tool launches it
headless and drives it over the DevTools protocol.`,
	Example: `  # Print the album's embed codes to stdout
  flickr-embed https://www.flickr.com/photos/flickr/albums/72157639858715274

  # Write them to a file instead
  flickr-embed https://www.flickr.com/photos/flickr/albums/72157639858715274 embeds.html

  # Watch the browser work
  flickr-embed --debug --headless=false https://www.flickr.com/photos/flickr/albums/72157639858715274`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		runExtract(cmd, args)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}
		if cmd.Name() != "version" && cmd.Name() != "help" && cmd.Name() != "completion" {
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.flickr-embed.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors and results")

	// Version template
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate)
	rootCmd.SetVersionTemplate(`flickr-embed {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
