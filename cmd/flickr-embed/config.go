package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"flickrembed/pkg/config"
	"flickrembed/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage Flickr Embed configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (FLICKREMBED_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'flickr-embed.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = "flickr-embed.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Fprintln(os.Stderr, "\nTo overwrite, first remove the existing file:")
		fmt.Fprintf(os.Stderr, "  rm %s\n", configPath)
		os.Exit(1)
	}

	exampleConfig := `# Flickr Embed Configuration File
#
# This file contains all available configuration options.
# You can also use environment variables prefixed with FLICKREMBED_
# For example: FLICKREMBED_OUTPUT_FILE, FLICKREMBED_LOG_LEVEL

# Browser configuration
browser:
  # Run the browser without a visible window
  headless: true

  # User agent string (optional)
  # Leave empty to use the browser default
  user_agent: ""

  # Per-page navigation timeout
  page_timeout: 30s

  # Timeout for individual waits and clicks
  wait_timeout: 10s

# Extraction configuration
extraction:
  # Delay after each scroll before re-counting photo tiles.
  # The album view lazy-loads tiles, so this must cover Flickr's
  # render latency on your connection.
  scroll_settle_delay: 3s

  # Upper bound on scroll rounds per album page
  max_scroll_rounds: 100

  # Skip photos whose embed code cannot be read instead of aborting
  skip_failed_photos: false

# Output configuration
output:
  # Output file for the concatenated embed codes.
  # Leave empty to write to stdout.
  file: ""

  # File permissions (octal)
  file_permissions: 0644

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional)
  # Leave empty to log to stderr only
  file: ""
`

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	fmt.Fprintln(os.Stderr, "1. Adjust the settings to taste")
	fmt.Fprintln(os.Stderr, "2. Run 'flickr-embed config validate' to check the configuration")
	fmt.Fprintln(os.Stderr, "3. Extract an album with 'flickr-embed <album_url>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Fprintln(os.Stderr)
	fmt.Fprint(os.Stderr, string(data))

	fmt.Fprintln(os.Stderr, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(os.Stderr, "1. Command line flags")
	fmt.Fprintln(os.Stderr, "2. Environment variables (FLICKREMBED_*)")
	if configFile != "" {
		fmt.Fprintf(os.Stderr, "3. Configuration file: %s\n", configFile)
	} else {
		fmt.Fprintln(os.Stderr, "3. Configuration file: (not specified)")
	}
	fmt.Fprintln(os.Stderr, "4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	if configFile == "" {
		possiblePaths := []string{
			"flickr-embed.yaml",
			"flickr-embed.yml",
			".flickr-embed.yaml",
			".flickr-embed.yml",
			filepath.Join(os.Getenv("HOME"), ".flickr-embed.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "flickr-embed", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	var errors []string

	// Check the output file's directory is usable
	if cfg.Output.File != "" {
		dir := filepath.Dir(cfg.Output.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create output directory: %v", err))
		}
	}

	// Check logging file path
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	if len(errors) > 0 {
		ui.PrintError("Configuration has errors:", "")
		for _, e := range errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Fprintln(os.Stderr, "\nConfiguration summary:")
	if cfg.Output.File != "" {
		fmt.Fprintf(os.Stderr, "  Output file: %s\n", cfg.Output.File)
	} else {
		fmt.Fprintln(os.Stderr, "  Output file: (stdout)")
	}
	fmt.Fprintf(os.Stderr, "  Headless: %t\n", cfg.Browser.Headless)
	fmt.Fprintf(os.Stderr, "  Page timeout: %s\n", cfg.Browser.PageTimeout)
	fmt.Fprintf(os.Stderr, "  Scroll settle delay: %s\n", cfg.Extraction.ScrollSettleDelay)
	fmt.Fprintf(os.Stderr, "  Skip failed photos: %t\n", cfg.Extraction.SkipFailedPhotos)
	fmt.Fprintf(os.Stderr, "  Log level: %s\n", cfg.Logging.Level)
}
