package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Flickr embed extractor
type Config struct {
	// Browser session settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Album and photo page extraction settings
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// BrowserConfig holds settings for the automated browser session
type BrowserConfig struct {
	Headless    bool          `yaml:"headless" json:"headless"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent"`
	PageTimeout time.Duration `yaml:"page_timeout" json:"page_timeout"`
	WaitTimeout time.Duration `yaml:"wait_timeout" json:"wait_timeout"`
}

// ExtractionConfig holds settings for album enumeration and embed capture
type ExtractionConfig struct {
	// ScrollSettleDelay is how long to wait after each scroll-to-bottom
	// before recounting the photo links on the album page
	ScrollSettleDelay time.Duration `yaml:"scroll_settle_delay" json:"scroll_settle_delay"`

	// MaxScrollRounds bounds the infinite-scroll loop
	MaxScrollRounds int `yaml:"max_scroll_rounds" json:"max_scroll_rounds"`

	// SkipFailedPhotos switches the fault policy from abort-on-first-failure
	// to skip-and-warn for photos whose embed code cannot be read
	SkipFailedPhotos bool `yaml:"skip_failed_photos" json:"skip_failed_photos"`
}

// OutputConfig holds output file configuration
type OutputConfig struct {
	// File is the output path; empty means write to stdout
	File string `yaml:"file" json:"file"`

	FilePermissions os.FileMode `yaml:"file_permissions" json:"file_permissions"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// UnmarshalYAML decodes browser settings, accepting durations in Go's
// "30s" form. Absent keys keep the values already present in the struct.
func (b *BrowserConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Headless    *bool   `yaml:"headless"`
		UserAgent   *string `yaml:"user_agent"`
		PageTimeout *string `yaml:"page_timeout"`
		WaitTimeout *string `yaml:"wait_timeout"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Headless != nil {
		b.Headless = *raw.Headless
	}
	if raw.UserAgent != nil {
		b.UserAgent = *raw.UserAgent
	}
	if raw.PageTimeout != nil {
		d, err := time.ParseDuration(*raw.PageTimeout)
		if err != nil {
			return fmt.Errorf("invalid page_timeout: %w", err)
		}
		b.PageTimeout = d
	}
	if raw.WaitTimeout != nil {
		d, err := time.ParseDuration(*raw.WaitTimeout)
		if err != nil {
			return fmt.Errorf("invalid wait_timeout: %w", err)
		}
		b.WaitTimeout = d
	}
	return nil
}

// MarshalYAML writes durations in Go's "30s" form.
func (b BrowserConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Headless    bool   `yaml:"headless"`
		UserAgent   string `yaml:"user_agent"`
		PageTimeout string `yaml:"page_timeout"`
		WaitTimeout string `yaml:"wait_timeout"`
	}{b.Headless, b.UserAgent, b.PageTimeout.String(), b.WaitTimeout.String()}, nil
}

func (e *ExtractionConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ScrollSettleDelay *string `yaml:"scroll_settle_delay"`
		MaxScrollRounds   *int    `yaml:"max_scroll_rounds"`
		SkipFailedPhotos  *bool   `yaml:"skip_failed_photos"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.ScrollSettleDelay != nil {
		d, err := time.ParseDuration(*raw.ScrollSettleDelay)
		if err != nil {
			return fmt.Errorf("invalid scroll_settle_delay: %w", err)
		}
		e.ScrollSettleDelay = d
	}
	if raw.MaxScrollRounds != nil {
		e.MaxScrollRounds = *raw.MaxScrollRounds
	}
	if raw.SkipFailedPhotos != nil {
		e.SkipFailedPhotos = *raw.SkipFailedPhotos
	}
	return nil
}

func (e ExtractionConfig) MarshalYAML() (interface{}, error) {
	return struct {
		ScrollSettleDelay string `yaml:"scroll_settle_delay"`
		MaxScrollRounds   int    `yaml:"max_scroll_rounds"`
		SkipFailedPhotos  bool   `yaml:"skip_failed_photos"`
	}{e.ScrollSettleDelay.String(), e.MaxScrollRounds, e.SkipFailedPhotos}, nil
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:    true,
			UserAgent:   "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			PageTimeout: 30 * time.Second,
			WaitTimeout: 10 * time.Second,
		},
		Extraction: ExtractionConfig{
			ScrollSettleDelay: 3 * time.Second,
			MaxScrollRounds:   100,
			SkipFailedPhotos:  false,
		},
		Output: OutputConfig{
			File:            "",
			FilePermissions: 0644,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if userAgent := os.Getenv("FLICKREMBED_USER_AGENT"); userAgent != "" {
		c.Browser.UserAgent = userAgent
	}
	if headless := os.Getenv("FLICKREMBED_HEADLESS"); headless != "" {
		c.Browser.Headless = strings.ToLower(headless) != "false"
	}
	if timeout := os.Getenv("FLICKREMBED_PAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.Browser.PageTimeout = d
		}
	}
	if outputFile := os.Getenv("FLICKREMBED_OUTPUT_FILE"); outputFile != "" {
		c.Output.File = outputFile
	}
	if skip := os.Getenv("FLICKREMBED_SKIP_FAILED_PHOTOS"); skip != "" {
		c.Extraction.SkipFailedPhotos = strings.ToLower(skip) == "true"
	}
	if logLevel := os.Getenv("FLICKREMBED_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".flickr-embed.yaml",
		".flickr-embed.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "flickr-embed", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "flickr-embed", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".flickr-embed.yaml"),
		filepath.Join(os.Getenv("HOME"), ".flickr-embed.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Browser.PageTimeout <= 0 {
		errs = append(errs, errors.New("page timeout must be positive"))
	}
	if c.Browser.WaitTimeout <= 0 {
		errs = append(errs, errors.New("element wait timeout must be positive"))
	}

	if c.Extraction.ScrollSettleDelay <= 0 {
		errs = append(errs, errors.New("scroll settle delay must be positive"))
	}
	if c.Extraction.MaxScrollRounds <= 0 {
		errs = append(errs, errors.New("max scroll rounds must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputFile, ok := flags["output-file"].(string); ok && outputFile != "" {
		c.Output.File = outputFile
	}
	if timeout, ok := flags["page-timeout"].(time.Duration); ok && timeout > 0 {
		c.Browser.PageTimeout = timeout
	}
	if headless, ok := flags["headless"].(bool); ok {
		c.Browser.Headless = headless
	}
	if skip, ok := flags["skip-failed"].(bool); ok {
		c.Extraction.SkipFailedPhotos = skip
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".flickr-embed.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
