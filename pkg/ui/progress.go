package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Progress shows extraction progress on stderr. The browser work is slow
// and silent, so a spinner is the difference between "working" and "hung".
type Progress struct {
	spinner   *spinner.Spinner
	startTime time.Time
	enabled   bool
}

// NewProgress creates a progress display. When enabled is false every
// method is a no-op, which keeps call sites free of conditionals.
func NewProgress(enabled bool) *Progress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	s.Color("cyan")
	return &Progress{
		spinner:   s,
		startTime: time.Now(),
		enabled:   enabled && !quiet,
	}
}

// Start begins the spinner with an initial message.
func (p *Progress) Start(message string) {
	if !p.enabled {
		return
	}
	p.startTime = time.Now()
	p.spinner.Suffix = " " + message
	p.spinner.Start()
}

// Update replaces the spinner message.
func (p *Progress) Update(message string) {
	if !p.enabled {
		return
	}
	p.spinner.Suffix = " " + message
}

// UpdatePhoto reports per-photo progress.
func (p *Progress) UpdatePhoto(completed, total int) {
	p.Update(fmt.Sprintf("Extracting embed codes (%d/%d)", completed, total))
}

// Stop halts the spinner and prints a final status line.
func (p *Progress) Stop(message string) {
	if !p.enabled {
		return
	}
	p.spinner.Stop()
	if message != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", Green("✓"), message)
	}
}

// Fail halts the spinner without a success mark.
func (p *Progress) Fail() {
	if !p.enabled {
		return
	}
	p.spinner.Stop()
}

// Elapsed returns the time since Start.
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.startTime)
}
