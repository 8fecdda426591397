package console

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Spinner shows progress on stderr while a long scan runs. It does nothing
// when stderr is not a terminal so redirected output stays clean.
type Spinner struct {
	spinner *spinner.Spinner
	enabled bool
}

// NewSpinner creates a stopped spinner labelled with message.
func NewSpinner(message string) *Spinner {
	s := &Spinner{
		enabled: isatty.IsTerminal(os.Stderr.Fd()) && colorMode != ColorNever,
	}

	if s.enabled {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.spinner.Suffix = " " + message
		_ = s.spinner.Color("cyan")
	}

	return s
}

// Start begins the animation.
func (s *Spinner) Start() {
	if s.enabled {
		s.spinner.Start()
	}
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	if s.enabled {
		s.spinner.Stop()
	}
}

// UpdateMessage replaces the label while the spinner runs.
func (s *Spinner) UpdateMessage(message string) {
	if s.enabled {
		s.spinner.Lock()
		s.spinner.Suffix = " " + message
		s.spinner.Unlock()
	}
}

// IsEnabled reports whether the spinner renders anything.
func (s *Spinner) IsEnabled() bool {
	return s.enabled
}
