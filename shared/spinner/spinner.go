// Package spinner shows progress on stderr while a scan runs.
package spinner

import (
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

var (
	mu     sync.Mutex
	loader *spinner.Spinner
)

// Enabled reports whether stderr is an interactive terminal.
func Enabled() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// StartSpinner starts the CLI loading spinner with the given message. It does
// nothing when stderr is not a terminal.
func StartSpinner(message string) {
	if !Enabled() {
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if loader != nil {
		loader.Stop()
	}
	loader = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " " + message
	loader.Start()
}

// UpdateSpinner replaces the message of a running spinner.
func UpdateSpinner(message string) {
	mu.Lock()
	defer mu.Unlock()
	if loader != nil {
		loader.Lock()
		loader.Suffix = " " + message
		loader.Unlock()
	}
}

// StopSpinner stops the CLI loading spinner.
func StopSpinner() {
	mu.Lock()
	defer mu.Unlock()
	if loader != nil {
		loader.Stop()
		loader = nil
	}
}
