// Package spinner draws a one-line progress indicator on a terminal.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const interval = 80 * time.Millisecond

// Spinner animates a status message until stopped. The zero value is not
// usable; call Start.
type Spinner struct {
	w io.Writer

	mu      sync.Mutex
	message string
	width   int

	done    chan struct{}
	cleared chan struct{}
	once    sync.Once
}

// Start displays an animated spinner with the given message on w. When w is
// not a terminal nothing is drawn, so redirected output stays clean. Call
// Stop to clear the line.
func Start(w io.Writer, message string) *Spinner {
	s := &Spinner{
		w:       w,
		message: message,
		done:    make(chan struct{}),
		cleared: make(chan struct{}),
	}
	if !isTerminal(w) {
		close(s.cleared)
		return s
	}
	go s.run()
	return s
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.done) })
	<-s.cleared
}

func (s *Spinner) run() {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-s.done:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width)) //nolint:errcheck
			s.mu.Unlock()
			close(s.cleared)
			return
		case <-ticker.C:
			s.mu.Lock()
			line := frames[i%len(frames)] + " " + s.message
			// pad over any longer message drawn previously
			w := runewidth.StringWidth(line)
			fmt.Fprintf(s.w, "\r%s", runewidth.FillRight(line, max(w, s.width))) //nolint:errcheck
			s.width = max(w, s.width)
			s.mu.Unlock()
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
