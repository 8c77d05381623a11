// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar prints a textual progress bar. The bar is redrawn in
// place on every Increment call, so it should be the only writer to
// its output while it is open.
type ProgressBar struct {
	out             io.Writer
	width           int
	maxProgress     int
	currentProgress int
	start           time.Time
	closed          bool
}

// New returns a new progress bar that is width characters wide and
// reaches 100% capacity after max Increment() calls.
func New(out io.Writer, width, max int) *ProgressBar {
	return &ProgressBar{
		out:         out,
		width:       width,
		maxProgress: max,
		start:       time.Now(),
	}
}

// Increment increments the internal progress counter and redraws the
// bar. Each time an iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.closed || p.currentProgress >= p.maxProgress {
		return
	}
	p.currentProgress++

	var bar strings.Builder
	bar.WriteString("|")

	filled := p.currentProgress * p.width / p.maxProgress
	for i := 0; i < p.width; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString(" ")
		}
	}
	fmt.Fprintf(p.out, "\r%v| [%.2f%% | elapsed: %v]", bar.String(),
		float64(p.currentProgress)/float64(p.maxProgress)*100,
		time.Since(p.start).Round(time.Second))
}

// Close closes the progress bar so that it will no longer display to
// the screen
func (p *ProgressBar) Close() {
	if p.closed {
		return
	}
	p.closed = true
	fmt.Fprintln(p.out) // Jump to next line after printed bar
}
