// Package progress renders terminal progress bars for long analysis runs
// and bridges them to the tracker the detectors report through.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/augurlabs/augur/pkg/analyzer"
)

// Bar wraps a terminal progress bar.
type Bar struct {
	bar   *progressbar.ProgressBar
	label string
}

// NewSpinner creates a spinner for operations with an unknown total.
func NewSpinner(label string) *Bar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Bar{bar: bar, label: label}
}

// NewBar creates a progress bar sized for total items.
func NewBar(label string, total int) *Bar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Bar{bar: bar, label: label}
}

// Tracker returns a detector tracker that drives this bar. Attach it to
// a context with analyzer.WithTracker before calling Analyze.
func (b *Bar) Tracker() *analyzer.Tracker {
	return analyzer.NewTracker(func(current, total int, path string) {
		b.bar.ChangeMax(total)
		b.bar.Set(current)
	})
}

// Tick advances the bar by one item.
func (b *Bar) Tick() {
	b.bar.Add(1)
}

// Finish clears the bar without output.
func (b *Bar) Finish() {
	b.bar.Finish()
	b.bar.Clear()
}

// FinishError clears the bar and prints the error to stderr.
func (b *Bar) FinishError(err error) {
	b.bar.Finish()
	b.bar.Clear()
	fmt.Fprintf(os.Stderr, "  %s error: %v\n", b.label, err)
}
