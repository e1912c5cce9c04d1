package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/gridledger/energy-deploy/internal/usecase"
)

// SpinnerSink shows deployment stages on a stderr spinner
type SpinnerSink struct {
	mu             sync.Mutex
	out            io.Writer
	spinner        *spinner.Spinner
	currentStage   string
	stageStartTime time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink writing to w
func NewSpinnerSink(w io.Writer) *SpinnerSink {
	if w == nil {
		w = os.Stderr
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.HideCursor = false

	return &SpinnerSink{out: w, spinner: s}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Stage != r.currentStage {
		r.completeCurrentStage()
		r.currentStage = event.Stage
		r.stageStartTime = time.Now()
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

func (r *SpinnerSink) printPaused(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage prints a checkmark line for the stage that just finished
func (r *SpinnerSink) completeCurrentStage() {
	if r.currentStage == "" || r.currentStage == "completed" {
		return
	}
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fmt.Fprintf(r.out, "%s %s (%s)\n",
		color.GreenString("✓"),
		r.currentStage,
		time.Since(r.stageStartTime).Round(time.Millisecond))
	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
