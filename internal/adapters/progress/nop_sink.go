package progress

import (
	"io"
	"os"

	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink = usecase.NopProgress

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return NopSink{}
}

// NewSink picks the sink for the current run: a spinner on interactive
// terminals, nothing when non-interactive or when debug logs already describe each step.
func NewSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	return newSink(cfg, os.Stderr)
}

func newSink(cfg *config.RuntimeConfig, w io.Writer) usecase.ProgressSink {
	if cfg == nil || cfg.NonInteractive || cfg.Debug {
		return NewNopSink()
	}
	return NewSpinnerSink(w)
}
