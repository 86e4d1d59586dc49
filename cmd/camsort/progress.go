package main

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"camsort/internal/logging"
)

// progressReporter renders a live progress bar on a terminal and falls back
// to sampled log lines elsewhere. Updates arrive serialized from the
// separator, so no locking is needed.
type progressReporter struct {
	logger      *slog.Logger
	out         *os.File
	interactive bool
	bar         *progressbar.ProgressBar
	lastDecile  int
}

func newProgressReporter(logger *slog.Logger, out *os.File) *progressReporter {
	return &progressReporter{
		logger:      logging.NewComponentLogger(logger, "progress"),
		out:         out,
		interactive: isTerminal(out),
		lastDecile:  -1,
	}
}

func (p *progressReporter) update(done, total int) {
	if total <= 0 {
		return
	}
	if p.interactive {
		if p.bar == nil {
			p.bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(p.out),
				progressbar.OptionSetDescription("separating"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = p.bar.Set(done)
		return
	}
	// One line per 10% keeps non-interactive logs readable on large batches.
	decile := done * 10 / total
	if decile > p.lastDecile {
		p.lastDecile = decile
		p.logger.Info("separation progress",
			logging.Int("done", done),
			logging.Int("total", total))
	}
}

func (p *progressReporter) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
