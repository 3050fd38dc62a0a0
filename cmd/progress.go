package cmd

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"ragbot/internal/index"
)

type ingestProgress struct {
	bar *progressbar.ProgressBar
}

// newIngestProgress returns a terminal progress bar, or nil when stderr is
// not a terminal (so piped output stays clean).
func newIngestProgress(enabled bool) index.ProgressReporter {
	if !enabled || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return &ingestProgress{}
}

func (p *ingestProgress) Start(total int) {
	if total <= 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("ingesting"),
		progressbar.OptionSetWidth(32),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *ingestProgress) Increment() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *ingestProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
