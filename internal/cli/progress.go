package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/schollz/progressbar/v3"
)

// StageProgress shows a progress bar over a fixed list of named stages.
type StageProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	stages []string
	done   int
}

// NewStageProgress creates a bar with one step per stage.
func NewStageProgress(writer io.Writer, description string, stages []string) *StageProgress {
	if writer == nil {
		writer = os.Stderr
	}
	p := &StageProgress{writer: writer, stages: stages}
	p.bar = progressbar.NewOptions(len(stages),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Stage advances the bar to the named stage. Unknown stages are ignored.
func (p *StageProgress) Stage(name string) {
	idx := slices.Index(p.stages, name)
	if idx < 0 || idx+1 <= p.done {
		return
	}
	p.done = idx + 1
	if err := p.bar.Set(p.done); err != nil {
		slog.Debug("Failed to update progress bar", "error", err)
	}
	p.bar.Describe(fmt.Sprintf("[cyan][bold]%s[reset]", name))
}

// Done reports how many stages have completed.
func (p *StageProgress) Done() int {
	return p.done
}

// Finish completes the bar.
func (p *StageProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Debug("Failed to finish progress bar", "error", err)
	}
}
