// internal/cli/ui.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/schollz/progressbar/v3"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/executor"
	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/progress"
)

// statusColor picks the colour for an item's status column.
func statusColor(item *core.PackageItem) color.Color {
	switch item.Status.Kind {
	case core.StatusSucceeded:
		return color.Green
	case core.StatusFailed:
		return color.Red
	case core.StatusRunning, core.StatusVerifying, core.StatusRetrying:
		return color.Yellow
	}
	if item.Installed {
		return color.Green
	}
	return color.Gray
}

func checkbox(selected bool) string {
	if selected {
		return color.Cyan.Sprint("[x]")
	}
	return "[ ]"
}

// barObserver renders run log lines above a progress bar. Tool output is
// only echoed when verbose is set.
type barObserver struct {
	bar     *progressbar.ProgressBar
	verbose bool
}

func newBarObserver(total int, verbose bool) *barObserver {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(progress.Compute(0, 0, total).String()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &barObserver{bar: bar, verbose: verbose}
}

func (o *barObserver) Log(line string) {
	_ = o.bar.Clear()
	switch {
	case strings.Contains(line, "✓"):
		color.Green.Println(line)
	case strings.Contains(line, "✗"):
		color.Red.Println(line)
	default:
		fmt.Println(line)
	}
}

func (o *barObserver) Output(item *core.PackageItem, stream process.Stream, line string) {
	if !o.verbose {
		return
	}
	_ = o.bar.Clear()
	if stream == process.Stderr {
		color.Yellow.Printf("    %s\n", line)
		return
	}
	color.Gray.Printf("    %s\n", line)
}

func (o *barObserver) Progress(item *core.PackageItem, est progress.Estimate) {
	o.bar.Describe(est.String())
	_ = o.bar.Add(1)
}

func (o *barObserver) finish() {
	_ = o.bar.Finish()
}

var _ executor.Observer = (*barObserver)(nil)

// printReport prints the final summary of a run.
func printReport(r *executor.RunReport, noun string) {
	fmt.Println()
	if r.Cancelled {
		color.Yellow.Printf("%s was cancelled.\n", noun)
	}
	fmt.Printf("%s %d succeeded, %s, %d skipped in %s\n",
		color.Green.Sprint("✓"),
		r.Succeeded,
		color.Red.Sprintf("%d failed", r.Failed),
		r.Skipped,
		progress.Clock(r.Elapsed()),
	)
	fmt.Printf("Run %s\n", color.Gray.Sprint(r.ID))
}
