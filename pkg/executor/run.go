// pkg/executor/run.go
package executor

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/progress"
)

type phrases struct {
	start, step, ok, failed, done, cancelled string
}

var flowPhrases = map[core.Flow]phrases{
	core.FlowInstall: {
		start:     "Starting installation of %d app(s)...",
		step:      "[%d/%d] Installing %s (%s)...",
		ok:        "  ✓ %s installed successfully.",
		failed:    "  ✗ %s installation failed.",
		done:      "Installation complete: %d succeeded, %d failed, %d skipped (%s).",
		cancelled: "Cancelled after %d installs (%s).",
	},
	core.FlowRemove: {
		start:     "Starting removal of %d package(s)...",
		step:      "[%d/%d] Removing %s (%s)...",
		ok:        "  ✓ %s removed.",
		failed:    "  ✗ %s removal failed.",
		done:      "Removal complete: %d succeeded, %d failed, %d skipped (%s).",
		cancelled: "Cancelled after %d removals (%s).",
	},
}

// Run processes items strictly in order. Per-item failures are counted and
// never stop the run; cancelling ctx stops before the next item and kills
// the active process.
func (e *Executor) Run(ctx context.Context, items []*core.PackageItem) *RunReport {
	e.log = nil
	p := flowPhrases[e.flow]
	report := &RunReport{
		ID:      uuid.NewString(),
		Flow:    e.flow,
		Total:   len(items),
		Started: e.now(),
	}
	tracker := progress.NewTracker(len(items), e.now)
	log := e.logger.WithFields(logrus.Fields{"run": report.ID, "flow": e.flow.String()})
	log.WithField("total", len(items)).Info("Run started")

	e.logf(p.start, len(items))
	for i, item := range items {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		e.logf(p.step, i+1, len(items), item.Name, item.ID)
		out := e.Execute(ctx, item)
		report.Outcomes = append(report.Outcomes, out)

		switch {
		case out.Cancelled():
			report.Cancelled = true
		case out.Success:
			report.Succeeded++
			item.SetInstalled(e.flow == core.FlowInstall)
			core.Notify(e.notifier, item)
			e.logf(p.ok, item.Name)
		case out.Skipped():
			report.Skipped++
		default:
			report.Failed++
			e.logf(p.failed, item.Name)
		}
		if report.Cancelled {
			break
		}

		e.observer.Progress(item, tracker.Step())
	}

	elapsed := progress.Clock(tracker.Elapsed())
	if report.Cancelled {
		e.logf(p.cancelled, report.Succeeded, elapsed)
		log.Warn("Run cancelled")
	} else {
		e.logf(p.done, report.Succeeded, report.Failed, report.Skipped, elapsed)
	}

	report.Finished = e.now()
	report.Log = e.log
	e.log = nil

	log.WithFields(logrus.Fields{
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"skipped":   report.Skipped,
		"elapsed":   report.Elapsed(),
	}).Info("Run finished")
	return report
}
