// runs.go
package initio

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/UriCaBa/initio/pkg/appx"
	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/executor"
	"github.com/UriCaBa/initio/pkg/reconcile"
	"github.com/UriCaBa/initio/pkg/store"
)

// Install runs the install flow over the selected items that are not yet
// installed, or over every uninstalled item when all is set. A cancelled run
// is reported through RunReport.Cancelled, not as an error.
func (m *Manager) Install(ctx context.Context, all bool, obs Observer) (*RunReport, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return nil, err
	}

	var targets []*PackageItem
	for _, item := range items {
		if item.Installed {
			continue
		}
		if all || item.Selected {
			targets = append(targets, item)
		}
	}
	if len(targets) == 0 {
		return nil, &Error{Op: "install", Err: ErrNothingToDo}
	}

	report, err := m.run(ctx, m.winget, core.FlowInstall, targets, obs)
	if err != nil {
		return nil, err
	}
	if err := m.SaveItems(context.WithoutCancel(ctx), items); err != nil {
		return report, err
	}
	return report, nil
}

// DetectRemovals returns every known bloatware item with Installed set to
// whether the package is currently present.
func (m *Manager) DetectRemovals(ctx context.Context) ([]*PackageItem, error) {
	items := appx.Items()
	if _, err := reconcile.New(m.appx, m.notifier, m.logger).Reconcile(ctx, items); err != nil {
		return items, &Error{Op: "detect", Err: err}
	}
	return items, nil
}

// Remove runs the removal flow over the present packages named in names, or
// over every present package when names is empty.
func (m *Manager) Remove(ctx context.Context, names []string, obs Observer) (*RunReport, error) {
	items, err := m.DetectRemovals(ctx)
	if err != nil {
		return nil, err
	}
	return m.RemoveDetected(ctx, items, names, obs)
}

// RemoveDetected is Remove over items already returned by DetectRemovals.
func (m *Manager) RemoveDetected(ctx context.Context, items []*PackageItem, names []string, obs Observer) (*RunReport, error) {
	targets, err := m.RemovalTargets(items, names)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, &Error{Op: "remove", Err: ErrNothingToDo}
	}
	return m.run(ctx, m.appx, core.FlowRemove, targets, obs)
}

// RemovalTargets picks the present packages named in names, or every present
// package when names is empty.
func (m *Manager) RemovalTargets(items []*PackageItem, names []string) ([]*PackageItem, error) {
	var targets []*PackageItem
	if len(names) == 0 {
		for _, item := range items {
			if item.Installed {
				targets = append(targets, item)
			}
		}
		return targets, nil
	}

	for _, name := range names {
		_, item := findItem(items, name)
		if item == nil {
			return nil, &Error{Op: "remove", Package: name, Err: ErrItemNotFound}
		}
		if !item.Installed {
			m.logger.WithField("package", item.ID).Info("Not present, skipping")
			continue
		}
		if _, dup := findItem(targets, item.ID); dup == nil {
			targets = append(targets, item)
		}
	}
	return targets, nil
}

func (m *Manager) run(ctx context.Context, tool executor.Tool, flow core.Flow, targets []*PackageItem, obs Observer) (*RunReport, error) {
	ex, err := executor.New(&executor.Config{
		Tool: tool,
		Flow: flow,
		Policy: executor.Policy{
			MaxAttempts: m.config.Retry.Attempts,
			Backoff:     m.config.Retry.Backoff,
		},
		Logger:   m.logger,
		Notifier: m.notifier,
		Observer: obs,
	})
	if err != nil {
		return nil, &Error{Op: flow.String(), Err: err}
	}

	report := ex.Run(ctx, targets)
	if err := m.db.RecordRun(context.WithoutCancel(ctx), runRecord(report)); err != nil {
		// The run itself happened; losing its history is not fatal.
		m.logger.WithError(err).WithField("run", report.ID).Warn("Failed to record run")
	}
	return report, nil
}

func runRecord(r *RunReport) *store.Run {
	return &store.Run{
		ID:        r.ID,
		Kind:      r.Flow.String(),
		Started:   r.Started,
		Finished:  r.Finished,
		Total:     r.Total,
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
		Skipped:   r.Skipped,
		Cancelled: r.Cancelled,
		Log:       r.Log,
	}
}

// History lists recorded runs, newest first.
func (m *Manager) History(ctx context.Context, limit int) ([]Run, error) {
	runs, err := m.db.Runs(ctx, limit)
	if err != nil {
		return nil, &Error{Op: "history", Err: err}
	}
	return runs, nil
}

// RunLog returns a recorded run with its log. id may be a unique prefix.
func (m *Manager) RunLog(ctx context.Context, id string) (*Run, error) {
	run, err := m.db.RunLog(ctx, id)
	if err != nil {
		return nil, &Error{Op: "history", Package: id, Err: err}
	}
	m.logger.WithFields(logrus.Fields{"run": run.ID, "lines": len(run.Log)}).Debug("Loaded run log")
	return run, nil
}
