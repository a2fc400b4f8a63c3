// internal/cli/install.go
package cli

import (
	"errors"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/UriCaBa/initio"
)

var (
	installAll     bool
	installNoQuiet bool
	installVerbose bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the selected applications",
	Long: `Install every selected application that is not installed yet, one at a
time. Transient failures are retried; press Ctrl-C to cancel.

Examples:
  initio install
  initio install --all
  initio install --no-silent --verbose`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installAll, "all", false, "install every tracked application that is not installed")
	installCmd.Flags().BoolVar(&installNoQuiet, "no-silent", false, "let installers show their own UI")
	installCmd.Flags().BoolVarP(&installVerbose, "verbose", "v", false, "echo winget output")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx, stop := interruptible()
	defer stop()

	if installNoQuiet {
		config.Winget.Silent = false
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	if probe := mgr.Probe(ctx); !probe.WingetAvailable() {
		return fmt.Errorf("%w: winget (%v)", initio.ErrToolNotAvailable, probe.WingetErr)
	}

	items, err := mgr.Items(ctx)
	if err != nil {
		return err
	}
	total := 0
	for _, item := range items {
		if !item.Installed && (installAll || item.Selected) {
			total++
		}
	}

	obs := newBarObserver(total, installVerbose)
	report, err := mgr.Install(ctx, installAll, obs)
	obs.finish()
	if errors.Is(err, initio.ErrNothingToDo) {
		color.Yellow.Println("Nothing to install. Select applications with: initio select <id>")
		return nil
	}
	if report != nil {
		printReport(report, "Installation")
	}
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d installation(s) failed", report.Failed)
	}
	return nil
}
