// internal/cli/debloat.go
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/UriCaBa/initio"
)

var debloatVerbose bool

var debloatCmd = &cobra.Command{
	Use:   "debloat",
	Short: "Detect and remove preinstalled Store apps",
}

var debloatScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List known bloatware and whether it is present",
	Args:  cobra.NoArgs,
	RunE:  runDebloatScan,
}

var debloatRemoveCmd = &cobra.Command{
	Use:   "remove [package...]",
	Short: "Remove detected bloatware",
	Long: `Remove the named packages, or every detected one when none are named.

Examples:
  initio debloat remove
  initio debloat remove Microsoft.BingNews Microsoft.GetHelp`,
	RunE: runDebloatRemove,
}

func init() {
	debloatRemoveCmd.Flags().BoolVarP(&debloatVerbose, "verbose", "v", false, "echo PowerShell output")
	debloatCmd.AddCommand(debloatScanCmd)
	debloatCmd.AddCommand(debloatRemoveCmd)
}

func runDebloatScan(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	items, err := mgr.DetectRemovals(context.Background())
	if err != nil {
		return err
	}

	found := 0
	category := ""
	for _, item := range items {
		if item.Category != category {
			category = item.Category
			fmt.Printf("\n%s\n", color.Bold.Sprint(category))
		}
		status := color.Gray.Sprint(item.StatusText())
		if item.Installed {
			found++
			status = color.Yellow.Sprint(item.StatusText())
		}
		fmt.Printf("  %-26s %-44s %s\n", item.Name, item.ID, status)
	}
	fmt.Printf("\n%d of %d known packages detected\n", found, len(items))
	return nil
}

func runDebloatRemove(cmd *cobra.Command, args []string) error {
	ctx, stop := interruptible()
	defer stop()

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	items, err := mgr.DetectRemovals(ctx)
	if err != nil {
		return err
	}
	targets, err := mgr.RemovalTargets(items, args)
	if err != nil {
		return err
	}

	obs := newBarObserver(len(targets), debloatVerbose)
	report, err := mgr.RemoveDetected(ctx, items, args, obs)
	obs.finish()
	if errors.Is(err, initio.ErrNothingToDo) {
		color.Green.Println("Nothing to remove.")
		return nil
	}
	if err != nil {
		return err
	}
	printReport(report, "Removal")
	if report.Failed > 0 {
		return fmt.Errorf("%d removal(s) failed", report.Failed)
	}
	return nil
}
