// internal/cli/history.go
package cli

import (
	"context"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/UriCaBa/initio/pkg/progress"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past install and removal runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the log of a past run",
	Long:  `Print the log of a past run. A unique prefix of the run id is enough.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
	historyCmd.AddCommand(historyShowCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	runs, err := mgr.History(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		state := color.Green.Sprint("done")
		switch {
		case r.Cancelled:
			state = color.Yellow.Sprint("cancelled")
		case r.Failed > 0:
			state = color.Red.Sprint("failures")
		}
		fmt.Printf("%s  %-7s %s  %d/%d ok, %d failed, %d skipped  %s  %s\n",
			color.Gray.Sprint(r.ID[:8]),
			r.Kind,
			r.Started.Local().Format("2006-01-02 15:04"),
			r.Succeeded, r.Total, r.Failed, r.Skipped,
			progress.Clock(r.Finished.Sub(r.Started)),
			state,
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	run, err := mgr.RunLog(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s) started %s\n\n", run.ID, run.Kind, run.Started.Local().Format("2006-01-02 15:04:05"))
	for _, line := range run.Log {
		fmt.Println(line)
	}
	return nil
}
