// internal/cli/list.go
package cli

import (
	"context"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/UriCaBa/initio/pkg/core"
)

var selectAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	Long:  `List the applications in your setup with their selection and status.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var addCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Track applications by winget id",
	Long: `Add applications to your setup. Ids found in the catalog take their
name and category from it; others are filed under "Custom".

Examples:
  initio add Mozilla.Firefox
  initio add Git.Git Microsoft.VisualStudioCode`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var dropCmd = &cobra.Command{
	Use:   "drop <id>...",
	Short: "Stop tracking applications",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDrop,
}

var selectCmd = &cobra.Command{
	Use:   "select [id...]",
	Short: "Mark applications for installation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(args, true)
	},
}

var deselectCmd = &cobra.Command{
	Use:   "deselect [id...]",
	Short: "Unmark applications for installation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelect(args, false)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Detect which tracked applications are already installed",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

func init() {
	selectCmd.Flags().BoolVar(&selectAll, "all", false, "select every application")
	deselectCmd.Flags().BoolVar(&selectAll, "all", false, "deselect every application")
}

func runList(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	items, err := mgr.Items(context.Background())
	if err != nil {
		return err
	}
	printItems(items)
	return nil
}

func printItems(items []*core.PackageItem) {
	if len(items) == 0 {
		fmt.Println("No applications tracked. Add some with: initio add <id>")
		return
	}

	selected := 0
	for _, item := range items {
		if item.Selected {
			selected++
		}
		fmt.Printf("%s %-28s %-36s %-14s %s\n",
			checkbox(item.Selected),
			item.Name,
			item.ID,
			item.Category,
			statusColor(item).Sprint(item.StatusText()),
		)
	}
	fmt.Printf("\n%d tracked, %d selected\n", len(items), selected)
}

func runAdd(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	res, err := mgr.Add(context.Background(), args...)
	if err != nil {
		return err
	}

	for _, item := range res.Added {
		fmt.Printf("%s Added %s (%s) to %s\n", color.Green.Sprint("✓"), item.Name, item.ID, item.Category)
		if s := res.Suggestions[item.ID]; len(s) > 0 {
			color.Yellow.Printf("  %s is not in the catalog. Did you mean %s (%s)?\n", item.ID, s[0].ID, s[0].Name)
		}
	}
	for _, id := range res.Duplicates {
		fmt.Printf("- %s is already tracked\n", id)
	}
	for id, reason := range res.Invalid {
		fmt.Printf("%s %s: %v\n", color.Red.Sprint("✗"), id, reason)
	}
	if len(res.Invalid) > 0 {
		return fmt.Errorf("%d invalid id(s)", len(res.Invalid))
	}
	return nil
}

func runDrop(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	n, err := mgr.Drop(context.Background(), args...)
	if err != nil {
		return err
	}
	fmt.Printf("Dropped %d application(s)\n", n)
	return nil
}

func runSelect(args []string, selected bool) error {
	if len(args) == 0 && !selectAll {
		return fmt.Errorf("give one or more ids, or --all")
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	n, err := mgr.Select(context.Background(), selected, args...)
	if err != nil {
		return err
	}
	verb := "Selected"
	if !selected {
		verb = "Deselected"
	}
	fmt.Printf("%s %d application(s)\n", verb, n)
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	fmt.Println("Checking installed applications...")
	items, res, err := mgr.Refresh(context.Background())
	if err != nil {
		return err
	}

	printItems(items)
	mode := "text listing"
	if res.Structured {
		mode = "exported ids"
	}
	fmt.Printf("%d installed (matched by %s)\n", len(res.Installed), mode)
	return nil
}
