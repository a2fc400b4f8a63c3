// internal/cli/catalog.go
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/UriCaBa/initio"
	"github.com/UriCaBa/initio/pkg/catalog"
)

var (
	catalogCategory string
	catalogQuery    string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the curated application catalog",
	Long: `Resolve the catalog (remote, then local cache, then the built-in copy)
and print it grouped by category.

Examples:
  initio catalog
  initio catalog --category Browsers
  initio catalog --query code`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search winget for packages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "only show this category")
	catalogCmd.Flags().StringVar(&catalogQuery, "query", "", "filter by name or id")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	entries, source := mgr.Catalog(ctx)
	items, err := mgr.Items(ctx)
	if err != nil {
		return err
	}
	status := initio.CatalogStatus(entries, items)

	shown := catalog.Filter(entries, catalogCategory, catalogQuery)
	fmt.Printf("Catalog (%s, %d apps)\n", source, len(entries))
	if len(shown) == 0 {
		fmt.Println("No matching apps.")
		return nil
	}

	category := ""
	for _, e := range shown {
		if e.Category != category {
			category = e.Category
			fmt.Printf("\n%s\n", color.Bold.Sprint(category))
		}
		line := fmt.Sprintf("  %2d. %-28s %-36s %.1f  %s", e.Rank, e.Name, e.ID, e.Rating, e.Signal)
		if s := status[e.ID]; s != "" {
			line += "  " + color.Green.Sprint(s)
		}
		fmt.Println(line)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.Join(args, " ")

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	results, err := mgr.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("No packages found for %q\n", query)
		return nil
	}

	for _, r := range results {
		fmt.Printf("  %-40s %s\n", r.Name, color.Cyan.Sprint(r.ID))
	}
	fmt.Printf("\n%d result(s). Track one with: initio add <id>\n", len(results))
	return nil
}
