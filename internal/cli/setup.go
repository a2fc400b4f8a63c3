// internal/cli/setup.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var setupName string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Import or export a setup file",
}

var setupImportCmd = &cobra.Command{
	Use:   "import <file.toml>",
	Short: "Track every application listed in a setup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetupImport,
}

var setupExportCmd = &cobra.Command{
	Use:   "export <file.toml>",
	Short: "Write the tracked applications to a setup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetupExport,
}

func init() {
	setupExportCmd.Flags().StringVar(&setupName, "name", "My Setup", "setup name written to the file")
	setupCmd.AddCommand(setupImportCmd)
	setupCmd.AddCommand(setupExportCmd)
}

func runSetupImport(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	n, err := mgr.ImportSetup(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d new application(s) from %s\n", n, args[0])
	return nil
}

func runSetupExport(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	n, err := mgr.ExportSetup(context.Background(), args[0], setupName)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d application(s) to %s\n", n, args[0])
	return nil
}
