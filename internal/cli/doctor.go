// internal/cli/doctor.go
package cli

import (
	"context"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/UriCaBa/initio/pkg/platform"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that winget and PowerShell are usable",
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	probe := mgr.Probe(context.Background())

	fmt.Printf("Platform: %s/%s\n", probe.Platform.OS, probe.Platform.Arch)
	if !probe.Platform.Supported() {
		color.Yellow.Println("Installing and removing packages requires Windows.")
	}

	if probe.WingetAvailable() {
		fmt.Printf("%s %s %s\n", color.Green.Sprint("✓"), probe.WingetPath, probe.WingetVersion)
	} else {
		fmt.Printf("%s winget not available: %v\n", color.Red.Sprint("✗"), probe.WingetErr)
		fmt.Println("  Install App Installer from the Microsoft Store.")
	}

	if probe.ShellErr == nil {
		fmt.Printf("%s shell %s\n", color.Green.Sprint("✓"), probe.Shell)
	} else {
		fmt.Printf("%s %v\n", color.Red.Sprint("✗"), probe.ShellErr)
	}

	fmt.Println("\nTools on PATH:")
	for _, tool := range []string{config.Winget.Path, config.Shell.Path, platform.ToolPwsh} {
		path, ok := probe.Platform.Paths[tool]
		if !ok {
			fmt.Printf("  - %s\n", color.Gray.Sprint(tool))
			continue
		}
		fmt.Printf("  * %s (%s)\n", tool, path)
	}
	return nil
}
