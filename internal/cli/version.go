// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("initio version %s\n", version)
		fmt.Println("Windows setup orchestrator")
		fmt.Println("https://github.com/UriCaBa/initio")
	},
}
