package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbsekit/sysmod/internal/version"
)

// VersionCmd prints version and build information
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get().String())
	},
}
