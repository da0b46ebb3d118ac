package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbsekit/sysmod/cmd/sysmod/commands"
	"github.com/mbsekit/sysmod/config"
	"github.com/mbsekit/sysmod/logger"
)

var rootCmd = &cobra.Command{
	Use:   "sysmod",
	Short: "sysmod - model graph resolution and validation",
	Long: `sysmod - Load, resolve, and validate typed model graphs.

sysmod consumes model documents (parts, requirements, attributes,
actions, stakeholders with composition and specialization edges),
computes resolved views with redefinition overrides applied, checks
requirement constraints with unit-aware comparison, and walks
sequential action flows.

Examples:
  sysmod validate model.yaml            # Full validation report
  sysmod validate model.yaml --watch    # Re-validate on file change
  sysmod resolve model.yaml drone       # Show an element's resolved view
  sysmod flow model.yaml mission        # Walk an action flow`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return logger.InitializeWithLevel(cfg.Log.JSON, logger.VerbosityToLevel(verbosity))
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.ResolveCmd)
	rootCmd.AddCommand(commands.FlowCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
