package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mbsekit/sysmod/flow"
	"github.com/mbsekit/sysmod/loader"
	"github.com/mbsekit/sysmod/logger"
	"github.com/mbsekit/sysmod/store"
)

var flowValidateOnly bool

// FlowCmd validates and walks an action's declared step chain
var FlowCmd = &cobra.Command{
	Use:   "flow MODEL ACTION",
	Short: "Validate and walk an action flow",
	Long: `Validate and walk an action flow.

Checks the declared first/then/done chain (exactly one first step, no
orphans, no branching, a single terminal path) and, when the flow is
well-formed, walks Start -> steps -> Done printing each step in order.`,
	Args: cobra.ExactArgs(2),
	RunE: runFlowCommand,
}

func init() {
	FlowCmd.Flags().BoolVar(&flowValidateOnly, "validate-only", false, "Check the flow without walking it")
}

func runFlowCommand(cmd *cobra.Command, args []string) error {
	path, actionID := args[0], args[1]

	result, err := loader.LoadFile(path, logger.Logger)
	if err != nil {
		return err
	}
	return runFlow(result.Store, actionID)
}

func runFlow(st *store.Store, actionID string) error {
	st.Freeze()
	engine := flow.New(st, logger.Logger)

	validation, err := engine.Validate(actionID)
	if err != nil {
		return err
	}
	if !validation.Valid() {
		for _, issue := range validation.Issues {
			pterm.Error.Printfln("%v", issue)
		}
		return validation.Issues[0]
	}
	pterm.Success.Printfln("Action %q is well-formed", actionID)

	if flowValidateOnly {
		return nil
	}

	pterm.Info.Println("Start")
	err = engine.Run(context.Background(), actionID, func(step string) {
		pterm.Info.Printfln("  -> %s", step)
	})
	if err != nil {
		return err
	}
	pterm.Info.Println("Done")
	return nil
}
