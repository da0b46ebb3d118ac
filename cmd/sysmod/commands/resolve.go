package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbsekit/sysmod/loader"
	"github.com/mbsekit/sysmod/logger"
	"github.com/mbsekit/sysmod/resolve"
)

var resolveJSON bool

// ResolveCmd shows the resolved view of one element
var ResolveCmd = &cobra.Command{
	Use:   "resolve MODEL ELEMENT",
	Short: "Show an element's resolved view",
	Long: `Show an element's resolved view.

Walks the element's specialization ancestors in merge order and prints
the effective attribute set with redefinition overrides applied, plus
inherited child references.`,
	Args: cobra.ExactArgs(2),
	RunE: runResolveCommand,
}

func init() {
	ResolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Emit the resolved view as JSON")
}

func runResolveCommand(cmd *cobra.Command, args []string) error {
	path, elementID := args[0], args[1]

	result, err := loader.LoadFile(path, logger.Logger)
	if err != nil {
		return err
	}

	resolver := resolve.New(result.Store, logger.Logger)
	view, err := resolver.Resolve(elementID)
	if err != nil {
		return err
	}

	if resolveJSON {
		out := struct {
			ID        string      `json:"id"`
			Kind      string      `json:"kind"`
			Ancestors []string    `json:"ancestors,omitempty"`
			Slots     interface{} `json:"slots,omitempty"`
			Children  []string    `json:"children,omitempty"`
		}{
			ID:        view.Element.ID,
			Kind:      string(view.Element.Kind),
			Ancestors: view.Ancestors,
			Slots:     view.Slots(),
			Children:  view.Children,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	displayView(view)
	return nil
}
