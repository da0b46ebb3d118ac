package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"github.com/mbsekit/sysmod/eval"
	"github.com/mbsekit/sysmod/loader"
	"github.com/mbsekit/sysmod/report"
	"github.com/mbsekit/sysmod/resolve"
)

// displayReportTable renders a validation report for the terminal
func displayReportTable(path string, result *loader.Result, rep *report.Report) {
	fmt.Printf("Validated %s (%d elements)\n\n", path, result.Store.Len())

	if len(result.Issues) > 0 {
		pterm.DefaultSection.Println("Load issues")
		for _, issue := range result.Issues {
			pterm.Error.Printfln("%s: %v", issue.ElementID, issue.Err)
		}
	}

	if len(rep.Verdicts) > 0 {
		pterm.DefaultSection.Println("Requirements")
		ids := make([]string, 0, len(rep.Verdicts))
		for id := range rep.Verdicts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			verdict := rep.Verdicts[id]
			switch verdict.Kind {
			case eval.VerdictSatisfied:
				pterm.Success.Printfln("%s: satisfied", id)
			case eval.VerdictViolated:
				pterm.Error.Printfln("%s: violated (%s)", id, verdict.Reason)
			case eval.VerdictIndeterminate:
				pterm.Warning.Printfln("%s: indeterminate (%s)", id, verdict.Reason)
			}
		}
	}

	if rep.Empty() && len(result.Issues) == 0 {
		pterm.Success.Println("Model is fully consistent")
		return
	}

	rows := pterm.TableData{{"Element", "Severity", "Diagnostic"}}
	for _, id := range rep.ElementIDs() {
		for _, d := range rep.Diagnostics(id) {
			rows = append(rows, []string{id, string(d.Severity), d.Message})
		}
	}
	pterm.DefaultSection.Println("Diagnostics")
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// displayReportJSON renders a validation report as JSON for machine
// consumption
func displayReportJSON(result *loader.Result, rep *report.Report) error {
	type loadIssue struct {
		ElementID string `json:"element_id"`
		Error     string `json:"error"`
	}
	out := struct {
		Elements    int                     `json:"elements"`
		LoadIssues  []loadIssue             `json:"load_issues,omitempty"`
		Diagnostics []report.Diagnostic     `json:"diagnostics,omitempty"`
		Verdicts    map[string]eval.Verdict `json:"verdicts,omitempty"`
		Consistent  bool                    `json:"consistent"`
	}{
		Elements:    result.Store.Len(),
		Diagnostics: rep.All(),
		Verdicts:    rep.Verdicts,
		Consistent:  rep.Empty() && len(result.Issues) == 0,
	}
	for _, issue := range result.Issues {
		out.LoadIssues = append(out.LoadIssues, loadIssue{ElementID: issue.ElementID, Error: issue.Err.Error()})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// displayView renders one element's resolved view
func displayView(view *resolve.View) {
	pterm.DefaultSection.Printfln("%s (%s)", view.Element.Label(), view.Element.Kind)

	if len(view.Ancestors) > 0 {
		pterm.Info.Printfln("Specializes: %v", view.Ancestors)
	}

	slots := view.Slots()
	if len(slots) > 0 {
		rows := pterm.TableData{{"Attribute", "Type", "Value", "Declared on"}}
		for _, slot := range slots {
			rows = append(rows, []string{slot.Name, slot.DeclaredType, slot.Value.String(), slot.Owner})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	if len(view.Children) > 0 {
		pterm.Info.Printfln("Children: %v", view.Children)
	}
}
