package commands

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mbsekit/sysmod/config"
	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/loader"
	"github.com/mbsekit/sysmod/logger"
	"github.com/mbsekit/sysmod/report"
)

var (
	validateFormat string
	validateWatch  bool
)

// ValidateCmd runs the full validation pass over a model document
var ValidateCmd = &cobra.Command{
	Use:   "validate MODEL",
	Short: "Validate a model document",
	Long: `Validate a model document.

Loads the document into an element store, resolves every element,
evaluates every requirement, validates every action flow, and prints
the collected diagnostics. An empty report means a fully consistent
model.

Examples:
  sysmod validate model.yaml
  sysmod validate model.yaml --format json
  sysmod validate model.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateCommand,
}

func init() {
	ValidateCmd.Flags().StringVarP(&validateFormat, "format", "f", "", "Output format (table/json, default from config)")
	ValidateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "Re-validate whenever the model file changes")
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	path := args[0]

	format := validateFormat
	if format == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		format = cfg.Output.Format
	}
	if format != "table" && format != "json" {
		return errors.Newf("unknown output format %q", format)
	}

	if !validateWatch {
		clean, err := validateOnce(path, format)
		if err != nil {
			return err
		}
		if !clean {
			return errors.New("model has diagnostics")
		}
		return nil
	}

	return watchAndValidate(path, format)
}

// validateOnce loads and validates the model, rendering the report.
// Returns whether the model came back clean.
func validateOnce(path, format string) (bool, error) {
	result, err := loader.LoadFile(path, logger.Logger)
	if err != nil {
		return false, err
	}
	rep := report.ValidateModel(result.Store, logger.Logger)

	if format == "json" {
		if err := displayReportJSON(result, rep); err != nil {
			return false, err
		}
	} else {
		displayReportTable(path, result, rep)
	}
	return rep.Empty() && len(result.Issues) == 0, nil
}

// watchAndValidate re-runs validation whenever the model file changes.
// The parent directory is watched because editors typically replace the
// file rather than write it in place.
func watchAndValidate(path, format string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", dir)
	}

	if _, err := validateOnce(path, format); err != nil {
		logger.Logger.Errorw("validation failed", "path", path, "error", err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Logger.Infow("model changed, re-validating", "path", path)
			if _, err := validateOnce(path, format); err != nil {
				logger.Logger.Errorw("validation failed", "path", path, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Logger.Warnw("watcher error", "error", err)
		}
	}
}
