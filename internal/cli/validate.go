package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/energydiagram/pkg/errors"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/pipeline"
)

// validateCommand creates the validate command. It decodes and checks each
// document, lays it out, and reports every failure before returning.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check diagram documents without rendering",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			failed := 0
			for _, path := range args {
				levels, err := validateFile(cmd, path)
				if err != nil {
					failed++
					printError("%s: %s", path, describeError(err))
					loggerFromContext(ctx).Debug("validation failed", "file", path, "error", err)
					continue
				}
				if levels == 0 {
					printWarning("%s: no levels, renders an empty figure", path)
					continue
				}
				printSuccess("%s", path)
			}
			prog.done("validated documents", "files", len(args), "invalid", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			if len(args) == 1 {
				printNextStep("Render it", appName+" render "+args[0])
			}
			return nil
		},
	}
}

// validateFile returns the number of levels in a valid document.
func validateFile(cmd *cobra.Command, path string) (int, error) {
	doc, err := docio.ImportFile(path)
	if err != nil {
		return 0, err
	}
	d, _, err := pipeline.Build(cmd.Context(), doc)
	if err != nil {
		return 0, err
	}
	l, err := pipeline.Layout(cmd.Context(), d)
	if err != nil {
		return 0, err
	}
	return len(l.Levels), nil
}

// describeError renders a coded error as "message [CODE]".
func describeError(err error) string {
	if code := errors.GetCode(err); code != "" {
		return fmt.Sprintf("%s %s", errors.UserMessage(err), StyleDim.Render("["+string(code)+"]"))
	}
	return err.Error()
}
