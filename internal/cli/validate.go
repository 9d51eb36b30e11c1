package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/avi3tal/flowguard/pkg/validation"
	"github.com/avi3tal/flowguard/pkg/workflow"
)

// errInvalidWorkflow signals a clean non-zero exit after findings were
// already printed.
var errInvalidWorkflow = errors.New("workflow has validation errors")

// NewValidateCommand creates the validate command.
func NewValidateCommand(_ *RootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a workflow document (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := workflow.Load(args[0])
			if err != nil {
				return err
			}

			result := validation.New().Validate(wf)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return errors.Wrap(err, "encoding result")
				}
			} else {
				printResult(cmd, result)
			}

			if !result.Valid {
				return errInvalidWorkflow
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func printResult(cmd *cobra.Command, result validation.Result) {
	out := cmd.OutOrStdout()
	for _, f := range result.Errors {
		fmt.Fprintf(out, "error   %-28s %s\n", f.Code, f.Message)
	}
	for _, f := range result.Warnings {
		fmt.Fprintf(out, "warning %-28s %s\n", f.Code, f.Message)
	}
	if result.Valid {
		fmt.Fprintln(out, "workflow is valid")
	}
}
