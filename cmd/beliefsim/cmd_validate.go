package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvandessel/beliefsim/internal/scenario"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Preflight a scenario file without running it",
		Long: `Validate checks a scenario against the simulation's preconditions:
complete relationship tables, full per-agent starting state, and no
unknown or self references. Every problem found is reported; a valid
file is safe to run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			doc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			verr := doc.Validate()
			if jsonOut {
				result := map[string]any{
					"scenario": doc.Name,
					"valid":    verr == nil,
				}
				if verr != nil {
					result["problems"] = strings.Split(verr.Error(), "\n")
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
				if verr != nil {
					// Nonzero exit without repeating the report.
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
					return fmt.Errorf("scenario invalid")
				}
				return nil
			}

			if verr != nil {
				return verr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scenario %q is valid: %d agents, %d beliefs, %d behaviours, %d steps\n",
				doc.Name, len(doc.Agents), len(doc.Beliefs), len(doc.Behaviours), doc.Steps)
			return nil
		},
	}
}
