package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/beliefsim/internal/scenario"
	"github.com/nvandessel/beliefsim/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <scenario.yaml>",
		Short: "Render a scenario's social network as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			dot := visualization.RenderDOT(doc)

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), dot)
				return nil
			}
			if err := os.WriteFile(out, []byte(dot), 0644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote DOT graph to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default stdout)")
	return cmd
}
