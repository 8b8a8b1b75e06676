package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [FILE...]",
		Short: "Export the dependency graph in Graphviz DOT format",
		Long: "Export the dependency graph in Graphviz DOT format. " +
			"Any FILE arguments are rendered highlighted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output) //nolint:gosec // path is provided by user
				if err != nil {
					return err
				}
				defer f.Close() //nolint:errcheck // Best effort close in defer
				w = f
			}
			return c.app.ExportGraph(cmd.Context(), w, args)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write the graph to a file instead of stdout")
	return cmd
}
