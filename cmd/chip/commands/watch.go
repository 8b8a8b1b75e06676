package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Compile the project and recompile on source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tool, err := cmd.Flags().GetString("tool")
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), tool)
		},
	}

	cmd.Flags().StringP("tool", "t", "ghdl", "Tool to compile with, as declared in the project file")
	return cmd
}
