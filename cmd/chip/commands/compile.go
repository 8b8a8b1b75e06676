package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the project with the selected tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tool, err := cmd.Flags().GetString("tool")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			_, err = c.app.Compile(cmd.Context(), tool, force)
			return err
		},
	}

	cmd.Flags().StringP("tool", "t", "ghdl", "Tool to compile with, as declared in the project file")
	cmd.Flags().BoolP("force", "f", false, "Recompile every file, bypassing the cache")
	return cmd
}
