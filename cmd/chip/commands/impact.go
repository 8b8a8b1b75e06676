package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newImpactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "impact FILE...",
		Short: "Print the files affected by changes to the given sources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := c.app.Impact(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, file := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", file.Library, file.Path)
			}
			return nil
		},
	}
}
