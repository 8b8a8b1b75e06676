package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the project files in compile order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := c.app.Order(cmd.Context())
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
