package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "package",
		Short: "Write a compressed source bundle into dist/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := c.app.Package(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), bundle)
			return nil
		},
	}
}
