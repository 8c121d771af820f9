package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Resolve the extension target without building it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			platName, opts := targetFromFlags(cmd)

			ext, err := c.app.Configure(cmd.Context(), platName, opts)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close() //nolint:errcheck // Best effort close in defer
			return enc.Encode(ext)
		},
	}

	addTargetFlags(cmd)
	return cmd
}
