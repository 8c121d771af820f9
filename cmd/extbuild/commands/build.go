package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/extbuild/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the extension module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			platName, opts := targetFromFlags(cmd)
			noCache, _ := cmd.Flags().GetBool("no-cache")
			jobs, _ := cmd.Flags().GetInt("jobs")

			module, err := c.app.Build(cmd.Context(), app.BuildOptions{
				PlatName:    platName,
				Options:     opts,
				NoCache:     noCache,
				Parallelism: jobs,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), module)
			return nil
		},
	}

	addTargetFlags(cmd)
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the build cache and force execution")
	cmd.Flags().IntP("jobs", "j", 0, "Number of concurrent tasks (default: one per CPU)")
	return cmd
}
