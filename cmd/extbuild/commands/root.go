// Package commands implements the CLI commands for the extbuild tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/extbuild/internal/app"
	"go.trai.ch/extbuild/internal/build"
	"go.trai.ch/extbuild/internal/core/domain"
)

// CLI represents the command line interface for extbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(ctx context.Context, platName string, opts domain.Options) (*domain.Extension, error)
	Build(ctx context.Context, opts app.BuildOptions) (string, error)
	Package(ctx context.Context) (string, error)
	Clean(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "extbuild",
		Short:         "Configure and build native extension modules",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newConfigureCmd())
	rootCmd.AddCommand(c.newPackageCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addTargetFlags registers the flags shared by build and configure.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("plat-name", "", "Target platform identifier (e.g. win-amd64, macosx-10.14-x86_64)")
	cmd.Flags().Bool("dynamic-linking", false, "Link against an installed engine library instead of compiling it in")
	cmd.Flags().Bool("enable-magic", false, "Compile the magic engine module")
	cmd.Flags().Bool("enable-cuckoo", false, "Compile the cuckoo engine module")
	cmd.Flags().Bool("enable-profiling", false, "Enable the engine's profiling instrumentation")
}

// targetFromFlags reads the shared flags back into domain options.
func targetFromFlags(cmd *cobra.Command) (string, domain.Options) {
	platName, _ := cmd.Flags().GetString("plat-name")
	dynamic, _ := cmd.Flags().GetBool("dynamic-linking")
	magic, _ := cmd.Flags().GetBool("enable-magic")
	cuckoo, _ := cmd.Flags().GetBool("enable-cuckoo")
	profiling, _ := cmd.Flags().GetBool("enable-profiling")

	return platName, domain.Options{
		DynamicLinking:  dynamic,
		EnableMagic:     magic,
		EnableCuckoo:    cuckoo,
		EnableProfiling: profiling,
	}
}
