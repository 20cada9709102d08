// Package commands implements the CLI commands for squeeze.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/squeeze/internal/app"
	"go.trai.ch/squeeze/internal/build"
	"go.trai.ch/squeeze/internal/core/domain"
)

// CLI represents the command line interface for squeeze.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Merge(ctx context.Context, inputs []string, opts app.MergeOptions) error
	List(ctx context.Context, files []string, opts app.ListOptions) ([]app.Chain, error)
	Verify(ctx context.Context, files []string) ([]domain.LintReport, error)
	Build(ctx context.Context, names []string, opts app.BuildOptions) error
	Watch(ctx context.Context, names []string, opts app.BuildOptions) error
	SetHome(dir string)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "squeeze",
		Short:         "Merge, rewrite and minify CSS and JavaScript assets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("home", "",
		"Home directory for external tools and build state (default $SQUEEZE_HOME or ~/.squeeze)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		home, _ := cmd.Flags().GetString("home")
		a.SetHome(home)
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newMergeCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
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
