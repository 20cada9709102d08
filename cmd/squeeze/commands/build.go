package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/squeeze/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [bundles...]",
		Short: "Build the bundles declared in squeeze.yaml",
		Long:  "Build the named bundles, or every bundle when none are named. Up-to-date bundles are skipped.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), args, buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [bundles...]",
		Short: "Rebuild bundles from squeeze.yaml whenever their files change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := buildOptions(cmd)
			opts.LiveReload, _ = cmd.Flags().GetString("live-reload")
			return c.app.Watch(cmd.Context(), args, opts)
		},
	}
	addBuildFlags(cmd)
	cmd.Flags().String("live-reload", "",
		"Serve live reload notifications and rebuild metrics on this address, e.g. localhost:35729")
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("force", "f", false, "Rebuild bundles even when they are up to date")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the build state, same as --force")
}

func buildOptions(cmd *cobra.Command) app.BuildOptions {
	force, _ := cmd.Flags().GetBool("force")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	return app.BuildOptions{Force: force || noCache}
}
