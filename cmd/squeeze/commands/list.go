package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/squeeze/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [files...]",
		Short: "List the dependency chain of each file",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			typ, _ := cmd.Flags().GetString("type")
			documentRoot, _ := cmd.Flags().GetString("document-root")

			chains, err := c.app.List(cmd.Context(), args, app.ListOptions{Type: typ, DocumentRoot: documentRoot})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, chain := range chains {
				_, _ = fmt.Fprintf(out, "Dependency chain for %s:\n", chain.File)
				for _, file := range chain.Files {
					_, _ = fmt.Fprintf(out, "  %s\n", file)
				}
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "", "Type of the files, css or js (default: guessed from each extension)")
	cmd.Flags().StringP("document-root", "d", "", "Directory that absolute declarations resolve against")
	return cmd
}
