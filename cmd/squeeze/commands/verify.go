package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [files...]",
		Short: "Verify JavaScript files with JsLint",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}

			reports, err := c.app.Verify(cmd.Context(), args)
			out := cmd.OutOrStdout()
			for _, report := range reports {
				_, _ = fmt.Fprintf(out, "Verifying %s with JsLint\n", report.File)
				if report.OK() {
					_, _ = fmt.Fprintln(out, "  OK!")
					continue
				}
				_, _ = fmt.Fprintln(out, "  Problems detected")
				for _, p := range report.Problems {
					_, _ = fmt.Fprintf(out, "  %s\n", p.Message)
					if p.Code != "" {
						_, _ = fmt.Fprintf(out, "  %s\n", p.Code)
					}
				}
			}
			return err
		},
	}
}
