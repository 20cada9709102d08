package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/squeeze/internal/app"
)

func (c *CLI) newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [files...]",
		Short: "Combine and minify CSS or JavaScript files",
		Long: "Resolve the dependencies of the given files, merge them into one file, " +
			"embed and cache bust stylesheet images and minify the result.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Merge(cmd.Context(), args, mergeOptions(cmd))
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "Output filename or directory (default: first input with .min before the extension)")
	f.BoolP("force", "f", false, "Overwrite the output file if it exists")
	f.StringP("type", "t", "", "Type of files to merge, css or js (default: guessed from the output)")
	f.StringP("minifier", "m", app.DefaultMinifier,
		"Minifier: builtin, yui_compressor, closure_compiler, a command template or none")
	f.StringP("arguments", "a", "", "Arguments to the minifier, pass in quotes")
	f.StringP("path", "p", "", "Directory or file to locate the minifier in")
	f.BoolP("ignore-problems", "i", false, "Merge and minify even if the verifier finds problems")
	f.BoolP("skip-verification", "s", false, "Skip verification of JavaScript files")
	f.StringSlice("hosts", nil, "Asset hosts to cycle through when making URLs absolute")
	f.StringSliceP("local-hosts", "l", nil, "Hosts served from the document root, eligible for cache busting")
	f.Bool("all-hosts-local", false, "Treat every asset host as local")
	f.BoolP("relative-urls", "r", false, "Convert all referenced URLs to relative URLs")
	f.BoolP("absolute-urls", "b", false, "Convert all referenced URLs to absolute URLs, requires --document-root")
	f.StringP("document-root", "d", "", "Directory that root-relative URLs resolve against")
	f.StringP("cache-buster", "c", "soft", "Cache buster: soft, hard, rails or none")
	f.StringP("embed-images", "e", "none", "Embed flagged images: data_uri, mhtml or none")
	f.StringSlice("compress", nil, "Write precompressed siblings: gzip, brotli")
	return cmd
}

func mergeOptions(cmd *cobra.Command) app.MergeOptions {
	f := cmd.Flags()
	opts := app.MergeOptions{}
	opts.Output, _ = f.GetString("output")
	opts.Force, _ = f.GetBool("force")
	opts.Type, _ = f.GetString("type")
	opts.Minifier, _ = f.GetString("minifier")
	arguments, _ := f.GetString("arguments")
	opts.MinifierArgs = strings.Fields(arguments)
	opts.MinifierPath, _ = f.GetString("path")
	opts.IgnoreProblems, _ = f.GetBool("ignore-problems")
	opts.SkipVerification, _ = f.GetBool("skip-verification")
	opts.Hosts, _ = f.GetStringSlice("hosts")
	opts.LocalHosts, _ = f.GetStringSlice("local-hosts")
	opts.AllHostsLocal, _ = f.GetBool("all-hosts-local")
	opts.RelativeURLs, _ = f.GetBool("relative-urls")
	opts.AbsoluteURLs, _ = f.GetBool("absolute-urls")
	opts.DocumentRoot, _ = f.GetString("document-root")
	opts.CacheBuster, _ = f.GetString("cache-buster")
	opts.EmbedImages, _ = f.GetString("embed-images")
	opts.Compress, _ = f.GetStringSlice("compress")
	return opts
}
