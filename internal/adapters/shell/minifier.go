package shell

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
	"go.trai.ch/zerr"
)

// Placeholders substituted in command templates.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
	TypePlaceholder   = "{type}"
)

// argvFunc builds the command line for one minification.
type argvFunc func(input, output string, typ domain.AssetType) ([]string, error)

// Minifier runs an external program over a file.
type Minifier struct {
	executor ports.Executor
	argv     argvFunc
}

var _ ports.Minifier = (*Minifier)(nil)

// NewYUICompressor runs YUI Compressor: java -jar yuicompressor.jar [args] -o out in.
func NewYUICompressor(executor ports.Executor, locator *Locator, path string, args []string) *Minifier {
	return &Minifier{
		executor: executor,
		argv: func(input, output string, typ domain.AssetType) ([]string, error) {
			jar, ok := locator.Locate(YUICompressor, path)
			if !ok {
				return nil, zerr.With(domain.ErrMinifierNotFound, "minifier", YUICompressor.Name)
			}
			argv := []string{"java", "-jar", jar, "--type", string(typ)}
			argv = append(argv, args...)
			return append(argv, "-o", output, input), nil
		},
	}
}

// NewClosureCompiler runs Closure Compiler: java -jar compiler.jar [args]
// --js_output_file out --js in. Closure only handles scripts.
func NewClosureCompiler(executor ports.Executor, locator *Locator, path string, args []string) *Minifier {
	return &Minifier{
		executor: executor,
		argv: func(input, output string, typ domain.AssetType) ([]string, error) {
			if typ != domain.AssetTypeJS {
				return nil, zerr.With(domain.ErrUnknownAssetType, "minifier", ClosureCompiler.Name)
			}
			jar, ok := locator.Locate(ClosureCompiler, path)
			if !ok {
				return nil, zerr.With(domain.ErrMinifierNotFound, "minifier", ClosureCompiler.Name)
			}
			argv := []string{"java", "-jar", jar}
			argv = append(argv, args...)
			return append(argv, "--js_output_file", output, "--js", input), nil
		},
	}
}

// NewCommand runs a command template such as "terser {input} -o {output}".
// Placeholders are replaced within each field; args are appended.
func NewCommand(executor ports.Executor, template string, args []string) *Minifier {
	return &Minifier{
		executor: executor,
		argv: func(input, output string, typ domain.AssetType) ([]string, error) {
			fields := strings.Fields(template)
			if len(fields) == 0 {
				return nil, zerr.With(domain.ErrMinifierNotFound, "minifier", template)
			}
			r := strings.NewReplacer(InputPlaceholder, input, OutputPlaceholder, output, TypePlaceholder, string(typ))
			argv := make([]string, 0, len(fields)+len(args))
			for _, f := range fields {
				argv = append(argv, r.Replace(f))
			}
			return append(argv, args...), nil
		},
	}
}

// Minify implements ports.Minifier. Minifying in place runs the program on a
// temporary copy of input.
func (m *Minifier) Minify(ctx context.Context, input, output string, typ domain.AssetType) error {
	if output == "" {
		output = input
	}

	source := input
	if output == input {
		tmp, err := copyToTemp(input, typ)
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(tmp) }()
		source = tmp
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", output)
	}

	argv, err := m.argv(source, output, typ)
	if err != nil {
		return err
	}
	return m.executor.Execute(ctx, filepath.Dir(output), argv, nil, nil)
}

func copyToTemp(file string, typ domain.AssetType) (string, error) {
	src, err := os.Open(file) //nolint:gosec // artifact path is chosen by the user
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", file)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.CreateTemp("", "squeeze-*"+typ.Extension())
	if err != nil {
		return "", zerr.Wrap(err, "failed to create temporary file")
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", zerr.Wrap(err, "failed to copy artifact")
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", zerr.Wrap(err, "failed to copy artifact")
	}
	return dst.Name(), nil
}
