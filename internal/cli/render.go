package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/artwork/pkg/export"
	pkgio "github.com/matzehuels/artwork/pkg/io"
	"github.com/matzehuels/artwork/pkg/pipeline"
)

// pipeName reads the description from stdin or writes the output to stdout.
const pipeName = "-"

// renderOpts holds the render flags that are not pipeline options.
type renderOpts struct {
	output      string // output file (single output), base path, or "-" for stdout
	formats     string // comma-separated formats
	configs     string // configs file
	inputFormat string // description format when reading stdin
	noCache     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [description]",
		Short: "Export a workspace description",
		Long: `Export a workspace description (JSON, TOML or YAML) in one or more formats.

Every artboard becomes one output, or one page of the PDF. With configs (from
the description or --configs) each config renders one variant: config i is
applied to artboard i % artboards.

Without an argument an interactive picker lists the descriptions in the
current directory. Use "-" to read a description from stdin.

Results are cached locally for faster subsequent runs.`,
		Example: `  artwork render poster.yaml -f svg,png
  artwork render poster.yaml -f pdf --configs variants.json -o out/poster.pdf
  cat poster.json | artwork render - -f png -o - > poster.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(ro.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Background = c.Config.GetString(cfgRenderBackground)
			opts.Scale = c.Config.GetFloat64(cfgRenderScale)
			opts.Supersample = c.Config.GetInt(cfgRenderSupersample)

			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				picked, err := pickDescription(".")
				if err != nil {
					return err
				}
				input = picked
			}
			return c.runRender(cmd.Context(), input, opts, ro)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", `output file (single output), base path (multiple), or "-" for stdout`)
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, jpeg, webp, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&ro.configs, "configs", "", "file with a list of configs, one variant per config")
	cmd.Flags().StringVar(&ro.inputFormat, "input-format", string(pkgio.JSON), "description format when reading stdin: json, toml, yaml")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")

	// Export flags
	cmd.Flags().BoolVar(&opts.Individual, "individual", false, "pdf: one document per config instead of one page per config")
	cmd.Flags().BoolVar(&opts.Array, "array", false, "number outputs even when there is only one")
	cmd.Flags().String("background", "", "raster background color (jpeg defaults to white)")
	cmd.Flags().Float64("scale", 1, "raster output scale")
	cmd.Flags().Int("supersample", pipeline.DefaultSupersample, "raster supersample factor")
	_ = c.Config.BindPFlag(cfgRenderBackground, cmd.Flags().Lookup("background"))
	_ = c.Config.BindPFlag(cfgRenderScale, cmd.Flags().Lookup("scale"))
	_ = c.Config.BindPFlag(cfgRenderSupersample, cmd.Flags().Lookup("supersample"))

	return cmd
}

// runRender reads the description, runs the pipeline and writes every
// output.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro renderOpts) error {
	logger := loggerFromContext(ctx)

	desc, err := readDescription(input, ro.inputFormat)
	if err != nil {
		return err
	}
	if ro.configs != "" {
		configs, err := pkgio.ReadConfigsFile(ro.configs)
		if err != nil {
			return err
		}
		opts.Configs = configs
		logger.Debug("loaded configs", "file", ro.configs, "count", len(configs))
	}
	opts.Source = input
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, desc, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			printWarning("Render cancelled")
			return ctx.Err()
		}
		return err
	}

	return writeArtifacts(artifactWriteParams{
		result:  result,
		formats: opts.ExportFormats(),
		input:   input,
		output:  ro.output,
	})
}

// readDescription reads a description file, or stdin for "-".
func readDescription(input, format string) (*pkgio.Description, error) {
	if input != pipeName {
		return pkgio.ReadFile(input)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
	}
	return pkgio.Read(os.Stdin, pkgio.Format(strings.ToLower(format)))
}

// artifactWriteParams groups what writeArtifacts needs.
type artifactWriteParams struct {
	result  *pipeline.Result
	formats []export.Format
	input   string
	output  string
}

// writeArtifacts writes every output of every format. Formats with more
// than one output get numbered file names.
func writeArtifacts(p artifactWriteParams) error {
	total := p.result.Stats.Outputs
	if p.output == pipeName {
		if total != 1 {
			return fmt.Errorf("stdout takes exactly one output, got %d", total)
		}
		f := p.formats[0]
		if term.IsTerminal(int(os.Stdout.Fd())) && (f.IsRaster() || f == export.PDF) {
			return fmt.Errorf("`-` should be used with a pipe for %s output", f)
		}
		data, err := p.result.Artifacts[f.String()].First().Bytes()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	base := basePath(p.output, p.input)
	printSuccess("Rendered %s", p.input)
	printStats(p.result.Stats, p.result.CacheInfo.RenderHit)

	for _, f := range p.formats {
		res := p.result.Artifacts[f.String()]
		for i, out := range res.Outputs {
			path := outputPath(base, f, i, len(res.Outputs), res.Array)
			data, err := out.Bytes()
			if err != nil {
				return fmt.Errorf("decode %s output %d: %w", f, i, err)
			}
			if err := writeFile(path, data); err != nil {
				return err
			}
			printFile(path, len(data))
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output ends in a format extension (.svg, .pdf, etc.), that is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == pipeName {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := export.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns base.ext for a lone output and base-N.ext (1-based)
// for outputs of a list.
func outputPath(base string, f export.Format, i, n int, array bool) string {
	if n == 1 && !array {
		return base + "." + f.Ext()
	}
	return fmt.Sprintf("%s-%d.%s", base, i+1, f.Ext())
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
