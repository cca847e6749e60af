package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/errors"
	"github.com/matzehuels/burst/pkg/export"
	"github.com/matzehuels/burst/pkg/host"
	burstio "github.com/matzehuels/burst/pkg/io"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chart   chartFlags
	output  string   // output file path (or base path for multiple outputs)
	formats []string // output formats: "svg", "dot", "png"
	noCache bool     // bypass the rasterization cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a data file to SVG, DOT or PNG",
		Long: `Render a data file (JSON, YAML or TOML list of items) as a burst chart.

With one format and --output, the chart is written to that path ("-" writes to
stdout). Otherwise each format is written next to the output base path, e.g.
items.svg and items.png.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDataFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := errors.ValidateFormats(opts.formats, export.ValidFormats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.chart.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(export.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the rasterization cache")

	return cmd
}

// runRender loads the data, renders the chart headlessly and writes every
// requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := opts.chart.resolve()
	if err != nil {
		return err
	}

	items, err := burstio.ImportData(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d items from %s", len(items), input)

	env := host.NewHeadless(opts.chart.width)
	chart, err := mountChart(env.Body, cfg, nil, logger)
	if err != nil {
		return err
	}
	chart.Render(items)
	prog.done("Rendered %d nodes", len(chart.Nodes()))

	ex, err := c.newExporter(opts.noCache)
	if err != nil {
		return err
	}
	return writeFormats(ctx, ex, chart, input, opts)
}

// writeFormats exports all formats concurrently. The chart is only read.
func writeFormats(ctx context.Context, ex *export.Exporter, chart *burst.Chart, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	paths := outputPaths(opts.output, input, opts.formats)

	var spinner *Spinner
	for _, f := range opts.formats {
		if f == string(export.FormatPNG) && paths[f] != "-" {
			spinner = newSpinnerWithContext(ctx, os.Stderr, "Rasterizing chart...")
			spinner.Start()
			break
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range opts.formats {
		format := export.Format(f)
		path := paths[f]
		g.Go(func() error {
			data, err := ex.Export(gctx, chart, format)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			logger.Debugf("Generated %s: %d bytes", format, len(data))
			return writeOutput(path, data)
		})
	}
	err := g.Wait()
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Export failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	printSuccess("Rendered %d items", len(chart.Nodes()))
	l := chart.Layout()
	printStats(len(chart.Nodes()), l.Width, l.Radius)
	if l.Radius == 0 && l.Count > 0 {
		printWarning("Width %g is too small for a circle; all nodes sit at the center", l.Width)
	}
	for _, f := range opts.formats {
		if paths[f] != "-" {
			printFile(f, paths[f])
		}
	}
	return nil
}

// outputPaths maps each format to its destination. A single format with an
// explicit output writes there; everything else derives from the base path.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if export.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
