package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/config"
	"github.com/matzehuels/burst/pkg/errors"
	"github.com/matzehuels/burst/pkg/host"
	"github.com/matzehuels/burst/pkg/scene"
)

// Colors used when neither a config file nor a flag sets them.
const (
	defaultFill   = "white"
	defaultStroke = "steelblue"
)

// chartFlags are the chart options shared by render, serve and watch.
type chartFlags struct {
	config     string
	fill       string
	stroke     string
	labelField string
	keyField   string
	width      float64
}

// bind registers the flags on cmd.
func (f *chartFlags) bind(cmd *cobra.Command) {
	if f.width == 0 {
		f.width = defaultWidth
	}
	cmd.Flags().StringVar(&f.config, "config", "", "chart config file (TOML)")
	cmd.Flags().StringVar(&f.fill, "fill", "", "node fill color (default "+defaultFill+")")
	cmd.Flags().StringVar(&f.stroke, "stroke", "", "node stroke color (default "+defaultStroke+")")
	cmd.Flags().StringVar(&f.labelField, "label-field", "", "label object items by this field")
	cmd.Flags().StringVar(&f.keyField, "key-field", "", "identify object items by this field")
	cmd.Flags().Float64Var(&f.width, "width", f.width, "container width")
}

// resolve loads the config file, if any, and applies flag overrides. Flags
// win over the file; built-in colors fill whatever is still unset.
func (f *chartFlags) resolve() (*config.Config, error) {
	if err := errors.ValidateWidth(f.width); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.fill != "" {
		cfg.Colors.NodeFill = f.fill
	}
	if f.stroke != "" {
		cfg.Colors.NodeStroke = f.stroke
	}
	if cfg.Colors.NodeFill == "" {
		cfg.Colors.NodeFill = defaultFill
	}
	if cfg.Colors.NodeStroke == "" {
		cfg.Colors.NodeStroke = defaultStroke
	}
	if f.labelField != "" {
		cfg.Label.Field = f.labelField
	}
	if f.keyField != "" {
		cfg.Label.Key = f.keyField
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mountChart appends an svg element to body and mounts a chart in it.
func mountChart(body *scene.Element, cfg *config.Config, env host.Env, logger *log.Logger) (*burst.Chart, error) {
	opts := append(cfg.Options(), burst.WithLogger(logger))
	if env != nil {
		opts = append(opts, burst.WithHost(env))
	}
	return burst.New(body.Append("svg"), cfg.ChartColors(), opts...)
}
