// Package config loads chart configuration from TOML files.
//
// A config file has three optional tables:
//
//	[colors]
//	node_fill = "steelblue"
//	node_stroke = "white"
//
//	[geometry]
//	height = 150
//	margin = 15
//	phase_shift = 0.3927
//	node_radius = 10
//	label_offset = 20
//	debounce = "150ms"
//
//	[label]
//	field = "name"
//	key = "id"
//
// Omitted geometry values keep their defaults. Unknown keys are rejected so
// typos surface as configuration errors instead of silently doing nothing.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/errors"
)

// Config is a chart configuration.
type Config struct {
	Colors   Colors   `toml:"colors"`
	Geometry Geometry `toml:"geometry"`
	Label    Label    `toml:"label"`
}

// Colors mirrors [burst.Colors].
type Colors struct {
	NodeFill   string `toml:"node_fill"`
	NodeStroke string `toml:"node_stroke"`
}

// Geometry mirrors [burst.Geometry] with a textual debounce.
type Geometry struct {
	Height      float64  `toml:"height"`
	Margin      float64  `toml:"margin"`
	PhaseShift  float64  `toml:"phase_shift"`
	NodeRadius  float64  `toml:"node_radius"`
	LabelOffset float64  `toml:"label_offset"`
	Debounce    Duration `toml:"debounce"`
}

// Label selects which fields of object items drive labels and identity.
type Label struct {
	Field string `toml:"field"`
	Key   string `toml:"key"`
}

// Duration is a time.Duration written as a Go duration string ("150ms").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns a config with the default geometry and no colors.
func Default() *Config {
	g := burst.DefaultGeometry()
	return &Config{
		Geometry: Geometry{
			Height:      g.Height,
			Margin:      g.Margin,
			PhaseShift:  g.PhaseShift,
			NodeRadius:  g.NodeRadius,
			LabelOffset: g.LabelOffset,
			Debounce:    Duration(g.Debounce),
		},
	}
}

// Load reads a config file. A missing file is a FILE_NOT_FOUND error.
func Load(path string) (*Config, error) {
	if err := errors.ValidateDataPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config from r on top of [Default].
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.Configf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ChartColors returns the configured colors.
func (c *Config) ChartColors() burst.Colors {
	return burst.Colors{NodeFill: c.Colors.NodeFill, NodeStroke: c.Colors.NodeStroke}
}

// ChartGeometry returns the configured geometry.
func (c *Config) ChartGeometry() burst.Geometry {
	return burst.Geometry{
		PhaseShift:  c.Geometry.PhaseShift,
		Height:      c.Geometry.Height,
		Margin:      c.Geometry.Margin,
		NodeRadius:  c.Geometry.NodeRadius,
		LabelOffset: c.Geometry.LabelOffset,
		Debounce:    time.Duration(c.Geometry.Debounce),
	}
}

// Validate checks colors and geometry the way [burst.New] would.
func (c *Config) Validate() error {
	if err := c.ChartColors().Validate(); err != nil {
		return err
	}
	return c.ChartGeometry().Validate()
}

// Options returns the chart options this config implies.
func (c *Config) Options() []burst.Option {
	opts := []burst.Option{burst.WithGeometry(c.ChartGeometry())}
	if c.Label.Field != "" {
		opts = append(opts, burst.WithLabel(burst.FieldLabel(c.Label.Field)))
	}
	if c.Label.Key != "" {
		opts = append(opts, burst.WithKey(burst.FieldKey(c.Label.Key)))
	}
	return opts
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
