package export

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/cache"
	"github.com/matzehuels/burst/pkg/errors"
)

// Format is an export format.
type Format string

// Export formats.
const (
	FormatSVG Format = "svg"
	FormatDOT Format = "dot"
	FormatPNG Format = "png"
)

// ValidFormats lists the accepted format names.
var ValidFormats = map[string]bool{
	string(FormatSVG): true,
	string(FormatDOT): true,
	string(FormatPNG): true,
}

// FormatNames returns the accepted format names, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for name := range ValidFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exporter serializes charts, caching rasterized output.
type Exporter struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
	raster func(ctx context.Context, dot string, format graphviz.Format) ([]byte, error)
}

// Option configures an [Exporter].
type Option func(*Exporter)

// WithCache stores rasterized artifacts in c.
func WithCache(c cache.Cache) Option { return func(e *Exporter) { e.cache = c } }

// WithTTL sets how long cached artifacts stay valid. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option { return func(e *Exporter) { e.ttl = ttl } }

// WithLogger sets the exporter's logger.
func WithLogger(l *log.Logger) Option { return func(e *Exporter) { e.logger = l } }

// New creates an exporter. Without [WithCache] nothing is cached.
func New(opts ...Option) *Exporter {
	e := &Exporter{raster: RenderDOT}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = cache.NewNullCache()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Export serializes the chart's current scene in format.
func (e *Exporter) Export(ctx context.Context, c *burst.Chart, format Format) ([]byte, error) {
	switch format {
	case FormatSVG:
		return c.Target().SVG(), nil
	case FormatDOT:
		return []byte(ToDOT(c)), nil
	case FormatPNG:
		return e.rasterize(ctx, c, graphviz.PNG)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q", format)
}

func (e *Exporter) rasterize(ctx context.Context, c *burst.Chart, format graphviz.Format) ([]byte, error) {
	dot := ToDOT(c)
	key := cache.ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{
		Format: string(format),
		Width:  c.Layout().Width,
		Layout: string(graphviz.NEATO),
	})

	if data, ok, err := e.cache.Get(ctx, key); err != nil {
		e.logger.Warn("cache read failed", "error", err)
	} else if ok {
		e.logger.Debug("artifact cache hit", "format", format)
		return data, nil
	}

	start := time.Now()
	data, err := e.raster(ctx, dot, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rasterize %s", format)
	}
	e.logger.Debug("rasterized chart", "format", format, "bytes", len(data), "took", time.Since(start))

	if err := e.cache.Set(ctx, key, data, e.ttl); err != nil {
		e.logger.Warn("cache write failed", "error", err)
	}
	return data, nil
}
