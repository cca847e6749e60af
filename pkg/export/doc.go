// Package export writes rendered charts to files.
//
// # Formats
//
//   - svg: the chart's scene serialized as-is ([scene.Element.SVG])
//   - dot: Graphviz DOT with every node pinned to its layout position
//   - png: the DOT rasterized in-process by Graphviz
//
// The SVG output is exact: it is the same scene a host would display. DOT
// and PNG go through Graphviz's neato engine with positions pinned (pos="x,y!")
// so Graphviz only draws, it never re-lays out the chart.
//
// # Usage
//
//	ex := export.New(export.WithCache(c), export.WithLogger(logger))
//	png, err := ex.Export(ctx, chart, export.FormatPNG)
//
// # Caching
//
// Rasterization is cached through [cache.Cache] under a key derived from the
// DOT source, which fully determines the image. SVG and DOT are cheap and
// never cached.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package export
