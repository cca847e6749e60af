package cli

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/burst/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,dot,png", []string{"svg", "dot", "png"}},
		{"spaces trimmed", "svg, png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "data/items.json", "data/items"},
		{"format extension stripped", "out/chart.svg", "items.json", "out/chart"},
		{"other extension kept", "out/chart.v2", "items.json", "out/chart.v2"},
		{"no extension", "out/chart", "items.json", "out/chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	t.Run("single format with output", func(t *testing.T) {
		got := outputPaths("chart.out", "items.json", []string{"svg"})
		if got["svg"] != "chart.out" {
			t.Errorf("svg path = %q, want chart.out", got["svg"])
		}
	})

	t.Run("multiple formats share a base", func(t *testing.T) {
		got := outputPaths("out/chart.svg", "items.json", []string{"svg", "dot"})
		if got["svg"] != "out/chart.svg" || got["dot"] != "out/chart.dot" {
			t.Errorf("outputPaths() = %v", got)
		}
	})

	t.Run("no output", func(t *testing.T) {
		got := outputPaths("", "items.yaml", []string{"svg"})
		if got["svg"] != "items.svg" {
			t.Errorf("svg path = %q, want items.svg", got["svg"])
		}
	})
}

func TestResolveChartFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := chartFlags{}
		cfg, err := f.resolve()
		if err != nil {
			t.Fatalf("resolve() error: %v", err)
		}
		if cfg.Colors.NodeFill != defaultFill || cfg.Colors.NodeStroke != defaultStroke {
			t.Errorf("colors = %+v, want defaults", cfg.Colors)
		}
	})

	t.Run("flags override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "burst.toml")
		body := "[colors]\nnode_fill = \"#ffffff\"\nnode_stroke = \"#000000\"\n[label]\nfield = \"name\"\n"
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		f := chartFlags{config: path, stroke: "tomato"}
		cfg, err := f.resolve()
		if err != nil {
			t.Fatalf("resolve() error: %v", err)
		}
		if cfg.Colors.NodeFill != "#ffffff" {
			t.Errorf("fill = %q, want #ffffff from file", cfg.Colors.NodeFill)
		}
		if cfg.Colors.NodeStroke != "tomato" {
			t.Errorf("stroke = %q, want tomato from flag", cfg.Colors.NodeStroke)
		}
		if cfg.Label.Field != "name" {
			t.Errorf("label field = %q, want name", cfg.Label.Field)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		f := chartFlags{config: filepath.Join(t.TempDir(), "nope.toml")}
		if _, err := f.resolve(); !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("resolve() error = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("non-finite width", func(t *testing.T) {
		for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1} {
			f := chartFlags{width: w}
			if _, err := f.resolve(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("resolve() with width %v error = %v, want INVALID_INPUT", w, err)
			}
		}
	})

	t.Run("width flag", func(t *testing.T) {
		c := New(io.Discard, log.InfoLevel)
		root := c.RootCommand()
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		root.SetArgs([]string{"render", "items.json", "--width", "NaN"})
		if err := root.ExecuteContext(context.Background()); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("render --width NaN error = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("invalid color flag", func(t *testing.T) {
		f := chartFlags{fill: "red\x01"}
		if _, err := f.resolve(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("resolve() error = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "items.json")
	if err := os.WriteFile(input, []byte(`["a", "b", "c"]`), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	ctx := withLogger(context.Background(), c.Logger)

	opts := &renderOpts{
		chart:   chartFlags{width: 200},
		output:  filepath.Join(dir, "chart"),
		formats: []string{"svg", "dot"},
		noCache: true,
	}
	if err := c.runRender(ctx, input, opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "chart.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if got := strings.Count(string(svg), "<circle"); got != 3 {
		t.Errorf("svg has %d circles, want 3", got)
	}
	if !strings.Contains(string(svg), `width="200"`) {
		t.Error("svg should carry the container width")
	}

	dot, err := os.ReadFile(filepath.Join(dir, "chart.dot"))
	if err != nil {
		t.Fatalf("read dot: %v", err)
	}
	if !strings.HasPrefix(string(dot), "graph") {
		t.Errorf("dot output should start with a graph, got %q", firstLine(dot))
	}

	if !strings.Contains(logs.String(), "Rendered 3 nodes") {
		t.Errorf("progress not logged: %q", logs.String())
	}
}

func TestRunRenderBadInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "items.json")
	if err := os.WriteFile(input, []byte(`{"not": "a list"`), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, log.InfoLevel)
	ctx := withLogger(context.Background(), c.Logger)
	opts := &renderOpts{chart: chartFlags{width: 200}, formats: []string{"svg"}, noCache: true}

	if err := c.runRender(ctx, input, opts); !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("runRender() error = %v, want INVALID_DATA", err)
	}
}

func TestRenderCommandRejectsFormat(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", "items.json", "-f", "pdf"})

	if err := root.ExecuteContext(context.Background()); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render -f pdf error = %v, want INVALID_FORMAT", err)
	}
}

func firstLine(b []byte) string {
	s, _, _ := strings.Cut(string(b), "\n")
	return s
}
