package export

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/cache"
	"github.com/matzehuels/burst/pkg/errors"
	"github.com/matzehuels/burst/pkg/host"
)

func renderedChart(t *testing.T, data ...any) *burst.Chart {
	t.Helper()
	env := host.NewHeadless(200)
	c, err := burst.New(env.Body.Append("svg"), burst.Colors{NodeFill: "#fff", NodeStroke: "#000"}, burst.WithID("x"))
	if err != nil {
		t.Fatal(err)
	}
	c.Render(data)
	return c
}

func TestToDOT(t *testing.T) {
	c := renderedChart(t, "a", "b")
	dot := ToDOT(c)

	for _, want := range []string{
		"graph burst {",
		"layout=neato;",
		`bb="0,0,200,150";`,
		`"center" [pos="100,75!"`,
		`xlabel="a"`,
		`xlabel="b"`,
		`fillcolor="#fff"`,
		`color="#000"`,
		`"center" -- "n0" [color="#333", penwidth=2];`,
		`"center" -- "n1"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, " -- "); n != 2 {
		t.Errorf("DOT has %d edges, want 2", n)
	}
}

func TestToDOTFlipsY(t *testing.T) {
	c := renderedChart(t, "a", "b")
	dot := ToDOT(c)

	// a sits above center in scene coordinates, so it must sit above it in
	// Graphviz's bottom-up coordinates too.
	p := c.Layout().Position(0)
	want := `pos="` + pos(p.X, 150-p.Y) + `"`
	if !strings.Contains(dot, want) {
		t.Errorf("DOT missing %s:\n%s", want, dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(renderedChart(t))
	if strings.Contains(dot, " -- ") || strings.Contains(dot, `"n0"`) {
		t.Errorf("empty chart should only have the center:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(renderedChart(t, "x", "y", "z"))
	b := ToDOT(renderedChart(t, "x", "y", "z"))
	if a != b {
		t.Error("same chart should produce the same DOT")
	}
}

func TestExportSVG(t *testing.T) {
	c := renderedChart(t, "a")
	got, err := New().Export(context.Background(), c, FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, c.Target().SVG()) {
		t.Error("SVG export should be the serialized scene")
	}
	if !bytes.HasPrefix(got, []byte(`<svg xmlns="http://www.w3.org/2000/svg"`)) {
		t.Errorf("SVG export should start with the root element:\n%s", got)
	}
}

func TestExportUnsupported(t *testing.T) {
	_, err := New().Export(context.Background(), renderedChart(t), Format("pdf"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Export(pdf) = %v, want INVALID_FORMAT", err)
	}
}

func TestExportPNGCached(t *testing.T) {
	fc, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	ex := New(WithCache(fc))
	calls := 0
	ex.raster = func(_ context.Context, dot string, format graphviz.Format) ([]byte, error) {
		calls++
		if format != graphviz.PNG {
			t.Errorf("format = %s, want png", format)
		}
		return []byte("png:" + dot[:5]), nil
	}

	ctx := context.Background()
	c := renderedChart(t, "a", "b")
	first, err := ex.Export(ctx, c, FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ex.Export(ctx, c, FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("rasterized %d times, want 1", calls)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached artifact differs")
	}

	c.Render([]any{"a"})
	if _, err := ex.Export(ctx, c, FormatPNG); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Error("a changed scene should miss the cache")
	}
}

func TestFormatNames(t *testing.T) {
	if got := strings.Join(FormatNames(), ","); got != "dot,png,svg" {
		t.Errorf("FormatNames() = %s", got)
	}
}
