package export

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/scene"
)

// pointsPerInch converts scene units to the inches Graphviz sizes nodes in.
const pointsPerInch = 72

// ToDOT converts a rendered chart to an undirected Graphviz graph. The center
// and every node are pinned to their scene positions, with the y axis flipped
// to Graphviz's bottom-up orientation.
func ToDOT(c *burst.Chart) string {
	l := c.Layout()
	h := l.Height
	flip := func(y float64) float64 { return h - y }

	var buf bytes.Buffer
	buf.WriteString("graph burst {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  forcelabels=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", scene.FormatFloat(l.Width), scene.FormatFloat(h))
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontsize=12, label=\"\"];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  \"center\" [pos=%q, shape=point, width=0, height=0];\n",
		pos(l.Center.X, flip(l.Center.Y)))

	nodes := c.Nodes()
	for i, g := range nodes {
		x, y, _ := g.Translation()
		attrs := nodeAttrs(g)
		fmt.Fprintf(&buf, "  \"n%d\" [pos=%q%s];\n", i, pos(x, flip(y)), attrs)
	}

	buf.WriteString("\n")
	lines := map[string]*scene.Element{}
	for _, line := range c.Connectors() {
		lines[line.Key()] = line
	}
	for i, g := range nodes {
		stroke, width := burst.ConnectorStroke, float64(burst.ConnectorWidth)
		if line, ok := lines[g.Key()]; ok {
			if v, ok := line.Attr("stroke"); ok {
				stroke = v
			}
			if v, ok := line.FloatAttr("stroke-width"); ok {
				width = v
			}
		}
		fmt.Fprintf(&buf, "  \"center\" -- \"n%d\" [color=%q, penwidth=%s];\n", i, stroke, scene.FormatFloat(width))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pos(x, y float64) string {
	return scene.FormatFloat(x) + "," + scene.FormatFloat(y) + "!"
}

func nodeAttrs(g *scene.Element) string {
	var buf bytes.Buffer
	if circle := g.Select("circle"); circle != nil {
		if r, ok := circle.FloatAttr("r"); ok {
			fmt.Fprintf(&buf, ", width=%s", scene.FormatFloat(2*r/pointsPerInch))
		}
		if v, ok := circle.Attr("fill"); ok {
			fmt.Fprintf(&buf, ", fillcolor=%q", v)
		}
		if v, ok := circle.Attr("stroke"); ok {
			fmt.Fprintf(&buf, ", color=%q", v)
		}
		if v, ok := circle.FloatAttr("stroke-width"); ok {
			fmt.Fprintf(&buf, ", penwidth=%s", scene.FormatFloat(v))
		}
	}
	if text := g.Select("text"); text != nil && text.Text() != "" {
		fmt.Fprintf(&buf, ", xlabel=%q", text.Text())
	}
	fmt.Fprintf(&buf, ", tooltip=%q", g.Key())
	return buf.String()
}
