package burst

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/burst/pkg/errors"
	"github.com/matzehuels/burst/pkg/host"
	"github.com/matzehuels/burst/pkg/observability"
	"github.com/matzehuels/burst/pkg/reconcile"
	"github.com/matzehuels/burst/pkg/scene"
)

// Element classes of a chart's scene subtree.
const (
	ClassRoot      = "burst"
	ClassNode      = "node"
	ClassConnector = "connector"
)

// Colors styles the node circles. Both fields are required and passed to the
// scene untouched.
type Colors struct {
	NodeFill   string
	NodeStroke string
}

// Validate reports a missing color as a configuration error.
func (c Colors) Validate() error {
	if err := errors.ValidateColor("node_fill", c.NodeFill); err != nil {
		return err
	}
	return errors.ValidateColor("node_stroke", c.NodeStroke)
}

// Chart is a burst chart mounted under a target element.
type Chart struct {
	id      string
	target  *scene.Element
	canvas  *scene.Element
	colors  Colors
	labelAs LabelFunc
	keyOf   KeyFunc
	geom    Geometry
	env     host.Env
	logger  *log.Logger

	data   []any
	layout Layout
	resize *resizeCoordinator

	warnedTarget bool
}

// item pairs a datum with its identity so keys are derived once per render.
type item struct {
	key   string
	value any
}

func itemKey(it item) string { return it.key }

// New mounts a chart under target. target's parent is the container whose
// width drives the layout. New fails with an INVALID_CONFIG error if target is
// nil, a color is missing or the geometry is invalid.
func New(target *scene.Element, colors Colors, opts ...Option) (*Chart, error) {
	if target == nil {
		return nil, errors.Configf("target element is required")
	}
	if err := colors.Validate(); err != nil {
		return nil, err
	}

	c := &Chart{
		target: target,
		colors: colors,
		geom:   DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.geom.Validate(); err != nil {
		return nil, err
	}
	if c.labelAs == nil {
		c.labelAs = Label
	}
	if c.keyOf == nil {
		c.keyOf = Key
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}

	c.canvas = target.Append("g").SetClass(ClassRoot).SetAttr("id", "burst-"+c.id)
	if c.env != nil {
		c.resize = newResizeCoordinator(c.id, c.env, c.geom.Debounce, c.onResize)
	}

	c.logger.Debug("chart created", "id", c.id, "resize", c.env != nil)
	return c, nil
}

// Render reconciles the chart with data and lays it out for the container's
// current width. It returns after the scene is fully updated. A nil slice
// renders an empty chart.
func (c *Chart) Render(data []any) {
	c.render(data, false)
}

func (c *Chart) onResize() {
	c.render(c.data, true)
}

func (c *Chart) render(data []any, resized bool) {
	start := time.Now()

	c.data = slices.Clone(data)
	items := make([]item, len(c.data))
	for i, d := range c.data {
		items[i] = item{key: c.keyOf(d), value: d}
	}

	width := c.containerWidth()
	l := NewLayout(width, len(items), c.geom)
	c.layout = l

	c.target.SetFloat("width", width).SetFloat("height", c.geom.Height)

	nodes := scene.Join(c.canvas, ClassNode, items, itemKey)
	nodes.Enter(func(e reconcile.Entry[item]) *scene.Element {
		return c.enterNode(e.Item.value)
	})
	nodes.Each(func(e reconcile.Entry[item], g *scene.Element) {
		c.placeNode(g, l, e.Index)
	})

	connectors := scene.Join(c.canvas, ClassConnector, items, itemKey)
	connectors.Enter(func(reconcile.Entry[item]) *scene.Element {
		return c.enterConnector()
	})
	connectors.Each(func(e reconcile.Entry[item], line *scene.Element) {
		c.placeConnector(line, l, e.Index)
	})

	removed := nodes.Remove()
	connectors.Remove()
	nodes.Order()
	connectors.Order()

	stats := observability.RenderStats{
		Nodes:   len(items),
		Created: nodes.Created(),
		Updated: nodes.Retained(),
		Removed: removed,
		Width:   width,
		Resize:  resized,
	}
	elapsed := time.Since(start)
	observability.Chart().OnRender(c.id, stats, elapsed)
	c.logger.Debug("chart rendered",
		"id", c.id, "items", stats.Nodes, "created", stats.Created,
		"updated", stats.Updated, "removed", stats.Removed,
		"width", width, "resize", resized, "took", elapsed)
}

// containerWidth reads the width of the target's parent. A target without a
// parent or a container without a positive, finite width yields a degenerate
// layout of width and radius 0.
func (c *Chart) containerWidth() float64 {
	parent := c.target.Parent()
	if parent == nil {
		c.warnTarget("target has no parent element")
		return 0
	}
	w := parent.ClientWidth()
	if !finite(w) || w <= 0 {
		c.warnTarget("container has no width")
		return 0
	}
	return w
}

func (c *Chart) warnTarget(msg string) {
	if c.warnedTarget {
		return
	}
	c.warnedTarget = true
	c.logger.Warn(msg+"; rendering with radius 0", "id", c.id)
}

func (c *Chart) enterNode(v any) *scene.Element {
	g := c.canvas.Append("g").SetClass(ClassNode)
	g.Append("circle").
		SetFloat("r", c.geom.NodeRadius).
		SetAttr("fill", c.colors.NodeFill).
		SetAttr("stroke", c.colors.NodeStroke).
		SetFloat("stroke-width", NodeStrokeWidth)
	g.Append("text").
		SetText(c.labelAs(v)).
		SetFloat("dy", LabelBaseline)
	return g
}

func (c *Chart) placeNode(g *scene.Element, l Layout, i int) {
	p := l.Position(i)
	g.SetAttr("transform", scene.Translate(p.X, p.Y))

	pl := LabelPlacement(l.Offset(i).X, c.geom.LabelOffset)
	if text := g.Select("text"); text != nil {
		text.SetAttr("text-anchor", string(pl.Anchor)).SetFloat("dx", pl.DX)
	}
}

// enterConnector inserts a connector beneath the node groups.
func (c *Chart) enterConnector() *scene.Element {
	return c.canvas.Insert("line", "g").
		SetClass(ClassConnector).
		SetAttr("stroke", ConnectorStroke).
		SetFloat("stroke-width", ConnectorWidth)
}

func (c *Chart) placeConnector(line *scene.Element, l Layout, i int) {
	p := l.Position(i)
	line.SetFloat("x1", l.Center.X).
		SetFloat("y1", l.Center.Y).
		SetFloat("x2", p.X).
		SetFloat("y2", p.Y)
}

// Destroy releases the resize subscription and cancels a pending resize
// re-render. The chart's elements stay in place and Render remains usable.
// Destroy is idempotent.
func (c *Chart) Destroy() {
	if c.resize == nil {
		return
	}
	cancelled := c.resize.stop()
	c.resize = nil
	observability.Chart().OnDestroy(c.id, cancelled)
	c.logger.Debug("chart destroyed", "id", c.id, "cancelled_pending", cancelled)
}

// ID returns the chart's instance id.
func (c *Chart) ID() string { return c.id }

// Data returns a copy of the last rendered data.
func (c *Chart) Data() []any { return slices.Clone(c.data) }

// Layout returns the geometry of the last render.
func (c *Chart) Layout() Layout { return c.layout }

// Target returns the element the chart was mounted under.
func (c *Chart) Target() *scene.Element { return c.target }

// Colors returns the node colors.
func (c *Chart) Colors() Colors { return c.colors }

// Root returns the chart's root group.
func (c *Chart) Root() *scene.Element { return c.canvas }

// Nodes returns the node groups in document order.
func (c *Chart) Nodes() []*scene.Element { return c.canvas.SelectAll(ClassNode) }

// Connectors returns the connector lines in document order.
func (c *Chart) Connectors() []*scene.Element { return c.canvas.SelectAll(ClassConnector) }

// ResizeState returns the state of the resize debouncer. Charts without a
// host, and destroyed charts, are always idle.
func (c *Chart) ResizeState() ResizeState {
	if c.resize == nil {
		return ResizeIdle
	}
	return c.resize.state()
}
