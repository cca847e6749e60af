package cli

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/host"
	"github.com/matzehuels/burst/pkg/scene"
)

// Scene units per terminal cell. Cells are about twice as tall as wide.
const (
	unitsPerColumn = 4
	unitsPerRow    = 8
)

// =============================================================================
// Terminal Host
// =============================================================================

// teaHost is a [host.Env] whose event thread is a bubbletea program's Update.
// Timers fire by sending a timerMsg into the program; the model hands it back
// to fire on the Update goroutine.
type teaHost struct {
	host.Emitter

	// Body is the container element the chart is mounted in.
	Body *scene.Element

	send   func(tea.Msg)
	seq    uint64
	timers map[uint64]*teaTimer
}

type timerMsg struct{ id uint64 }

type teaTimer struct {
	host *teaHost
	id   uint64
	fn   func()
	t    *time.Timer
}

func newTeaHost(cols int) *teaHost {
	return &teaHost{
		Body:   scene.New("body").SetClientWidth(float64(cols * unitsPerColumn)),
		timers: map[uint64]*teaTimer{},
	}
}

// AfterFunc implements [host.Scheduler].
func (h *teaHost) AfterFunc(d time.Duration, fn func()) host.Timer {
	h.seq++
	t := &teaTimer{host: h, id: h.seq, fn: fn}
	h.timers[t.id] = t
	id, send := t.id, h.send
	t.t = time.AfterFunc(d, func() { send(timerMsg{id: id}) })
	return t
}

// Stop implements [host.Timer].
func (t *teaTimer) Stop() bool {
	t.t.Stop()
	if _, ok := t.host.timers[t.id]; !ok {
		return false
	}
	delete(t.host.timers, t.id)
	return true
}

// fire runs the callback of timer id unless it was stopped.
func (h *teaHost) fire(id uint64) bool {
	t, ok := h.timers[id]
	if !ok {
		return false
	}
	delete(h.timers, id)
	t.fn()
	return true
}

// resize sets the body to cols terminal columns and emits a resize event.
func (h *teaHost) resize(cols int) {
	h.Body.SetClientWidth(float64(cols * unitsPerColumn))
	h.Emit()
}

var _ host.Env = (*teaHost)(nil)

// =============================================================================
// Character Canvas
// =============================================================================

type cellKind uint8

const (
	cellBlank cellKind = iota
	cellSpoke
	cellNode
	cellLabel
)

type cell struct {
	r    rune
	kind cellKind
}

// canvas is a chart rasterized onto terminal cells.
type canvas struct {
	cols, rows int
	cells      [][]cell
	nodeStyle  lipgloss.Style
}

// drawChart rasterizes the chart's current scene.
func drawChart(c *burst.Chart) *canvas {
	l := c.Layout()
	cv := newCanvas(
		int(math.Ceil(l.Width/unitsPerColumn)),
		int(math.Ceil(l.Height/unitsPerRow)),
	)
	cv.nodeStyle = lipgloss.NewStyle().Foreground(termColor(c.Colors().NodeFill))

	for _, line := range c.Connectors() {
		x1, _ := line.FloatAttr("x1")
		y1, _ := line.FloatAttr("y1")
		x2, _ := line.FloatAttr("x2")
		y2, _ := line.FloatAttr("y2")
		c1, r1 := toCell(x1, y1)
		c2, r2 := toCell(x2, y2)
		cv.line(c1, r1, c2, r2)
	}

	for _, g := range c.Nodes() {
		x, y, ok := g.Translation()
		if !ok {
			continue
		}
		col, row := toCell(x, y)
		cv.set(col, row, '●', cellNode)

		text := g.Select("text")
		if text == nil || text.Text() == "" {
			continue
		}
		label := []rune(text.Text())
		dx, _ := text.FloatAttr("dx")
		start := col + int(math.Round(dx/unitsPerColumn))
		if anchor, _ := text.Attr("text-anchor"); anchor == string(burst.AnchorEnd) {
			start -= len(label) - 1
		}
		for i, r := range label {
			cv.set(start+i, row, r, cellLabel)
		}
	}
	return cv
}

func newCanvas(cols, rows int) *canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
	}
	return &canvas{cols: cols, rows: rows, cells: cells, nodeStyle: lipgloss.NewStyle()}
}

func toCell(x, y float64) (int, int) {
	return int(math.Round(x / unitsPerColumn)), int(math.Round(y / unitsPerRow))
}

// set writes r at (col, row). Cells off the canvas are dropped and spokes
// never overwrite nodes or labels.
func (cv *canvas) set(col, row int, r rune, kind cellKind) {
	if col < 0 || row < 0 || col >= cv.cols || row >= cv.rows {
		return
	}
	if kind == cellSpoke && cv.cells[row][col].kind > cellSpoke {
		return
	}
	cv.cells[row][col] = cell{r: r, kind: kind}
}

// line draws a spoke with Bresenham's algorithm.
func (cv *canvas) line(c1, r1, c2, r2 int) {
	dc, dr := abs(c2-c1), -abs(r2-r1)
	sc, sr := sign(c2-c1), sign(r2-r1)
	e := dc + dr
	for {
		cv.set(c1, r1, '·', cellSpoke)
		if c1 == c2 && r1 == r2 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c1 += sc
		}
		if e2 <= dc {
			e += dc
			r1 += sr
		}
	}
}

// String renders the canvas with trailing blanks trimmed.
func (cv *canvas) String() string {
	var b strings.Builder
	for i, row := range cv.cells {
		var line strings.Builder
		for _, c := range row {
			switch c.kind {
			case cellBlank:
				line.WriteByte(' ')
			case cellSpoke:
				line.WriteString(StyleDim.Render(string(c.r)))
			case cellNode:
				line.WriteString(cv.nodeStyle.Render(string(c.r)))
			default:
				line.WriteRune(c.r)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if i < len(cv.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// termColor maps a chart color to a terminal color. Only hex colors carry
// over; anything else falls back to the accent color.
func termColor(c string) lipgloss.TerminalColor {
	if strings.HasPrefix(c, "#") {
		return lipgloss.Color(c)
	}
	return colorCyan
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
