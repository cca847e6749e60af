package burst

import (
	"math"
	"time"

	"github.com/matzehuels/burst/pkg/errors"
)

// Default geometry. These reproduce the reference layout exactly.
const (
	// PhaseShift rotates every node so the first item is not placed at angle 0.
	PhaseShift = math.Pi / 8
	// Height is the fixed chart height.
	Height = 150.0
	// Margin is subtracted from the computed radius.
	Margin = 15.0
	// NodeRadius is the radius of each node circle.
	NodeRadius = 10.0
	// NodeStrokeWidth is the outline width of each node circle.
	NodeStrokeWidth = 3.0
	// LabelOffset is the horizontal distance between a node and its label.
	LabelOffset = 20.0
	// LabelBaseline is the vertical label offset.
	LabelBaseline = 5.0
	// ConnectorStroke is the connector line color.
	ConnectorStroke = "#333"
	// ConnectorWidth is the connector line width.
	ConnectorWidth = 2.0
	// ResizeDebounce is the quiet period before a resize re-render.
	ResizeDebounce = 150 * time.Millisecond
)

// Geometry holds the layout constants of a chart.
type Geometry struct {
	PhaseShift  float64
	Height      float64
	Margin      float64
	NodeRadius  float64
	LabelOffset float64
	Debounce    time.Duration
}

// DefaultGeometry returns the default layout constants.
func DefaultGeometry() Geometry {
	return Geometry{
		PhaseShift:  PhaseShift,
		Height:      Height,
		Margin:      Margin,
		NodeRadius:  NodeRadius,
		LabelOffset: LabelOffset,
		Debounce:    ResizeDebounce,
	}
}

// Validate reports the first invalid field as a configuration error.
func (g Geometry) Validate() error {
	switch {
	case !finite(g.PhaseShift):
		return errors.Configf("geometry: phase_shift must be finite")
	case !finite(g.Height) || g.Height <= 0:
		return errors.Configf("geometry: height must be positive, got %v", g.Height)
	case !finite(g.Margin) || g.Margin < 0:
		return errors.Configf("geometry: margin must not be negative, got %v", g.Margin)
	case !finite(g.NodeRadius) || g.NodeRadius < 0:
		return errors.Configf("geometry: node_radius must not be negative, got %v", g.NodeRadius)
	case !finite(g.LabelOffset) || g.LabelOffset < 0:
		return errors.Configf("geometry: label_offset must not be negative, got %v", g.LabelOffset)
	case g.Debounce < 0:
		return errors.Configf("geometry: debounce must not be negative, got %v", g.Debounce)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
