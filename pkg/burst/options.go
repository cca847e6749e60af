package burst

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/burst/pkg/host"
)

// Option configures a [Chart].
type Option func(*Chart)

// WithLabel sets the label function. A nil function keeps the default, which
// renders each item as its own label.
func WithLabel(fn LabelFunc) Option { return func(c *Chart) { c.labelAs = fn } }

// WithKey replaces the identity function used for reconciliation.
func WithKey(fn KeyFunc) Option { return func(c *Chart) { c.keyOf = fn } }

// WithGeometry overrides the layout constants.
func WithGeometry(g Geometry) Option { return func(c *Chart) { c.geom = g } }

// WithHost subscribes the chart to the host's resize events.
func WithHost(env host.Env) Option { return func(c *Chart) { c.env = env } }

// WithLogger sets the chart's logger.
func WithLogger(l *log.Logger) Option { return func(c *Chart) { c.logger = l } }

// WithID sets the chart's instance id instead of a random UUID.
func WithID(id string) Option { return func(c *Chart) { c.id = id } }
