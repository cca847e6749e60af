// Package burst renders a radial "burst" chart: a fixed center connected by
// lines to N labeled nodes spaced evenly around a circle.
//
// # Overview
//
// A [Chart] is a retained widget mounted under a target element of a
// [scene] tree. The host calls [Chart.Render] whenever the data changes; the
// chart reconciles its elements against the new data by identity key instead
// of rebuilding them:
//
//   - items whose key is new get a node group (circle and label) and a connector
//   - items whose key already has elements are repositioned in place
//   - elements whose key disappeared are removed
//
// Connectors are always kept beneath node groups.
//
// # Layout
//
// Item i of n sits at angle i*2π/n - [PhaseShift] on a circle of radius
// min(width, [Height])/2 - [Margin], centered in the container. The container
// width is read from the target's parent on every render, so a re-render after
// a host resize adapts the layout. See [NewLayout].
//
// # Identity
//
// By default an item's identity is its canonical JSON encoding ([Key]), so two
// structurally equal values are the same entity. Duplicate identities in one
// render are tolerated: one node exists per identity and the last occurrence
// decides its position.
//
// # Resizing
//
// With a host ([WithHost]) the chart subscribes to resize events. A burst of
// events is coalesced into a single re-render with the last rendered data,
// [ResizeDebounce] after the first event. [Chart.Destroy] releases the
// subscription and cancels a pending re-render.
//
// # Example
//
//	env := host.NewHeadless(400)
//	svg := env.Body.Append("svg")
//	chart, err := burst.New(svg, burst.Colors{NodeFill: "#fff", NodeStroke: "#000"},
//	    burst.WithHost(env))
//	if err != nil {
//	    return err
//	}
//	defer chart.Destroy()
//	chart.Render(burst.Items([]string{"api", "db", "cache"}))
//
// A Chart is not safe for concurrent use; it belongs to its host's event thread.
package burst
