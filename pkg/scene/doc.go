// Package scene is a small retained scene graph of SVG-like elements.
//
// A scene is a tree of [Element] values (groups, circles, lines, text) that a
// widget owns and mutates in place between renders. Elements keep their
// identity across renders, so any state attached to a persistent element
// survives an update. The package provides the operations a data-driven widget
// needs from its rendering surface:
//
//   - declarative append, insert and remove of named primitives
//   - a keyed data-join ([Join]) returning entering, updating and exiting sets
//   - attribute and text setters
//   - width and height on the root element, and a measured ClientWidth on
//     container elements that hosts update on layout changes
//
// Scenes serialize to SVG with [Element.WriteSVG].
//
// # Example
//
//	body := scene.New("div").SetClientWidth(400)
//	svg := body.Append("svg")
//	sel := scene.Join(svg, "dot", []string{"a", "b"}, func(s string) string { return s })
//	sel.Enter(func(e reconcile.Entry[string]) *scene.Element {
//	    return svg.Append("circle").SetAttr("r", "4")
//	})
//	sel.Each(func(e reconcile.Entry[string], el *scene.Element) {
//	    el.SetFloat("cx", float64(e.Index)*10)
//	})
//	sel.Remove()
//
// Elements are not safe for concurrent use. A scene belongs to the single
// event thread of its host.
package scene
