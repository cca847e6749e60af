package scene

import (
	"slices"
	"strconv"
	"strings"
)

// Element is a node of the scene graph.
type Element struct {
	tag  string
	key  string
	text string

	attrs []attr

	parent   *Element
	children []*Element

	clientWidth float64
}

type attr struct {
	name, value string
}

// New creates a detached element with the given tag name.
func New(tag string) *Element {
	return &Element{tag: tag}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Key returns the data-join key bound to the element, or "" if unbound.
func (e *Element) Key() string { return e.key }

// SetKey binds a data-join key to the element.
func (e *Element) SetKey(k string) *Element {
	e.key = k
	return e
}

// Parent returns the parent element, or nil for a detached or root element.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the element's children in document order.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// NumChildren returns the number of direct children.
func (e *Element) NumChildren() int { return len(e.children) }

// Append creates a child element with the given tag as the last child.
func (e *Element) Append(tag string) *Element {
	child := New(tag)
	e.AppendChild(child)
	return child
}

// AppendChild moves child to the end of e's children, detaching it from any
// previous parent. It panics if child is nil or an ancestor of e.
func (e *Element) AppendChild(child *Element) {
	e.insertAt(child, len(e.children))
}

// Insert creates a child element with the given tag immediately before the
// first child whose tag is before. If no such child exists the new element is
// appended.
func (e *Element) Insert(tag, before string) *Element {
	child := New(tag)
	idx := slices.IndexFunc(e.children, func(c *Element) bool { return c.tag == before })
	if idx < 0 {
		idx = len(e.children)
	}
	e.insertAt(child, idx)
	return child
}

func (e *Element) insertAt(child *Element, index int) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("scene: adding child would create a cycle")
	}
	if child.parent != nil {
		if child.parent == e {
			if i := e.indexOf(child); i < index {
				index--
			}
		}
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = slices.Insert(e.children, index, child)
}

// Remove detaches the element from its parent. No-op for detached elements.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	e.parent.removeChild(e)
	e.parent = nil
}

func (e *Element) removeChild(child *Element) {
	if i := e.indexOf(child); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
}

func (e *Element) indexOf(child *Element) int {
	return slices.Index(e.children, child)
}

func isAncestor(candidate, node *Element) bool {
	for n := node; n != nil; n = n.parent {
		if n == candidate {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute, keeping the position of an existing attribute.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = value
			return e
		}
	}
	e.attrs = append(e.attrs, attr{name: name, value: value})
	return e
}

// SetFloat sets a numeric attribute using the shortest exact decimal form.
func (e *Element) SetFloat(name string, v float64) *Element {
	return e.SetAttr(name, FormatFloat(v))
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// FloatAttr returns a numeric attribute. ok is false if the attribute is
// missing or not a number.
func (e *Element) FloatAttr(name string) (v float64, ok bool) {
	s, found := e.Attr(name)
	if !found {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// AttrNames returns attribute names in the order they were first set.
func (e *Element) AttrNames() []string {
	names := make([]string, len(e.attrs))
	for i, a := range e.attrs {
		names[i] = a.name
	}
	return names
}

// SetClass replaces the class attribute.
func (e *Element) SetClass(class string) *Element { return e.SetAttr("class", class) }

// Class returns the class attribute.
func (e *Element) Class() string {
	c, _ := e.Attr("class")
	return c
}

// HasClass reports whether class is one of the element's classes.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(strings.Fields(e.Class()), class)
}

// SetText replaces the element's text content.
func (e *Element) SetText(s string) *Element {
	e.text = s
	return e
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// SetClientWidth records the measured width of a container element.
// Hosts call it when their layout changes.
func (e *Element) SetClientWidth(w float64) *Element {
	e.clientWidth = w
	return e
}

// ClientWidth returns the measured width of a container element.
func (e *Element) ClientWidth() float64 { return e.clientWidth }

// Select returns the first direct child with the given tag, or nil.
func (e *Element) Select(tag string) *Element {
	for _, c := range e.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// SelectAll returns every descendant carrying class, in document order.
func (e *Element) SelectAll(class string) []*Element {
	var out []*Element
	e.Walk(func(n *Element) bool {
		if n != e && n.HasClass(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Count returns the number of descendants carrying class.
func (e *Element) Count(class string) int {
	return len(e.SelectAll(class))
}

// Walk visits e and its descendants in document order. Returning false from
// fn skips the visited element's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Translation parses a transform attribute of the form "translate(x, y)".
func (e *Element) Translation() (x, y float64, ok bool) {
	s, found := e.Attr("transform")
	if !found {
		return 0, 0, false
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "translate(") || !strings.HasSuffix(s, ")") {
		return 0, 0, false
	}
	parts := strings.Split(s[len("translate("):len(s)-1], ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

// Translate formats a translate transform.
func Translate(x, y float64) string {
	return "translate(" + FormatFloat(x) + ", " + FormatFloat(y) + ")"
}

// FormatFloat formats v with the fewest digits that parse back to v.
func FormatFloat(v float64) string {
	if v == 0 {
		v = 0 // normalizes negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
