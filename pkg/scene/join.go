package scene

import (
	"slices"

	"github.com/matzehuels/burst/pkg/reconcile"
)

// Selection is the result of a keyed data-join between the children of a
// parent element that carry a class and a new list of data.
//
// The typical sequence mirrors enter/update/exit:
//
//	sel := scene.Join(parent, "node", data, key)
//	sel.Enter(create)  // build elements for new keys
//	sel.Each(update)   // position every current element
//	sel.Remove()       // drop elements whose keys are gone
//	sel.Order()        // restore data order within the layer
type Selection[T any] struct {
	parent *Element
	class  string
	part   reconcile.Partition[T]
	exit   []*Element
	bound  map[string]*Element
}

// Join matches the direct children of parent carrying class against data,
// using key to derive each datum's identity. Children match by the key bound
// to them when they entered.
func Join[T any](parent *Element, class string, data []T, key func(T) string) *Selection[T] {
	var prev []*Element
	for _, c := range parent.children {
		if c.HasClass(class) {
			prev = append(prev, c)
		}
	}

	keys := make([]string, len(prev))
	for i, el := range prev {
		keys[i] = el.key
	}

	s := &Selection[T]{
		parent: parent,
		class:  class,
		part:   reconcile.Reconcile(keys, data, key),
		bound:  make(map[string]*Element, len(data)),
	}

	removed := make(map[int]bool, len(s.part.Removed))
	for _, i := range s.part.Removed {
		removed[i] = true
		s.exit = append(s.exit, prev[i])
	}
	for i, el := range prev {
		if !removed[i] {
			s.bound[el.key] = el
		}
	}
	return s
}

// Enter calls create for every entering datum, in data order. The returned
// element is bound to the datum's key and tagged with the join class; it must
// already be attached under the selection's parent. Enter returns the number of
// elements created.
func (s *Selection[T]) Enter(create func(reconcile.Entry[T]) *Element) int {
	for _, e := range s.part.Created {
		el := create(e)
		if el == nil {
			panic("scene: enter callback returned nil element")
		}
		el.key = e.Key
		if !el.HasClass(s.class) {
			addClass(el, s.class)
		}
		s.bound[e.Key] = el
	}
	return len(s.part.Created)
}

// Each calls fn for every datum that has a bound element (retained data, and
// entered data once Enter has run), in data order. A duplicated key is visited
// once per occurrence with the same element.
func (s *Selection[T]) Each(fn func(reconcile.Entry[T], *Element)) {
	for _, e := range s.part.Entries() {
		if el, ok := s.bound[e.Key]; ok {
			fn(e, el)
		}
	}
}

// Exit returns the elements whose keys are absent from the data.
func (s *Selection[T]) Exit() []*Element { return slices.Clone(s.exit) }

// Remove detaches the exiting elements and returns how many were removed.
func (s *Selection[T]) Remove() int {
	for _, el := range s.exit {
		el.Remove()
	}
	n := len(s.exit)
	s.exit = nil
	return n
}

// Order rearranges the bound elements into data order, using only the
// positions they already occupy under the parent. Elements of other layers
// keep their positions, so z-order between layers is preserved.
func (s *Selection[T]) Order() {
	var want []*Element
	for _, k := range s.part.Keys() {
		if el, ok := s.bound[k]; ok && el.parent == s.parent {
			want = append(want, el)
		}
	}

	var slots []int
	for i, c := range s.parent.children {
		if _, ok := s.bound[c.key]; ok && s.bound[c.key] == c {
			slots = append(slots, i)
		}
	}
	if len(slots) != len(want) {
		return
	}
	for i, pos := range slots {
		s.parent.children[pos] = want[i]
	}
}

// Created returns the number of entering data.
func (s *Selection[T]) Created() int { return len(s.part.Created) }

// Retained returns the number of data matched to existing elements, including
// duplicated keys.
func (s *Selection[T]) Retained() int { return len(s.part.Retained) }

// Removed returns the number of exiting elements.
func (s *Selection[T]) Removed() int { return len(s.part.Removed) }

// Element returns the element bound to key.
func (s *Selection[T]) Element(key string) (*Element, bool) {
	el, ok := s.bound[key]
	return el, ok
}

func addClass(el *Element, class string) {
	if c := el.Class(); c != "" {
		el.SetClass(c + " " + class)
		return
	}
	el.SetClass(class)
}
