package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/burst/pkg/reconcile"
)

func key(s string) string { return s }

// render is a miniature widget: one <circle class="dot"> per datum, its cx
// set to the datum index.
func render(parent *Element, data []string) *Selection[string] {
	sel := Join(parent, "dot", data, key)
	sel.Enter(func(e reconcile.Entry[string]) *Element {
		return parent.Append("circle").SetText(e.Item)
	})
	sel.Each(func(e reconcile.Entry[string], el *Element) {
		el.SetFloat("cx", float64(e.Index))
	})
	sel.Remove()
	sel.Order()
	return sel
}

func keysUnder(parent *Element) []string {
	var out []string
	for _, c := range parent.Children() {
		out = append(out, c.Key())
	}
	return out
}

func TestJoinEnterUpdateExit(t *testing.T) {
	parent := New("g")

	sel := render(parent, []string{"a", "b", "c"})
	if sel.Created() != 3 || sel.Retained() != 0 || sel.Removed() != 0 {
		t.Fatalf("first join = (%d, %d, %d), want (3, 0, 0)", sel.Created(), sel.Retained(), sel.Removed())
	}
	a, _ := sel.Element("a")

	sel = render(parent, []string{"a", "c"})
	if sel.Created() != 0 || sel.Retained() != 2 || sel.Removed() != 1 {
		t.Fatalf("second join = (%d, %d, %d), want (0, 2, 1)", sel.Created(), sel.Retained(), sel.Removed())
	}
	if diff := cmp.Diff([]string{"a", "c"}, keysUnder(parent)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	a2, _ := sel.Element("a")
	if a != a2 {
		t.Error("retained element should keep its identity")
	}
	c, _ := sel.Element("c")
	if cx, _ := c.FloatAttr("cx"); cx != 1 {
		t.Errorf("retained element should be updated to index 1, cx = %v", cx)
	}
}

func TestJoinTagsEnteredElements(t *testing.T) {
	parent := New("g")
	render(parent, []string{"a"})

	el := parent.Children()[0]
	if !el.HasClass("dot") {
		t.Error("entered element should carry the join class")
	}
	if el.Key() != "a" {
		t.Errorf("Key() = %q, want a", el.Key())
	}
}

func TestJoinIgnoresOtherLayers(t *testing.T) {
	parent := New("g")
	other := parent.Append("line").SetClass("connector")
	render(parent, []string{"a", "b"})
	render(parent, nil)

	if parent.NumChildren() != 1 || parent.Children()[0] != other {
		t.Errorf("join should only remove its own class, children = %v", keysUnder(parent))
	}
}

func TestJoinDuplicateKeys(t *testing.T) {
	parent := New("g")
	sel := render(parent, []string{"a", "b", "a"})

	if parent.NumChildren() != 2 {
		t.Fatalf("duplicate key should not create a second element, got %d", parent.NumChildren())
	}
	el, _ := sel.Element("a")
	if cx, _ := el.FloatAttr("cx"); cx != 2 {
		t.Errorf("last duplicate should win, cx = %v", cx)
	}
}

func TestJoinOrderFollowsData(t *testing.T) {
	parent := New("g")
	line := parent.Append("line")
	render(parent, []string{"a", "b", "c"})
	render(parent, []string{"c", "a", "b"})

	if parent.Children()[0] != line {
		t.Error("Order should not move elements of other layers")
	}
	if diff := cmp.Diff([]string{"", "c", "a", "b"}, keysUnder(parent)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinExitBeforeRemove(t *testing.T) {
	parent := New("g")
	render(parent, []string{"a", "b"})

	sel := Join(parent, "dot", []string{"b"}, key)
	exit := sel.Exit()
	if len(exit) != 1 || exit[0].Key() != "a" {
		t.Fatalf("Exit() = %v, want [a]", exit)
	}
	if n := sel.Remove(); n != 1 {
		t.Errorf("Remove() = %d, want 1", n)
	}
	if n := sel.Remove(); n != 0 {
		t.Errorf("second Remove() = %d, want 0", n)
	}
}
