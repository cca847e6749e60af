package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func identity(s string) string { return s }

func keysOf[T any](entries []Entry[T]) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name         string
		prev         []string
		items        []string
		wantCreated  []string
		wantRetained []string
		wantRemoved  []int
	}{
		{
			name:        "initial render",
			prev:        nil,
			items:       []string{"a", "b", "c"},
			wantCreated: []string{"a", "b", "c"},
		},
		{
			name:         "identical render",
			prev:         []string{"a", "b"},
			items:        []string{"a", "b"},
			wantRetained: []string{"a", "b"},
		},
		{
			name:         "reduced list",
			prev:         []string{"a", "b", "c"},
			items:        []string{"a", "c"},
			wantRetained: []string{"a", "c"},
			wantRemoved:  []int{1},
		},
		{
			name:         "grown and reordered",
			prev:         []string{"a", "b"},
			items:        []string{"c", "b", "a"},
			wantCreated:  []string{"c"},
			wantRetained: []string{"b", "a"},
		},
		{
			name:        "empty list removes everything",
			prev:        []string{"a", "b"},
			items:       nil,
			wantRemoved: []int{0, 1},
		},
		{
			name:         "duplicate new key is an update of the first",
			prev:         nil,
			items:        []string{"a", "b", "a"},
			wantCreated:  []string{"a", "b"},
			wantRetained: []string{"a"},
		},
		{
			name:         "duplicate retained key",
			prev:         []string{"a"},
			items:        []string{"a", "a"},
			wantRetained: []string{"a", "a"},
		},
		{
			name:         "duplicate previous key is removed",
			prev:         []string{"a", "a", "b"},
			items:        []string{"a"},
			wantRetained: []string{"a"},
			wantRemoved:  []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Reconcile(tt.prev, tt.items, identity)

			if diff := cmp.Diff(tt.wantCreated, keysOf(p.Created), cmpEmpty); diff != "" {
				t.Errorf("Created mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRetained, keysOf(p.Retained), cmpEmpty); diff != "" {
				t.Errorf("Retained mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRemoved, p.Removed, cmpEmpty); diff != "" {
				t.Errorf("Removed mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var cmpEmpty = cmpopts.EquateEmpty()

func TestReconcileEntriesKeepIndexOrder(t *testing.T) {
	p := Reconcile([]string{"b"}, []string{"a", "b", "c", "a"}, identity)

	var got []int
	for _, e := range p.Entries() {
		got = append(got, e.Index)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, got); diff != "" {
		t.Errorf("Entries() index order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, p.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileCallsKeyOncePerItem(t *testing.T) {
	calls := 0
	items := []int{1, 2, 3}
	Reconcile(nil, items, func(i int) string {
		calls++
		return string(rune('a' + i))
	})
	if calls != len(items) {
		t.Errorf("key called %d times, want %d", calls, len(items))
	}
}
