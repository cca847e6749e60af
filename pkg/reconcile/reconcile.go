// Package reconcile computes keyed diffs between a previously rendered
// collection and a new ordered list of items.
//
// The diff is the core of a data-join: given the keys of the elements that
// already exist and the items that should exist now, [Reconcile] partitions the
// items into those that need a new element (Created), those that map onto an
// existing element (Retained), and the existing elements that no longer have an
// item (Removed).
//
// # Duplicate keys
//
// Keys are expected to be unique within one call. Duplicates are tolerated:
// only the first occurrence of a key is classified as Created or Retained by
// the key's own history; every later occurrence is appended to Retained so the
// caller applies it as an update to the element owned by the first. Applying
// entries in index order therefore lets the last duplicate win.
//
// Duplicate keys in prev are tolerated the same way: the first position keeps
// the key, the others are reported in Removed.
package reconcile

import "slices"

// Entry is one item of the new list together with its key and position.
type Entry[T any] struct {
	Key   string
	Index int
	Item  T
}

// Partition is the result of [Reconcile].
type Partition[T any] struct {
	// Created holds entries whose key had no previous element, in index order.
	Created []Entry[T]
	// Retained holds entries whose key already owns an element, either from
	// prev or from an earlier entry of the same call, in index order.
	Retained []Entry[T]
	// Removed holds positions in prev whose elements have no entry any more.
	Removed []int
}

// Entries returns Created and Retained merged back into index order.
func (p Partition[T]) Entries() []Entry[T] {
	all := make([]Entry[T], 0, len(p.Created)+len(p.Retained))
	all = append(all, p.Created...)
	all = append(all, p.Retained...)
	slices.SortFunc(all, func(a, b Entry[T]) int { return a.Index - b.Index })
	return all
}

// Keys returns the distinct keys of the new list in first-occurrence order.
func (p Partition[T]) Keys() []string {
	seen := make(map[string]bool, len(p.Created)+len(p.Retained))
	var keys []string
	for _, e := range p.Entries() {
		if !seen[e.Key] {
			seen[e.Key] = true
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Reconcile partitions items against the keys of the previous collection.
// key is called exactly once per item.
func Reconcile[T any](prev []string, items []T, key func(T) string) Partition[T] {
	var p Partition[T]

	existing := make(map[string]int, len(prev))
	for i, k := range prev {
		if _, dup := existing[k]; dup {
			p.Removed = append(p.Removed, i)
			continue
		}
		existing[k] = i
	}

	bound := make(map[string]bool, len(items))
	for i, item := range items {
		e := Entry[T]{Key: key(item), Index: i, Item: item}
		_, had := existing[e.Key]
		switch {
		case bound[e.Key] || had:
			p.Retained = append(p.Retained, e)
		default:
			p.Created = append(p.Created, e)
		}
		bound[e.Key] = true
	}

	for k, i := range existing {
		if !bound[k] {
			p.Removed = append(p.Removed, i)
		}
	}
	slices.Sort(p.Removed)

	return p
}
