package burst

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// KeyFunc derives an item's identity for reconciliation.
type KeyFunc func(item any) string

// LabelFunc derives the label text of an item.
type LabelFunc func(item any) string

// Key returns the canonical JSON encoding of item: object keys sorted, no
// HTML escaping. Values JSON cannot encode fall back to their Go syntax
// representation prefixed with the type, so keying never fails.
func Key(item any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(item); err != nil {
		return fmt.Sprintf("%T:%#v", item, item)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Label renders an item as its own label: strings verbatim, Stringers via
// String, scalars with %v and anything else as its canonical JSON.
func Label(item any) string {
	switch v := item.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	default:
		return Key(v)
	}
}

// FieldLabel returns a LabelFunc that renders the named field of map items,
// falling back to [Label] for other items or missing fields.
func FieldLabel(field string) LabelFunc {
	return func(item any) string {
		if m, ok := item.(map[string]any); ok {
			if v, ok := m[field]; ok {
				return Label(v)
			}
		}
		return Label(item)
	}
}

// FieldKey returns a KeyFunc that identifies map items by the named field,
// falling back to [Key] for other items or missing fields.
func FieldKey(field string) KeyFunc {
	return func(item any) string {
		if m, ok := item.(map[string]any); ok {
			if v, ok := m[field]; ok {
				return Key(v)
			}
		}
		return Key(item)
	}
}

// Items converts a typed slice to the []any a chart renders.
func Items[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
