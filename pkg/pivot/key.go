package pivot

import (
	"fmt"
	"strings"

	"github.com/pivotkit/pivotkit/pkg/util"
)

// KeyKind discriminates the closed set of key shapes a grouping pass can
// produce.
type KeyKind int

const (
	// ScalarKey is the bare classification value of a single unnamed pass.
	ScalarKey KeyKind = iota
	// NamedKey is an ordered name->value mapping built by named passes.
	NamedKey
	// TupleKey is the ordered value sequence built by chained unnamed passes.
	TupleKey
)

// Entry is a single name->value pair of a named key. Entries keep the order
// in which their dimensions were introduced along the chain.
type Entry struct {
	Name  string
	Value any
}

// Key identifies a bucket in a grouping result. Keys are immutable value
// types: merge operations always build a new key.
type Key struct {
	kind    KeyKind
	scalar  any
	entries []Entry
	parts   []any
}

// Scalar creates a bare scalar key.
func Scalar(v any) Key {
	return Key{kind: ScalarKey, scalar: v}
}

// Named creates an ordered named key from the given entries.
func Named(entries ...Entry) Key {
	return Key{kind: NamedKey, entries: append([]Entry{}, entries...)}
}

// Tuple creates an ordered positional key from the given values.
func Tuple(parts ...any) Key {
	return Key{kind: TupleKey, parts: append([]any{}, parts...)}
}

// Kind returns the shape of the key.
func (k Key) Kind() KeyKind { return k.kind }

// Value returns the classification value of a scalar key.
func (k Key) Value() any { return k.scalar }

// Entries returns the ordered entries of a named key.
func (k Key) Entries() []Entry {
	return append([]Entry{}, k.entries...)
}

// Parts returns the ordered values of a tuple key.
func (k Key) Parts() []any {
	return append([]any{}, k.parts...)
}

// Get looks up the value stored under a dimension name in a named key.
func (k Key) Get(name string) (any, bool) {
	for _, e := range k.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Len returns the number of dimensions captured by the key.
func (k Key) Len() int {
	switch k.kind {
	case NamedKey:
		return len(k.entries)
	case TupleKey:
		return len(k.parts)
	default:
		return 1
	}
}

// String renders the key for display: scalars as their value, named keys as
// "{name:value, ...}" and tuples as "[v1, v2, ...]".
func (k Key) String() string {
	switch k.kind {
	case NamedKey:
		ss := make([]string, 0, len(k.entries))
		for _, e := range k.entries {
			ss = append(ss, fmt.Sprintf("%s:%s", e.Name, DisplayString(e.Value)))
		}
		return "{" + strings.Join(ss, ", ") + "}"
	case TupleKey:
		ss := make([]string, 0, len(k.parts))
		for _, p := range k.parts {
			ss = append(ss, DisplayString(p))
		}
		return "[" + strings.Join(ss, ", ") + "]"
	default:
		return DisplayString(k.scalar)
	}
}

// canonical returns the deterministic identity string of the key. Two keys
// bucket the same records exactly when their canonical forms are equal. The
// form is kind-prefixed so a scalar can never collide with a same-looking
// named or tuple key.
func (k Key) canonical() string {
	switch k.kind {
	case NamedKey:
		pairs := make([][2]any, 0, len(k.entries))
		for _, e := range k.entries {
			pairs = append(pairs, [2]any{e.Name, e.Value})
		}
		return "n:" + util.Stringify(pairs)
	case TupleKey:
		return "t:" + util.Stringify(k.parts)
	default:
		return "s:" + util.Stringify(k.scalar)
	}
}

// mergeKeys combines the composite key of the previous passes with the
// sub-key produced by the current pass. pos is the 1-based index of the
// current pass along the chain; it feeds the fallback labels used when named
// and unnamed dimensions are mixed.
//
// Pairing rules:
//   - named + named: entries merged, an already-present name is overwritten
//     in place, a new name is appended;
//   - scalar/tuple + scalar: tuple extended by one value (flattening, so a
//     chain of unnamed passes yields one flat tuple, never nested ones);
//   - mixed shapes: the unnamed side is lifted to a named key under
//     position-derived fallback labels, then merged as named + named.
func mergeKeys(old, sub Key, pos int) Key {
	if old.kind == NamedKey || sub.kind == NamedKey {
		return mergeNamed(liftNamed(old, 1), liftNamed(sub, pos))
	}

	parts := make([]any, 0, old.Len()+sub.Len())
	switch old.kind {
	case TupleKey:
		parts = append(parts, old.parts...)
	default:
		parts = append(parts, old.scalar)
	}
	switch sub.kind {
	case TupleKey:
		parts = append(parts, sub.parts...)
	default:
		parts = append(parts, sub.scalar)
	}
	return Key{kind: TupleKey, parts: parts}
}

// liftNamed wraps a scalar or tuple key into a named key using fallback
// labels. base is the chain position of the key's first dimension.
func liftNamed(k Key, base int) Key {
	switch k.kind {
	case NamedKey:
		return k
	case TupleKey:
		entries := make([]Entry, 0, len(k.parts))
		for i, p := range k.parts {
			entries = append(entries, Entry{Name: fallbackLabel(base + i), Value: p})
		}
		return Key{kind: NamedKey, entries: entries}
	default:
		return Key{kind: NamedKey, entries: []Entry{{Name: fallbackLabel(base), Value: k.scalar}}}
	}
}

func mergeNamed(old, sub Key) Key {
	entries := append([]Entry{}, old.entries...)
	for _, e := range sub.entries {
		replaced := false
		for i := range entries {
			if entries[i].Name == e.Name {
				entries[i].Value = e.Value
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, e)
		}
	}
	return Key{kind: NamedKey, entries: entries}
}

// fallbackLabel derives the dimension label used when an unnamed pass is
// mixed into a named chain. pos is 1-based.
func fallbackLabel(pos int) string {
	return fmt.Sprintf("dim%d", pos)
}

// DisplayString renders a dimension value the way headers and key dumps show
// it: strings verbatim, nil as "null", everything else via its natural Go
// formatting.
func DisplayString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
