package classify

import (
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/pivotkit/pivotkit/pkg/crosstab"
	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// Document is the map shape the declarative classifiers operate on. The
// pivot engine itself treats records as opaque; only this package assumes a
// document structure.
type Document = map[string]any

// Field builds a classifier that groups records by the value at a JSONPath
// (a bare field name is shorthand for "$.<name>"). A record without the
// field classifies to nil.
func Field(path string) pivot.Classifier {
	expr, err := parsePath(path)
	return func(rec pivot.Record) (any, error) {
		if err != nil {
			return nil, NewPathError(path, err)
		}
		return first(expr.Get(rec)), nil
	}
}

// FieldList builds a classifier with explode semantics: the field is
// expected to hold a sequence and the record joins one bucket per element.
// A missing field or a non-sequence value reads as the empty sequence, which
// the engine buckets under the reserved None key; to treat scalars as
// single-element sequences use Field instead.
func FieldList(path string) pivot.Classifier {
	expr, err := parsePath(path)
	return func(rec pivot.Record) (any, error) {
		if err != nil {
			return nil, NewPathError(path, err)
		}
		if vs, ok := first(expr.Get(rec)).([]any); ok {
			return vs, nil
		}
		return []any{}, nil
	}
}

// FieldValue extracts the value at a JSONPath from one record, for use as a
// crosstab measure. Missing fields read as nil.
func FieldValue(path string) crosstab.ValueFunc {
	expr, err := parsePath(path)
	return func(rec pivot.Record) any {
		if err != nil {
			return nil
		}
		return first(expr.Get(rec))
	}
}

func parsePath(path string) (jp.Expr, error) {
	if !strings.HasPrefix(path, "$") {
		path = "$." + path
	}
	return jp.ParseString(path)
}

// first unwraps the jsonpath result list: classifiers want the single value
// at the path, not the match list.
func first(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
