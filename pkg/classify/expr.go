package classify

import (
	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// Expr is a declarative comparison predicate, the serializable form of a
// boolean classifier. Job specs unmarshal it from YAML or JSON:
//
//	{field: "spec.price", op: "lt", value: 5}
type Expr struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value any    `json:"value"`
}

// Classifier compiles the predicate into a boolean classifier. Unknown
// operators surface as an error from the compiled classifier, never as a
// panic mid-chain.
func (e Expr) Classifier() pivot.Classifier {
	value := FieldValue(e.Field)
	return func(rec pivot.Record) (any, error) {
		got := value(rec)
		switch e.Op {
		case "eq", "":
			return equalValues(got, e.Value), nil
		case "ne":
			return !equalValues(got, e.Value), nil
		case "lt":
			return compareValues(got, e.Value) < 0, nil
		case "le":
			return compareValues(got, e.Value) <= 0, nil
		case "gt":
			return compareValues(got, e.Value) > 0, nil
		case "ge":
			return compareValues(got, e.Value) >= 0, nil
		default:
			return nil, NewExprError(e.Op)
		}
	}
}

// equalValues compares after numeric normalization, so int64(5) from a CSV
// source equals float64(5) from a JSON one.
func equalValues(a, b any) bool {
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return pivot.DisplayString(a) == pivot.DisplayString(b)
}

func compareValues(a, b any) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as, bs := pivot.DisplayString(a), pivot.DisplayString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
