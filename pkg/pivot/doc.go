// Package pivot implements the grouping engine of pivotkit: it folds a flat
// record collection into a multi-dimensional pivot structure by applying one
// classification pass per dimension and merging the pass keys into composite
// keys.
//
// Key components:
//   - Key: closed tagged variant over the three key shapes a chain can
//     produce (bare scalar, ordered named mapping, ordered tuple), with
//     explicit merge rules between the shapes.
//   - Classifier: user function mapping a record to its dimension value(s);
//     a sequence-valued classification assigns the record to several buckets
//     at once, an empty sequence assigns it to the reserved None key.
//   - Result: the grouping result, a distinct type wrapping the composite
//     key to bucket mapping together with the dimension chain. Chaining is
//     only possible on a Result, which statically rules out grouping
//     arbitrary mappings.
//
// The engine is a pure, terminating fold: O(n*d) over n records and d
// chained dimensions, no I/O, no internal locking. A Result is exclusively
// owned by the caller chaining on it.
//
// Example usage:
//
//	res, err := pivot.Pivot(records, bySize, pivot.WithName("size"))
//	res, err = res.Pivot(byColor, pivot.WithName("color"))
//	bucket, ok := res.Bucket(pivot.Named(
//		pivot.Entry{Name: "size", Value: "small"},
//		pivot.Entry{Name: "color", Value: "brown"},
//	))
package pivot
