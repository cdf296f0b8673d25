package pivot

import (
	"reflect"

	"github.com/go-logr/logr"
)

// Record is an opaque input value. The engine never mutates records, it only
// references them from buckets.
type Record = any

// Classifier maps a record to its dimension value: a scalar (anything
// comparable after canonicalization, including booleans and nil), or a
// sequence of scalars to place the record into several buckets at once
// (explode semantics). Classifier errors abort the pass and are returned to
// the caller unchanged; the engine has no meaningful recovery for them.
type Classifier func(Record) (any, error)

// nullValue is the reserved dimension value assigned to records whose
// classification yields an empty sequence.
type nullValue struct{}

func (nullValue) String() string { return "none" }

func (nullValue) MarshalJSON() ([]byte, error) { return []byte(`"none"`), nil }

// None is the reserved null key value.
var None = nullValue{}

// Dimension describes one grouping pass of a chain.
type Dimension struct {
	// Name of the dimension; empty for unnamed (positional) passes.
	Name string
	// Position is the 1-based index of the pass along the chain.
	Position int
}

// Label returns the dimension name, or the positional fallback label for
// unnamed dimensions.
func (d Dimension) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return fallbackLabel(d.Position)
}

type options struct {
	name  string
	named bool
	log   logr.Logger
}

// Option configures a grouping pass.
type Option func(*options)

// WithName names the dimension of the pass. Named passes produce named
// (mapping-shaped) composite keys.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
		o.named = true
	}
}

// WithLogger attaches a logger to the produced result. Verbosity level 4
// traces every key assignment.
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

func makeOptions(opts []Option) options {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type bucket struct {
	key     Key
	records []Record
}

// Result is the outcome of one or more chained grouping passes: a mapping
// from composite key to the ordered bucket of records sharing that key.
// Being a distinct type, a Result is statically known to come from this
// engine, so chained calls need no runtime tagging of the mapping.
//
// A Result must be treated as exclusively owned by the call site chaining on
// it: the engine takes no locks, and chaining the same instance from two
// goroutines is caller error.
type Result struct {
	order   []string
	buckets map[string]*bucket
	dims    []Dimension
	log     logr.Logger
}

func newResult(dims []Dimension, log logr.Logger) *Result {
	return &Result{
		order:   []string{},
		buckets: map[string]*bucket{},
		dims:    dims,
		log:     log,
	}
}

// Pivot groups records into buckets keyed by the classifier's output. A
// sequence-valued classification places the record into one bucket per
// element (duplicates included), an empty sequence places it once under the
// reserved None key, and any other value is taken as a single scalar key.
func Pivot(records []Record, classify Classifier, opts ...Option) (*Result, error) {
	o := makeOptions(opts)
	dim := Dimension{Name: o.name, Position: 1}
	res := newResult([]Dimension{dim}, o.log)

	for _, rec := range records {
		vals, err := classifyValues(classify, rec)
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			res.add(subKey(v, o), rec)
		}
	}

	res.log.V(4).Info("pivot pass done", "dimension", dim.Label(), "keys", len(res.order))
	return res, nil
}

// Pivot chains a further grouping pass onto the result: every existing
// bucket is re-grouped with the classifier and each new sub-key is merged
// with the old composite key. Records keep their first-seen order across
// passes. The receiver is left untouched.
func (r *Result) Pivot(classify Classifier, opts ...Option) (*Result, error) {
	o := makeOptions(opts)
	if o.log.GetSink() == nil {
		o.log = r.log
	}
	pos := len(r.dims) + 1
	dim := Dimension{Name: o.name, Position: pos}
	res := newResult(append(append([]Dimension{}, r.dims...), dim), o.log)

	for _, ck := range r.order {
		b := r.buckets[ck]
		for _, rec := range b.records {
			vals, err := classifyValues(classify, rec)
			if err != nil {
				return nil, err
			}
			for _, v := range vals {
				res.add(mergeKeys(b.key, subKey(v, o), pos), rec)
			}
		}
	}

	res.log.V(4).Info("pivot pass done", "dimension", dim.Label(), "depth", pos,
		"keys", len(res.order))
	return res, nil
}

// PivotAny is the permissive dynamic entry point: it pivots a *Result or a
// record slice, and returns any other input unchanged with no error. This
// mirrors the guard against grouping arbitrary mappings that were not
// produced by this engine; callers that need to detect the no-op must check
// the shape themselves.
func PivotAny(v any, classify Classifier, opts ...Option) (any, error) {
	switch t := v.(type) {
	case *Result:
		return t.Pivot(classify, opts...)
	case []Record:
		return Pivot(t, classify, opts...)
	default:
		return v, nil
	}
}

// subKey builds the single-pass key for one classification value.
func subKey(v any, o options) Key {
	if o.named {
		return Named(Entry{Name: o.name, Value: v})
	}
	return Scalar(v)
}

// classifyValues evaluates the classifier and expands its output into the
// list of dimension values the record belongs to.
func classifyValues(classify Classifier, rec Record) ([]any, error) {
	v, err := classify(rec)
	if err != nil {
		return nil, err
	}
	return expand(v), nil
}

// expand flattens a classification result into its assignment values. Any
// slice or array (except []byte, which reads as one opaque scalar) is
// treated as a multi-membership sequence; an empty sequence collapses to the
// reserved None key.
func expand(v any) []any {
	if v == nil {
		return []any{nil}
	}
	if _, ok := v.([]byte); ok {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	if rv.Len() == 0 {
		return []any{None}
	}
	vals := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		vals = append(vals, rv.Index(i).Interface())
	}
	return vals
}

func (r *Result) add(k Key, rec Record) {
	ck := k.canonical()
	b, ok := r.buckets[ck]
	if !ok {
		b = &bucket{key: k}
		r.buckets[ck] = b
		r.order = append(r.order, ck)
	}
	b.records = append(b.records, rec)
}

// Len returns the number of distinct composite keys.
func (r *Result) Len() int { return len(r.order) }

// Depth returns the number of chained passes applied.
func (r *Result) Depth() int { return len(r.dims) }

// Dimensions returns the chain of dimensions in application order.
func (r *Result) Dimensions() []Dimension {
	return append([]Dimension{}, r.dims...)
}

// Keys returns the composite keys in first-seen order.
func (r *Result) Keys() []Key {
	keys := make([]Key, 0, len(r.order))
	for _, ck := range r.order {
		keys = append(keys, r.buckets[ck].key)
	}
	return keys
}

// Bucket returns the records grouped under the given key, in first-seen
// order. The returned slice is shared with the result and must not be
// modified.
func (r *Result) Bucket(k Key) ([]Record, bool) {
	b, ok := r.buckets[k.canonical()]
	if !ok {
		return nil, false
	}
	return b.records, true
}
