package crosstab

import (
	"fmt"
	"sort"

	"github.com/go-logr/logr"

	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// Aggregator folds one bucket into a cell value.
type Aggregator func(bucket []pivot.Record) any

// TotalAggregator folds a row or column of cell values into a total. The
// slice is aligned to the table axis, with nil marking absent cells.
type TotalAggregator func(values []any) any

// Aggregators bundles the pluggable aggregation functions of a table build.
// Nil members fall back to the defaults: the raw bucket for cells and the
// count-like fold for the three total kinds.
type Aggregators struct {
	Cell     Aggregator
	RowTotal TotalAggregator
	ColTotal TotalAggregator
}

type options struct {
	aggs    Aggregators
	lenient bool
	log     logr.Logger
}

// Option configures a table build.
type Option func(*options)

// WithAggregators supplies custom cell and total aggregators.
func WithAggregators(aggs Aggregators) Option {
	return func(o *options) { o.aggs = aggs }
}

// WithLenient makes Build return (nil, nil) instead of an error on a
// malformed chain, for callers that rely on the permissive contract of
// silently skipping results that are not exactly two named pivots deep.
func WithLenient() Option {
	return func(o *options) { o.lenient = true }
}

// WithLogger attaches a logger to the build.
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

type header struct {
	display string
	value   any
}

// Table is the materialized cross-tabulation of a two-dimension grouping
// result: sorted row and column headers, the sparse cell matrix, and the
// row, column and grand totals. A Table is read-only output, derived fresh
// by each Build call.
type Table struct {
	label     string
	rowName   string
	colName   string
	rowHeads  []header
	colHeads  []header
	cells     map[[2]int]any
	rowTotals []any
	colTotals []any
	grand     any
}

// Build flattens a grouping result produced by exactly two named chained
// pivot passes into a Table. The column dimension is the one introduced by
// the first pass, the row dimension the second. label names the total row
// and column ("total <label>").
//
// A result that is not exactly two named passes deep yields
// ErrMalformedChain (or a nil table without error under WithLenient).
// Build never mutates the result; building twice from the same result gives
// identical tables.
func Build(res *pivot.Result, label string, opts ...Option) (*Table, error) {
	o := options{log: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	if reason := malformedReason(res); reason != "" {
		if o.lenient {
			o.log.V(2).Info("skipping malformed pivot chain", "reason", reason)
			return nil, nil
		}
		return nil, NewMalformedChainError(reason)
	}

	dims := res.Dimensions()
	colDim, rowDim := dims[0].Label(), dims[1].Label()

	t := &Table{
		label:   label,
		rowName: rowDim,
		colName: colDim,
		cells:   map[[2]int]any{},
	}

	// Header sets keyed by canonical string form: equal string forms
	// deduplicate, keeping the first-seen value as representative. Sorted
	// once below, never re-sorted incrementally.
	buckets := map[[2]string][]pivot.Record{}
	colSeen := map[string]any{}
	rowSeen := map[string]any{}
	for _, k := range res.Keys() {
		colVal, _ := k.Get(colDim)
		rowVal, _ := k.Get(rowDim)
		cs, rs := pivot.DisplayString(colVal), pivot.DisplayString(rowVal)
		if _, ok := colSeen[cs]; !ok {
			colSeen[cs] = colVal
		}
		if _, ok := rowSeen[rs]; !ok {
			rowSeen[rs] = rowVal
		}
		b, _ := res.Bucket(k)
		buckets[[2]string{rs, cs}] = append(buckets[[2]string{rs, cs}], b...)
	}
	t.colHeads = sortedHeaders(colSeen)
	t.rowHeads = sortedHeaders(rowSeen)

	colIdx := make(map[string]int, len(t.colHeads))
	for i, h := range t.colHeads {
		colIdx[h.display] = i
	}
	rowIdx := make(map[string]int, len(t.rowHeads))
	for i, h := range t.rowHeads {
		rowIdx[h.display] = i
	}

	for pos, b := range buckets {
		var cell any = b
		if o.aggs.Cell != nil {
			cell = o.aggs.Cell(b)
		}
		t.cells[[2]int{rowIdx[pos[0]], colIdx[pos[1]]}] = cell
	}

	rowTotal := o.aggs.RowTotal
	if rowTotal == nil {
		rowTotal = defaultFold
	}
	colTotal := o.aggs.ColTotal
	if colTotal == nil {
		colTotal = defaultFold
	}

	t.rowTotals = make([]any, len(t.rowHeads))
	for r := range t.rowHeads {
		t.rowTotals[r] = rowTotal(t.rowValues(r))
	}
	t.colTotals = make([]any, len(t.colHeads))
	for c := range t.colHeads {
		t.colTotals[c] = colTotal(t.colValues(c))
	}
	// The grand total folds the row-totals column with the column
	// aggregator, so with the default fold it cross-checks against both
	// the row and the column totals.
	t.grand = colTotal(append([]any{}, t.rowTotals...))

	o.log.V(2).Info("crosstab built", "rows", len(t.rowHeads), "columns", len(t.colHeads),
		"cells", len(t.cells))
	return t, nil
}

// malformedReason reports why the result cannot be cross-tabulated, or ""
// when it can.
func malformedReason(res *pivot.Result) string {
	if res == nil {
		return "no grouping result"
	}
	dims := res.Dimensions()
	if len(dims) != 2 {
		return fmt.Sprintf("chain is %d pivot pass(es) deep, need exactly 2", len(dims))
	}
	for _, k := range res.Keys() {
		if k.Kind() != pivot.NamedKey || k.Len() != 2 {
			return fmt.Sprintf("key %s is not a two-entry named key", k)
		}
		for _, d := range dims {
			if _, ok := k.Get(d.Label()); !ok {
				return fmt.Sprintf("key %s misses dimension %q", k, d.Label())
			}
		}
	}
	return ""
}

func sortedHeaders(seen map[string]any) []header {
	hs := make([]header, 0, len(seen))
	for s, v := range seen {
		hs = append(hs, header{display: s, value: v})
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].display < hs[j].display })
	return hs
}

// rowValues returns the cells of row r aligned to the column headers, nil
// for absent combinations.
func (t *Table) rowValues(r int) []any {
	vals := make([]any, len(t.colHeads))
	for c := range t.colHeads {
		if cell, ok := t.cells[[2]int{r, c}]; ok {
			vals[c] = cell
		}
	}
	return vals
}

func (t *Table) colValues(c int) []any {
	vals := make([]any, len(t.rowHeads))
	for r := range t.rowHeads {
		if cell, ok := t.cells[[2]int{r, c}]; ok {
			vals[r] = cell
		}
	}
	return vals
}

// Label returns the total label of the table.
func (t *Table) Label() string { return t.label }

// RowDimension returns the name of the row dimension (second pivot pass).
func (t *Table) RowDimension() string { return t.rowName }

// ColumnDimension returns the name of the column dimension (first pass).
func (t *Table) ColumnDimension() string { return t.colName }

// RowHeaders returns the distinct row dimension values in ascending order of
// their string form.
func (t *Table) RowHeaders() []any {
	vals := make([]any, len(t.rowHeads))
	for i, h := range t.rowHeads {
		vals[i] = h.value
	}
	return vals
}

// ColumnHeaders returns the distinct column dimension values in ascending
// order of their string form.
func (t *Table) ColumnHeaders() []any {
	vals := make([]any, len(t.colHeads))
	for i, h := range t.colHeads {
		vals[i] = h.value
	}
	return vals
}

// Cell returns the aggregated value at (row, column) index, or false for an
// absent combination.
func (t *Table) Cell(row, col int) (any, bool) {
	v, ok := t.cells[[2]int{row, col}]
	return v, ok
}

// RowTotals returns the totals column, aligned to RowHeaders.
func (t *Table) RowTotals() []any { return append([]any{}, t.rowTotals...) }

// ColumnTotals returns the totals row, aligned to ColumnHeaders.
func (t *Table) ColumnTotals() []any { return append([]any{}, t.colTotals...) }

// GrandTotal returns the bottom-right total cell.
func (t *Table) GrandTotal() any { return t.grand }

// Rows renders the table row-major per the fixed layout: a header row
// "<row>/<col>, columns..., total <label>", one row per row header value
// with nil cells for absent combinations, and a final totals row.
func (t *Table) Rows() [][]any {
	width := len(t.colHeads) + 2
	rows := make([][]any, 0, len(t.rowHeads)+2)

	head := make([]any, 0, width)
	head = append(head, t.rowName+"/"+t.colName)
	for _, h := range t.colHeads {
		head = append(head, h.value)
	}
	head = append(head, "total "+t.label)
	rows = append(rows, head)

	for r, h := range t.rowHeads {
		row := make([]any, 0, width)
		row = append(row, h.value)
		row = append(row, t.rowValues(r)...)
		row = append(row, t.rowTotals[r])
		rows = append(rows, row)
	}

	last := make([]any, 0, width)
	last = append(last, "total "+t.label)
	last = append(last, t.colTotals...)
	last = append(last, t.grand)
	rows = append(rows, last)

	return rows
}
