// Package crosstab materializes a two-dimensional slice of a pivot result
// into a row/column cross-tabulation with per-row, per-column and grand
// totals.
//
// The input must come from exactly two named chained pivot passes: the first
// pass supplies the column dimension, the second the row dimension. Headers
// are the distinct dimension values ordered by their string form; cells hold
// the raw bucket or the output of a pluggable cell aggregator; missing
// row/column combinations stay absent (nil), never zero. Totals use the
// supplied TotalAggregators or a permissive count-like fold.
//
// Example usage:
//
//	res, _ := pivot.Pivot(records, bySize, pivot.WithName("size"))
//	res, _ = res.Pivot(byColor, pivot.WithName("color"))
//	table, err := crosstab.Build(res, "count",
//		crosstab.WithAggregators(crosstab.Aggregators{Cell: crosstab.Count()}))
//	for _, row := range table.Rows() { ... }
package crosstab
