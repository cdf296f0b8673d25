package crosstab

import (
	"reflect"
	"strconv"

	"github.com/pivotkit/pivotkit/pkg/pivot"
)

// ValueFunc extracts the measure to aggregate from one record.
type ValueFunc func(pivot.Record) any

// Count aggregates a bucket into its record count.
func Count() Aggregator {
	return func(bucket []pivot.Record) any { return len(bucket) }
}

// SumOf aggregates a bucket into the sum of the extracted measure, coercing
// each value permissively (non-numeric counts as zero).
func SumOf(value ValueFunc) Aggregator {
	return func(bucket []pivot.Record) any {
		var total float64
		for _, rec := range bucket {
			total += coerceFloat(value(rec))
		}
		return total
	}
}

// AvgOf aggregates a bucket into the mean of the extracted measure.
func AvgOf(value ValueFunc) Aggregator {
	sum := SumOf(value)
	return func(bucket []pivot.Record) any {
		if len(bucket) == 0 {
			return float64(0)
		}
		return sum(bucket).(float64) / float64(len(bucket))
	}
}

// MinOf aggregates a bucket into the smallest extracted measure.
func MinOf(value ValueFunc) Aggregator {
	return extremumOf(value, func(v, m float64) bool { return v < m })
}

// MaxOf aggregates a bucket into the largest extracted measure.
func MaxOf(value ValueFunc) Aggregator {
	return extremumOf(value, func(v, m float64) bool { return v > m })
}

func extremumOf(value ValueFunc, better func(v, m float64) bool) Aggregator {
	return func(bucket []pivot.Record) any {
		var m float64
		found := false
		for _, rec := range bucket {
			v := coerceFloat(value(rec))
			if !found || better(v, m) {
				m = v
				found = true
			}
		}
		return m
	}
}

// TotalSum folds numeric cell values by float summation, for tables whose
// cells are sums or averages rather than counts. Absent cells count as zero.
func TotalSum() TotalAggregator {
	return func(values []any) any {
		var total float64
		for _, v := range values {
			total += coerceFloat(v)
		}
		return total
	}
}

// defaultFold is the count-like total fold: a sequence cell contributes its
// length, a numeric scalar its integer coercion, and everything else
// (absent cells included) contributes zero.
func defaultFold(values []any) any {
	total := 0
	for _, v := range values {
		total += coerceCount(v)
	}
	return total
}

func coerceCount(v any) int {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case int32:
		return int(t)
	case uint:
		return int(t)
	case uint64:
		return int(t)
	case float64:
		// JSON decoding delivers integers as float64; whole floats keep
		// their value, fractional ones coerce to zero like any other
		// non-integer scalar.
		if t == float64(int(t)) {
			return int(t)
		}
		return 0
	case float32:
		return coerceCount(float64(t))
	case string, bool:
		return 0
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array || rv.Kind() == reflect.Map {
		return rv.Len()
	}
	return 0
}

// coerceFloat converts a value to float64, parsing numeric strings and
// treating anything non-numeric as zero.
func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case int32:
		return float64(t)
	case uint:
		return float64(t)
	case uint64:
		return float64(t)
	case float64:
		return t
	case float32:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}
