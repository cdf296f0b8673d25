// Package jobspec loads the declarative YAML description of a pivot job: the
// dimensions to chain, the total label, and the optional cell aggregation.
package jobspec

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/pivotkit/pivotkit/pkg/classify"
	"github.com/pivotkit/pivotkit/pkg/crosstab"
	"github.com/pivotkit/pivotkit/pkg/pivot"
)

type ErrSpec = error

func NewSpecError(message string) ErrSpec {
	return fmt.Errorf("invalid job spec: %s", message)
}

// Spec is a declarative pivot job.
type Spec struct {
	// Label names the total row and column of the table.
	Label string `json:"label,omitempty"`
	// Dimensions is the pivot chain; the first dimension becomes the
	// table columns, the second the rows.
	Dimensions []Dimension `json:"dimensions"`
	// Aggregation configures the cell values; nil leaves raw buckets.
	Aggregation *Aggregation `json:"aggregation,omitempty"`
}

// Dimension declares one grouping pass. Exactly one of Field, List or Expr
// must be set.
type Dimension struct {
	Name string `json:"name"`
	// Field groups by the value at a JSONPath.
	Field string `json:"field,omitempty"`
	// List groups by every element of a sequence-valued field.
	List string `json:"list,omitempty"`
	// Expr groups by a boolean comparison predicate.
	Expr *classify.Expr `json:"expr,omitempty"`
}

// Aggregation declares how buckets become cell values.
type Aggregation struct {
	// Type is one of count, sum, avg, min, max.
	Type string `json:"type"`
	// Field is the measure path for everything but count.
	Field string `json:"field,omitempty"`
}

// Load reads and validates a YAML job spec.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse unmarshals and validates a YAML job spec.
func Parse(data []byte) (*Spec, error) {
	spec := &Spec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks the job spec against the cross-tabulation contract.
func (s *Spec) Validate() error {
	if s.Label == "" {
		s.Label = "count"
	}
	if len(s.Dimensions) != 2 {
		return NewSpecError(fmt.Sprintf("need exactly 2 dimensions for a cross-tabulation, got %d",
			len(s.Dimensions)))
	}
	for i, d := range s.Dimensions {
		if d.Name == "" {
			return NewSpecError(fmt.Sprintf("dimension %d has no name", i+1))
		}
		set := 0
		for _, ok := range []bool{d.Field != "", d.List != "", d.Expr != nil} {
			if ok {
				set++
			}
		}
		if set != 1 {
			return NewSpecError(fmt.Sprintf("dimension %q needs exactly one of field, list or expr",
				d.Name))
		}
	}
	if s.Aggregation != nil {
		switch s.Aggregation.Type {
		case "count":
		case "sum", "avg", "min", "max":
			if s.Aggregation.Field == "" {
				return NewSpecError(fmt.Sprintf("aggregation %q needs a field", s.Aggregation.Type))
			}
		default:
			return NewSpecError(fmt.Sprintf("unknown aggregation type %q", s.Aggregation.Type))
		}
	}
	return nil
}

// Classifier compiles the dimension into a pivot classifier.
func (d Dimension) Classifier() pivot.Classifier {
	switch {
	case d.Field != "":
		return classify.Field(d.Field)
	case d.List != "":
		return classify.FieldList(d.List)
	default:
		return d.Expr.Classifier()
	}
}

// Aggregators compiles the aggregation into crosstab aggregators; the zero
// Aggregators value (raw buckets, count-like totals) when none is declared.
func (s *Spec) Aggregators() crosstab.Aggregators {
	if s.Aggregation == nil {
		return crosstab.Aggregators{}
	}
	switch s.Aggregation.Type {
	case "count":
		return crosstab.Aggregators{Cell: crosstab.Count()}
	case "sum":
		return sumLike(crosstab.SumOf(classify.FieldValue(s.Aggregation.Field)))
	case "avg":
		return sumLike(crosstab.AvgOf(classify.FieldValue(s.Aggregation.Field)))
	case "min":
		return sumLike(crosstab.MinOf(classify.FieldValue(s.Aggregation.Field)))
	case "max":
		return sumLike(crosstab.MaxOf(classify.FieldValue(s.Aggregation.Field)))
	default:
		return crosstab.Aggregators{}
	}
}

// sumLike pairs a numeric cell aggregator with float-summing totals, since
// the default count-like fold zeroes fractional cells.
func sumLike(cell crosstab.Aggregator) crosstab.Aggregators {
	return crosstab.Aggregators{
		Cell:     cell,
		RowTotal: crosstab.TotalSum(),
		ColTotal: crosstab.TotalSum(),
	}
}
