package crosstab

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pivotkit/pivotkit/pkg/pivot"
)

var _ = Describe("Aggregators", func() {
	Context("the default count-like fold", func() {
		It("should count sequence cells by length", func() {
			Expect(defaultFold([]any{[]pivot.Record{1, 2, 3}, []any{4}})).To(Equal(4))
		})

		It("should coerce numeric scalar cells", func() {
			Expect(defaultFold([]any{2, int64(3), float64(4)})).To(Equal(9))
		})

		It("should coerce fractional and non-numeric cells to zero", func() {
			Expect(defaultFold([]any{2.5, "seven", true, nil})).To(Equal(0))
		})

		It("should treat absent cells as zero", func() {
			Expect(defaultFold([]any{nil, 2, nil})).To(Equal(2))
		})
	})

	Context("the bucket aggregators", func() {
		bucket := []pivot.Record{
			map[string]any{"price": 2.0},
			map[string]any{"price": int64(4)},
			map[string]any{"price": "6"},
			map[string]any{"other": 1.0},
		}
		price := func(r pivot.Record) any { return r.(map[string]any)["price"] }

		It("should count records", func() {
			Expect(Count()(bucket)).To(Equal(4))
		})

		It("should sum with permissive coercion", func() {
			// Numeric strings parse, missing fields count as zero.
			Expect(SumOf(price)(bucket)).To(Equal(12.0))
		})

		It("should average over the whole bucket", func() {
			Expect(AvgOf(price)(bucket)).To(Equal(3.0))
		})

		It("should find extrema", func() {
			Expect(MinOf(price)(bucket)).To(Equal(0.0))
			Expect(MaxOf(price)(bucket)).To(Equal(6.0))
		})

		It("should fold totals by float summation", func() {
			Expect(TotalSum()([]any{1.5, nil, 2.5})).To(Equal(4.0))
		})
	})
})
