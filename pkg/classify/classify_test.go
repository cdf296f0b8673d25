package classify

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/yaml"

	"github.com/pivotkit/pivotkit/pkg/pivot"
)

func TestClassify(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Classify")
}

var _ = Describe("Field", func() {
	doc := Document{
		"size": "big",
		"spec": map[string]any{"color": "brown"},
		"tags": []any{"new", "sale"},
	}

	It("should read top-level fields", func() {
		v, err := Field("size")(doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("big"))
	})

	It("should read nested fields through a JSONPath", func() {
		v, err := Field("$.spec.color")(doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("brown"))
	})

	It("should classify missing fields to nil", func() {
		v, err := Field("shape")(doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeNil())
	})

	It("should report invalid paths", func() {
		_, err := Field("$.[")(doc)
		Expect(err).To(HaveOccurred())
	})

	It("should drive a pivot pass", func() {
		res, err := pivot.Pivot([]pivot.Record{doc}, Field("size"), pivot.WithName("size"))
		Expect(err).NotTo(HaveOccurred())
		b, ok := res.Bucket(pivot.Named(pivot.Entry{Name: "size", Value: "big"}))
		Expect(ok).To(BeTrue())
		Expect(b).To(HaveLen(1))
	})
})

var _ = Describe("FieldList", func() {
	It("should explode sequence-valued fields", func() {
		doc := Document{"tags": []any{"new", "sale"}}
		res, err := pivot.Pivot([]pivot.Record{doc}, FieldList("tags"))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Len()).To(Equal(2))
	})

	It("should classify missing fields to the None key", func() {
		doc := Document{"size": "big"}
		res, err := pivot.Pivot([]pivot.Record{doc}, FieldList("tags"))
		Expect(err).NotTo(HaveOccurred())
		_, ok := res.Bucket(pivot.Scalar(pivot.None))
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("Expr", func() {
	It("should unmarshal from YAML and compare numerically", func() {
		var e Expr
		err := yaml.Unmarshal([]byte(`{field: price, op: lt, value: 5}`), &e)
		Expect(err).NotTo(HaveOccurred())

		c := e.Classifier()
		v, err := c(Document{"price": int64(3)})
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(true))

		v, err = c(Document{"price": 7.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(false))
	})

	It("should compare across numeric types", func() {
		c := Expr{Field: "n", Op: "eq", Value: float64(5)}.Classifier()
		v, err := c(Document{"n": int64(5)})
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(true))
	})

	It("should fall back to string comparison", func() {
		c := Expr{Field: "color", Op: "gt", Value: "brown"}.Classifier()
		v, err := c(Document{"color": "green"})
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(true))
	})

	It("should reject unknown operators", func() {
		c := Expr{Field: "n", Op: "between", Value: 1}.Classifier()
		_, err := c(Document{"n": 1})
		Expect(err).To(HaveOccurred())
	})
})
