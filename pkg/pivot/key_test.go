package pivot

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Key", func() {
	ginkgo.Context("merging", func() {
		ginkgo.It("should pair two scalars into a tuple", func() {
			k := mergeKeys(Scalar(true), Scalar(false), 2)
			Expect(k).To(Equal(Tuple(true, false)))
		})

		ginkgo.It("should flatten a tuple and a scalar into one level", func() {
			k := mergeKeys(Tuple(true, false), Scalar(1), 3)
			Expect(k).To(Equal(Tuple(true, false, 1)))
		})

		ginkgo.It("should merge two named keys preserving introduction order", func() {
			k := mergeKeys(
				Named(Entry{Name: "size", Value: "big"}),
				Named(Entry{Name: "color", Value: "brown"}), 2)
			Expect(k.Entries()).To(Equal([]Entry{
				{Name: "size", Value: "big"},
				{Name: "color", Value: "brown"},
			}))
		})

		ginkgo.It("should overwrite an existing name in place", func() {
			old := Named(Entry{Name: "a", Value: 1}, Entry{Name: "b", Value: 2})
			k := mergeKeys(old, Named(Entry{Name: "a", Value: 3}), 3)
			Expect(k.Entries()).To(Equal([]Entry{
				{Name: "a", Value: 3},
				{Name: "b", Value: 2},
			}))
		})

		ginkgo.It("should lift a scalar under its positional label when mixed with a named key", func() {
			k := mergeKeys(Scalar(true), Named(Entry{Name: "color", Value: "brown"}), 2)
			Expect(k.Kind()).To(Equal(NamedKey))
			Expect(k.Entries()).To(Equal([]Entry{
				{Name: "dim1", Value: true},
				{Name: "color", Value: "brown"},
			}))
		})

		ginkgo.It("should lift every tuple element when mixed with a named key", func() {
			k := mergeKeys(Tuple(true, false), Named(Entry{Name: "c", Value: 1}), 3)
			Expect(k.Entries()).To(Equal([]Entry{
				{Name: "dim1", Value: true},
				{Name: "dim2", Value: false},
				{Name: "c", Value: 1},
			}))
		})
	})

	ginkgo.Context("identity", func() {
		ginkgo.It("should distinguish key shapes with equal contents", func() {
			Expect(Scalar("x").canonical()).NotTo(Equal(Tuple("x").canonical()))
			Expect(Tuple("x").canonical()).NotTo(Equal(Named(Entry{Name: "x", Value: "x"}).canonical()))
		})

		ginkgo.It("should not depend on value identity", func() {
			a := Named(Entry{Name: "n", Value: []any{1, 2}})
			b := Named(Entry{Name: "n", Value: []any{1, 2}})
			Expect(a.canonical()).To(Equal(b.canonical()))
		})
	})

	ginkgo.Context("rendering", func() {
		ginkgo.It("should render each shape of key", func() {
			Expect(Scalar(true).String()).To(Equal("true"))
			Expect(Scalar(None).String()).To(Equal("none"))
			Expect(Scalar(nil).String()).To(Equal("null"))
			Expect(Tuple(true, 1).String()).To(Equal("[true, 1]"))
			Expect(Named(
				Entry{Name: "size", Value: "big"},
				Entry{Name: "n", Value: 2},
			).String()).To(Equal("{size:big, n:2}"))
		})
	})

	ginkgo.Context("lookup", func() {
		ginkgo.It("should find entries by dimension name", func() {
			k := Named(Entry{Name: "size", Value: "big"})
			v, ok := k.Get("size")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("big"))
			_, ok = k.Get("color")
			Expect(ok).To(BeFalse())
		})
	})
})
