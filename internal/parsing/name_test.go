package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractName", func() {
	var (
		line  string
		name  string
		found bool
	)

	JustBeforeEach(func() {
		name, found = ExtractName(line)
	})

	When("the line has a trailing price", func() {
		BeforeEach(func() {
			line = "חלב תנובה 1 ליטר    6.90"
		})

		It("should keep the words", func() {
			Expect(found).To(BeTrue())
			Expect(name).To(Equal("חלב תנובה ליטר"))
		})
	})

	When("the line has a multiplier and a price", func() {
		BeforeEach(func() {
			line = "2x קולה 1.5 ליטר  9.80"
		})

		It("should strip both", func() {
			Expect(found).To(BeTrue())
			Expect(name).To(Equal("קולה ליטר"))
		})
	})

	When("the name is wrapped in symbols", func() {
		BeforeEach(func() {
			line = "***במבה נוגט*** 5.90"
		})

		It("should trim the edges", func() {
			Expect(name).To(Equal("במבה נוגט"))
		})
	})

	When("the line has no price or quantity", func() {
		BeforeEach(func() {
			line = "לחם   אחיד   פרוס"
		})

		It("should only collapse whitespace", func() {
			Expect(found).To(BeTrue())
			Expect(name).To(Equal("לחם אחיד פרוס"))
		})
	})

	When("only a price is on the line", func() {
		BeforeEach(func() {
			line = "12.90"
		})

		It("should reject the line", func() {
			Expect(found).To(BeFalse())
			Expect(name).To(BeEmpty())
		})
	})

	When("the residue is a single character", func() {
		BeforeEach(func() {
			line = "א 6.90"
		})

		It("should reject the line", func() {
			Expect(found).To(BeFalse())
		})
	})

	When("the residue is numbers only", func() {
		BeforeEach(func() {
			line = "1234 56"
		})

		It("should reject the line", func() {
			Expect(found).To(BeFalse())
		})
	})

	When("the name is in English", func() {
		BeforeEach(func() {
			line = "Coca Cola Zero 1.5L $7.90"
		})

		It("should keep the letters and inner digits", func() {
			Expect(found).To(BeTrue())
			Expect(name).To(Equal("Coca Cola Zero 1.5L"))
		})
	})
})
