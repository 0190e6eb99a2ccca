package scanning

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cleanTranscript", func() {
	DescribeTable("normalizing engine output",
		func(raw, expected string) {
			Expect(cleanTranscript(raw)).To(Equal(expected))
		},
		Entry("plain lines", "a\nb", "a\nb"),
		Entry("windows line endings", "a\r\nb\r\n", "a\nb"),
		Entry("form feed page breaks", "a\n\fb", "a\nb"),
		Entry("blank lines and trailing spaces", "a   \n\n \t\nb\t", "a\nb"),
		Entry("markdown fences", "```text\nחלב 6.90\n```", "חלב 6.90"),
		Entry("leading indentation kept", "  indented", "  indented"),
		Entry("empty input", "", ""),
	)
})

var _ = Describe("transcriptionPrompt", func() {
	It("should mention both scripts in the combined mode", func() {
		Expect(transcriptionPrompt(ModeHebrewEnglish)).To(ContainSubstring("Hebrew and English"))
	})

	It("should mention English in the fallback mode", func() {
		Expect(transcriptionPrompt(ModeEnglish)).To(ContainSubstring("as English text"))
	})

	It("should name unknown modes verbatim", func() {
		Expect(transcriptionPrompt("ara")).To(ContainSubstring("ara"))
	})
})
