package scanning

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("toPNG", func() {
	var sample image.Image

	BeforeEach(func() {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		img.Set(2, 2, color.RGBA{R: 255, A: 255})
		sample = img
	})

	It("should pass PNG data through untouched", func() {
		data := testPNG()
		out, err := toPNG(data, "image/png")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(data))
	})

	It("should convert JPEG to PNG", func() {
		var buf bytes.Buffer
		Expect(jpeg.Encode(&buf, sample, nil)).To(Succeed())

		out, err := toPNG(buf.Bytes(), "image/jpeg")
		Expect(err).NotTo(HaveOccurred())
		Expect(isPNG(out)).To(BeTrue())
	})

	It("should convert GIF to PNG even with a missing content type", func() {
		var buf bytes.Buffer
		Expect(gif.Encode(&buf, sample, nil)).To(Succeed())

		out, err := toPNG(buf.Bytes(), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(isPNG(out)).To(BeTrue())
	})

	It("should re-encode PNG data sent with a parameterized content type", func() {
		out, err := toPNG(testPNG(), "Image/PNG; charset=binary")
		Expect(err).NotTo(HaveOccurred())
		Expect(isPNG(out)).To(BeTrue())
	})

	It("should reject unknown formats", func() {
		_, err := toPNG([]byte("hello world"), "text/plain")
		Expect(err).To(MatchError(ErrUnsupportedFormat))
	})

	It("should reject empty uploads", func() {
		_, err := toPNG(nil, "image/png")
		Expect(err).To(MatchError(ErrUnsupportedFormat))
	})

	It("should fail on a corrupt PDF", func() {
		_, err := toPNG([]byte("%PDF-1.4 garbage"), "application/pdf")
		Expect(err).To(MatchError(ContainSubstring("PDF")))
	})
})

var _ = Describe("isHEIC", func() {
	DescribeTable("detecting HEIC uploads",
		func(data []byte, mimeType string, expected bool) {
			Expect(isHEIC(data, mimeType)).To(Equal(expected))
		},
		Entry("heic brand", []byte("\x00\x00\x00\x18ftypheic"), "", true),
		Entry("mif1 brand", []byte("\x00\x00\x00\x18ftypmif1"), "", true),
		Entry("heif content type", []byte("short"), "image/heif", true),
		Entry("jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF"), "image/jpeg", false),
		Entry("other ftyp brand", []byte("\x00\x00\x00\x18ftypisom"), "video/mp4", false),
	)
})
