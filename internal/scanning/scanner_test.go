package scanning

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/receipt-reader/internal/parsing"
)

type recognizeCall struct {
	image []byte
	mode  LanguageMode
}

type recognizeResult struct {
	text string
	err  error
}

// mockRecognizer returns one scripted result per language mode
type mockRecognizer struct {
	results map[LanguageMode]recognizeResult
	calls   []recognizeCall
	closed  bool
}

func (m *mockRecognizer) Recognize(ctx context.Context, image []byte, mode LanguageMode) (string, error) {
	m.calls = append(m.calls, recognizeCall{image: image, mode: mode})
	r := m.results[mode]
	return r.text, r.err
}

func (m *mockRecognizer) Close() error {
	m.closed = true
	return nil
}

func (m *mockRecognizer) modes() []LanguageMode {
	modes := make([]LanguageMode, len(m.calls))
	for i, c := range m.calls {
		modes[i] = c.mode
	}
	return modes
}

const readableReceipt = "שופרסל דיל\nקבלה\nחלב תנובה 6.90\nבמבה 5.90\nסה\"כ 12.80"

var _ = Describe("OCRScanner", func() {
	var (
		recognizer  *mockRecognizer
		scanner     *OCRScanner
		ctx         context.Context
		imageData   []byte
		contentType string
		data        *parsing.ReceiptData
		err         error
	)

	BeforeEach(func() {
		recognizer = &mockRecognizer{results: map[LanguageMode]recognizeResult{}}
		scanner = NewOCRScanner(recognizer, parsing.NewParser(nil), Options{})
		ctx = context.Background()
		imageData = testPNG()
		contentType = "image/png"
	})

	JustBeforeEach(func() {
		data, err = scanner.ScanReceipt(ctx, imageData, contentType)
	})

	When("the primary mode reads the receipt", func() {
		BeforeEach(func() {
			recognizer.results[ModeHebrewEnglish] = recognizeResult{text: readableReceipt}
		})

		It("should parse the transcript", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.StoreName).To(Equal("Shufersal"))
			Expect(data.TotalAmount).To(Equal(12.80))
			Expect(data.Items).To(HaveLen(2))
		})

		It("should not try the fallback mode", func() {
			Expect(recognizer.modes()).To(Equal([]LanguageMode{ModeHebrewEnglish}))
		})

		It("should pass the PNG through unchanged", func() {
			Expect(recognizer.calls[0].image).To(Equal(imageData))
		})
	})

	When("the primary mode fails", func() {
		BeforeEach(func() {
			recognizer.results[ModeHebrewEnglish] = recognizeResult{err: errors.New("missing heb.traineddata")}
			recognizer.results[ModeEnglish] = recognizeResult{text: readableReceipt}
		})

		It("should retry once with the fallback mode", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(recognizer.modes()).To(Equal([]LanguageMode{ModeHebrewEnglish, ModeEnglish}))
			Expect(data.Items).To(HaveLen(2))
		})
	})

	When("the primary mode returns too little text", func() {
		BeforeEach(func() {
			recognizer.results[ModeHebrewEnglish] = recognizeResult{text: "  ~ 1 "}
			recognizer.results[ModeEnglish] = recognizeResult{text: readableReceipt}
		})

		It("should use the fallback transcript", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(recognizer.modes()).To(Equal([]LanguageMode{ModeHebrewEnglish, ModeEnglish}))
			Expect(data.StoreName).To(Equal("Shufersal"))
		})
	})

	When("both modes return too little text", func() {
		BeforeEach(func() {
			recognizer.results[ModeHebrewEnglish] = recognizeResult{text: "abc"}
			recognizer.results[ModeEnglish] = recognizeResult{text: "123456789"}
		})

		It("should report low quality", func() {
			Expect(err).To(MatchError(ErrLowQuality))
			Expect(data).To(BeNil())
		})
	})

	When("the fallback mode fails", func() {
		var cause error

		BeforeEach(func() {
			cause = errors.New("engine crashed")
			recognizer.results[ModeHebrewEnglish] = recognizeResult{err: errors.New("first failure")}
			recognizer.results[ModeEnglish] = recognizeResult{err: cause}
		})

		It("should return an engine error wrapping the cause", func() {
			var engineErr *EngineError
			Expect(errors.As(err, &engineErr)).To(BeTrue())
			Expect(engineErr.Mode).To(Equal(ModeEnglish))
			Expect(err).To(MatchError(cause))
		})

		It("should not retry again", func() {
			Expect(recognizer.calls).To(HaveLen(2))
		})
	})

	When("the context is cancelled during the primary call", func() {
		BeforeEach(func() {
			var cancel context.CancelFunc
			ctx, cancel = context.WithCancel(context.Background())
			cancel()
			recognizer.results[ModeHebrewEnglish] = recognizeResult{err: context.Canceled}
		})

		It("should stop without a fallback", func() {
			Expect(err).To(MatchError(context.Canceled))
			Expect(recognizer.calls).To(HaveLen(1))
		})
	})

	When("the upload is not an image", func() {
		BeforeEach(func() {
			imageData = []byte("definitely not an image")
			contentType = "text/plain"
		})

		It("should reject it before calling the engine", func() {
			Expect(err).To(MatchError(ErrUnsupportedFormat))
			Expect(recognizer.calls).To(BeEmpty())
		})
	})

	When("the receipt has no recognizable items", func() {
		BeforeEach(func() {
			recognizer.results[ModeHebrewEnglish] = recognizeResult{text: "קבלה\n-----------\n12/03/2024"}
		})

		It("should return an empty result rather than an error", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Items).To(BeEmpty())
			Expect(data.StoreName).To(Equal(parsing.UnrecognizedStore))
			Expect(data.TotalAmount).To(BeZero())
		})
	})

	Describe("custom options", func() {
		BeforeEach(func() {
			scanner = NewOCRScanner(recognizer, nil, Options{Primary: "heb", Fallback: "eng", MinTextLength: 3})
			recognizer.results["heb"] = recognizeResult{text: "abc"}
		})

		It("should use the configured modes and threshold", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(recognizer.modes()).To(Equal([]LanguageMode{"heb"}))
		})
	})

	Describe("Close", func() {
		It("should close the recognizer", func() {
			Expect(scanner.Close()).To(Succeed())
			Expect(recognizer.closed).To(BeTrue())
		})
	})
})
