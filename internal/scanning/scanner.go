package scanning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/zombor/receipt-reader/internal/parsing"
)

// LanguageMode selects the scripts an OCR engine should expect
type LanguageMode string

const (
	// ModeHebrewEnglish is the combined two-script mode tried first
	ModeHebrewEnglish LanguageMode = "heb+eng"
	// ModeEnglish is the single-script mode used as a fallback
	ModeEnglish LanguageMode = "eng"
)

// DefaultMinTextLength is the shortest transcript worth parsing
const DefaultMinTextLength = 10

// Recognizer is an OCR engine. Implementations receive PNG image data.
type Recognizer interface {
	// Recognize transcribes the text in the image using the given language mode
	Recognize(ctx context.Context, image []byte, mode LanguageMode) (string, error)
	// Close releases the engine's resources
	Close() error
}

// Scanner defines the interface for receipt scanning operations
type Scanner interface {
	// ScanReceipt reads a receipt image or PDF and interprets its contents
	ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*parsing.ReceiptData, error)
	// Close closes the scanner and releases resources
	Close() error
}

// Options tunes the language-mode policy and the quality gate
type Options struct {
	Primary       LanguageMode
	Fallback      LanguageMode
	MinTextLength int
}

// OCRScanner runs a Recognizer with a primary and a fallback language mode
// and hands the transcript to the parser.
type OCRScanner struct {
	recognizer Recognizer
	parser     *parsing.Parser
	opts       Options
}

// NewOCRScanner creates a Scanner. Zero-valued options take their defaults.
func NewOCRScanner(recognizer Recognizer, parser *parsing.Parser, opts Options) *OCRScanner {
	if opts.Primary == "" {
		opts.Primary = ModeHebrewEnglish
	}
	if opts.Fallback == "" {
		opts.Fallback = ModeEnglish
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = DefaultMinTextLength
	}
	if parser == nil {
		parser = parsing.NewParser(nil)
	}
	return &OCRScanner{recognizer: recognizer, parser: parser, opts: opts}
}

// ScanReceipt normalizes the image, transcribes it and parses the result.
// It returns ErrLowQuality when neither mode produced usable text and an
// *EngineError when the fallback mode failed outright.
func (s *OCRScanner) ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*parsing.ReceiptData, error) {
	pngData, err := toPNG(imageData, contentType)
	if err != nil {
		return nil, err
	}

	text, err := s.transcribe(ctx, pngData)
	if err != nil {
		return nil, err
	}

	return s.parser.Parse(text), nil
}

func (s *OCRScanner) transcribe(ctx context.Context, image []byte) (string, error) {
	text, err := s.recognizer.Recognize(ctx, image, s.opts.Primary)
	switch {
	case err == nil && s.usable(text):
		return text, nil
	case err != nil && ctx.Err() != nil:
		return "", fmt.Errorf("recognizing receipt: %w", ctx.Err())
	case err != nil:
		slog.Warn("Primary OCR mode failed, retrying with fallback", "primary", s.opts.Primary, "fallback", s.opts.Fallback, "error", err)
	default:
		slog.Warn("Primary OCR mode produced too little text, retrying with fallback", "primary", s.opts.Primary, "fallback", s.opts.Fallback, "length", textLength(text))
	}

	text, err = s.recognizer.Recognize(ctx, image, s.opts.Fallback)
	if err != nil {
		return "", &EngineError{Mode: s.opts.Fallback, Err: err}
	}
	if !s.usable(text) {
		return "", ErrLowQuality
	}
	return text, nil
}

func (s *OCRScanner) usable(text string) bool {
	return textLength(text) >= s.opts.MinTextLength
}

func textLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

// Close closes the underlying recognizer
func (s *OCRScanner) Close() error {
	return s.recognizer.Close()
}
