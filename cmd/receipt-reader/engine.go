package main

import (
	"context"
	"fmt"

	"github.com/zombor/receipt-reader/internal/scanning"
)

type engineConfig struct {
	Engine      string
	Tesseract   scanning.TesseractConfig
	GeminiKey   string
	GeminiModel string
	OllamaURL   string
	OllamaModel string
	DocumentAI  scanning.DocumentAIConfig
}

// newRecognizer builds the OCR engine selected on the command line
func newRecognizer(ctx context.Context, cfg engineConfig) (scanning.Recognizer, error) {
	switch cfg.Engine {
	case "tesseract":
		return scanning.NewTesseract(cfg.Tesseract), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini api key is required, set --gemini-key or GEMINI_API_KEY")
		}
		gemini, err := scanning.NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	case "ollama":
		return scanning.NewOllama(cfg.OllamaURL, cfg.OllamaModel), nil
	case "documentai":
		docai, err := scanning.NewDocumentAI(ctx, cfg.DocumentAI)
		if err != nil {
			return nil, err
		}
		return docai, nil
	default:
		return nil, fmt.Errorf("unknown ocr engine %q, valid engines are tesseract, gemini, ollama and documentai", cfg.Engine)
	}
}
