package scanning

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TesseractConfig locates the tesseract binary and its language data
type TesseractConfig struct {
	Binary      string
	TessdataDir string
	// PSM is the page segmentation mode; 0 keeps tesseract's default
	PSM int
}

// Tesseract implements Recognizer with the tesseract command line tool
type Tesseract struct {
	cfg    TesseractConfig
	runner Runner
}

// NewTesseract creates a Tesseract recognizer that shells out to the binary
func NewTesseract(cfg TesseractConfig) *Tesseract {
	return NewTesseractWithRunner(cfg, execRunner{})
}

// NewTesseractWithRunner creates a Tesseract recognizer with a custom runner for testing
func NewTesseractWithRunner(cfg TesseractConfig, runner Runner) *Tesseract {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	return &Tesseract{cfg: cfg, runner: runner}
}

// Recognize writes the image to a temp file and runs
// `tesseract <file> stdout -l <mode>` over it
func (t *Tesseract) Recognize(ctx context.Context, image []byte, mode LanguageMode) (string, error) {
	f, err := os.CreateTemp("", "receipt-*.png")
	if err != nil {
		return "", fmt.Errorf("creating temp image: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(image); err != nil {
		f.Close()
		return "", fmt.Errorf("writing temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp image: %w", err)
	}

	stdout, stderr, err := t.runner.Run(ctx, t.cfg.Binary, t.args(f.Name(), mode)...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("running tesseract: %w: %s", err, msg)
		}
		return "", fmt.Errorf("running tesseract: %w", err)
	}
	return cleanTranscript(string(stdout)), nil
}

func (t *Tesseract) args(path string, mode LanguageMode) []string {
	args := []string{path, "stdout", "-l", string(mode)}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	return args
}

// Close is a no-op; every call runs its own process
func (t *Tesseract) Close() error {
	return nil
}
