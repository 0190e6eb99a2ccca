package scanning

import (
	"errors"
	"fmt"
)

// ErrLowQuality means OCR produced too little text to interpret; the user
// should retake the photo.
var ErrLowQuality = errors.New("receipt text is unreadable, please retake the photo")

// EngineError reports a failure of the OCR engine itself
type EngineError struct {
	Mode LanguageMode
	Err  error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("ocr engine failed in %s mode: %v", e.Mode, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
