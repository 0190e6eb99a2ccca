package scanning

import (
	"regexp"
	"strings"
)

var codeFence = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")

// cleanTranscript normalizes engine output into newline separated lines.
// Vision models like to wrap answers in code fences and tesseract ends
// pages with a form feed.
func cleanTranscript(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	text = codeFence.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// transcriptionPrompt asks a vision model for a verbatim transcript
func transcriptionPrompt(mode LanguageMode) string {
	return `You are an OCR engine reading a photo of a shop receipt. ` + languageHint(mode) + `

Transcribe every line of printed text exactly as it appears, top to bottom, one receipt line per output line.
- Keep item names, quantities and prices on the same line as printed
- Keep numbers, currency symbols and punctuation exactly as printed
- Do not translate, summarize, correct or reorder anything
- Output plain text only, with no commentary and no markdown`
}

func languageHint(mode LanguageMode) string {
	switch mode {
	case ModeHebrewEnglish:
		return "The receipt is printed in Hebrew and English; Hebrew lines read right to left."
	case ModeEnglish:
		return "Read the receipt as English text; copy any other script as best you can."
	default:
		return "The receipt language is " + string(mode) + "."
	}
}
