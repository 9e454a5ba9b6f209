package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages covers Indonesian receipts with English fallback.
var DefaultLanguages = []string{"ind", "eng"}

// Tesseract recognizes text in receipt images using a local tesseract
// installation. It implements service.TextRecognizer.
type Tesseract struct {
	languages []string
}

// NewTesseract creates a tesseract-backed recognizer. An empty language
// list falls back to DefaultLanguages.
func NewTesseract(languages []string) *Tesseract {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Tesseract{languages: languages}
}

// Recognize returns the raw recognized text for the image at path.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set OCR languages: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}
	return text, nil
}
