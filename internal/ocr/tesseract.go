package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/datareveal/docverse/pkg/logger"
)

// TesseractEngine recognizes text through a local Tesseract installation.
type TesseractEngine struct {
	language string
	logger   logger.Logger
}

// NewTesseractEngine creates the Tesseract engine.
func NewTesseractEngine(language string, log logger.Logger) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{
		language: language,
		logger:   log,
	}
}

func (e *TesseractEngine) Name() string {
	return "tesseract"
}

// RecognizeImage runs Tesseract over the image. A fresh client per call;
// gosseract clients are not safe to reuse across images.
func (e *TesseractEngine) RecognizeImage(ctx context.Context, path string) ([]string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to get text: %w", err)
	}

	return strings.Split(text, "\n"), nil
}
