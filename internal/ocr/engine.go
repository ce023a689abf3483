// Package ocr extracts raw text from scanned documents. A primary engine
// is tried first and a secondary engine covers for it when it yields
// nothing; callers only ever see final text or failure.
package ocr

import (
	"context"
	"errors"
)

// ErrNoTextExtracted means no engine produced usable text for the document.
var ErrNoTextExtracted = errors.New("no text extracted")

// ErrUnsupportedFormat means the file extension is not a processable type.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Engine recognizes text in a single image file and returns the recognized
// lines in engine-reported order.
type Engine interface {
	Name() string
	RecognizeImage(ctx context.Context, path string) ([]string, error)
}
