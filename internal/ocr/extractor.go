package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"

	"github.com/datareveal/docverse/pkg/logger"
)

const rasterDPI = 300

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".bmp":  true,
}

// Extractor converts a source document into raw text. Images go straight
// to OCR; PDFs are rasterized one image per page and extracted page by
// page, joined with page markers.
type Extractor struct {
	primary  Engine // may be nil when initialization failed
	fallback Engine
	logger   logger.Logger
}

// NewExtractor creates an extractor. primary may be nil; every extraction
// then runs on the fallback engine alone.
func NewExtractor(primary, fallback Engine, log logger.Logger) *Extractor {
	return &Extractor{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

// Extract dispatches by file extension and returns the full recognized
// text, or ErrNoTextExtracted when no engine produced usable text.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return e.extractImage(ctx, path)
	case ext == ".pdf":
		return e.extractPDF(ctx, path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// extractImage runs the primary engine and falls back to the secondary
// engine on the same image when the primary yields no non-blank lines.
func (e *Extractor) extractImage(ctx context.Context, path string) (string, error) {
	lines := e.recognize(ctx, e.primary, path)
	if len(lines) == 0 && e.fallback != nil {
		e.logger.Debug("falling back to secondary OCR engine",
			logger.String("path", path),
			logger.String("engine", e.fallback.Name()),
		)
		lines = e.recognize(ctx, e.fallback, path)
	}

	if len(lines) == 0 {
		return "", ErrNoTextExtracted
	}
	return strings.Join(lines, "\n"), nil
}

// recognize runs one engine and keeps only non-blank lines in engine order.
// Engine errors count as empty output; the fallback decision is the caller's.
func (e *Extractor) recognize(ctx context.Context, eng Engine, path string) []string {
	if eng == nil {
		return nil
	}

	raw, err := eng.RecognizeImage(ctx, path)
	if err != nil {
		e.logger.Warn("OCR engine failed",
			logger.String("engine", eng.Name()),
			logger.String("path", path),
			logger.Error(err),
		)
		return nil
	}

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// extractPDF rasterizes each page at a fixed DPI into a scoped temp
// directory, OCRs every page independently, and joins the non-empty pages
// with "--- Page N ---" markers. The temp directory is removed on every
// exit path.
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	// Structural probe before spending OCR time on a broken file.
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	pageCount := r.NumPage()
	f.Close()

	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to rasterize pdf: %w", err)
	}
	defer doc.Close()

	tmpDir, err := os.MkdirTemp("", "docverse-raster-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	e.logger.Info("rasterizing pdf",
		logger.String("path", path),
		logger.Int("pages", pageCount),
	)

	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, rasterDPI)
		if err != nil {
			return "", fmt.Errorf("failed to rasterize page %d: %w", n+1, err)
		}

		pagePath := filepath.Join(tmpDir, fmt.Sprintf("page_%03d.png", n+1))
		if err := imaging.Save(img, pagePath); err != nil {
			return "", fmt.Errorf("failed to save page image: %w", err)
		}

		text, err := e.extractImage(ctx, pagePath)
		if err != nil {
			// Page with no recognizable text; keep going.
			continue
		}
		pages = append(pages, fmt.Sprintf("--- Page %d ---\n%s", n+1, text))
	}

	if len(pages) == 0 {
		return "", ErrNoTextExtracted
	}
	return strings.Join(pages, "\n\n"), nil
}
