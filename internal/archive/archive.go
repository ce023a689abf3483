// Package archive files processed source documents into entity folders,
// either on the local filesystem or in a MinIO bucket.
package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/datareveal/docverse/config"
	"github.com/datareveal/docverse/pkg/logger"
)

// Archiver moves a source file into the folder for its entity and returns
// the destination path or object key.
type Archiver interface {
	Archive(ctx context.Context, srcPath, folderKey, filename string) (string, error)
}

// NewArchiver selects the backend from configuration.
func NewArchiver(cfg *config.ArchiveConfig, log logger.Logger) (Archiver, error) {
	switch cfg.Backend {
	case "filesystem":
		return NewFilesystemArchiver(cfg.BasePath, log), nil
	case "minio":
		return NewMinIOArchiver(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported archive backend: %s", cfg.Backend)
	}
}

var unsafeChars = regexp.MustCompile(`[^\w\-]`)
var underscoreRuns = regexp.MustCompile(`_+`)

// archiveName builds a collision-free destination name: the sanitized base
// name, an upload timestamp, and the original extension.
func archiveName(filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	base = unsafeChars.ReplaceAllString(base, "_")
	base = underscoreRuns.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "document"
	}
	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102_150405"), ext)
}
