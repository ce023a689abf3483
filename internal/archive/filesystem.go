package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/datareveal/docverse/pkg/logger"
)

// FilesystemArchiver copies documents into per-entity folders under a base
// directory.
type FilesystemArchiver struct {
	basePath string
	logger   logger.Logger
}

func NewFilesystemArchiver(basePath string, log logger.Logger) *FilesystemArchiver {
	return &FilesystemArchiver{basePath: basePath, logger: log}
}

func (a *FilesystemArchiver) Archive(ctx context.Context, srcPath, folderKey, filename string) (string, error) {
	dir := filepath.Join(a.basePath, folderKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive folder: %w", err)
	}

	dst := filepath.Join(dir, archiveName(filename, time.Now()))
	if err := copyFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("failed to archive document: %w", err)
	}

	a.logger.Info("document archived",
		logger.String("filename", filename),
		logger.String("path", dst))
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
