package archive

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/datareveal/docverse/config"
	"github.com/datareveal/docverse/pkg/logger"
)

// MinIOArchiver uploads documents into a bucket, one prefix per entity
// folder.
type MinIOArchiver struct {
	client     *minio.Client
	bucketName string
	logger     logger.Logger
}

func NewMinIOArchiver(cfg *config.ArchiveConfig, log logger.Logger) (*MinIOArchiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOArchiver{
		client:     client,
		bucketName: cfg.BucketName,
		logger:     log,
	}, nil
}

func (a *MinIOArchiver) Archive(ctx context.Context, srcPath, folderKey, filename string) (string, error) {
	key := path.Join(folderKey, archiveName(filename, time.Now()))
	_, err := a.client.FPutObject(ctx, a.bucketName, key, srcPath, minio.PutObjectOptions{})
	if err != nil {
		a.logger.Error("failed to upload document to MinIO",
			logger.String("bucket", a.bucketName),
			logger.String("key", key),
			logger.Error(err),
		)
		return "", fmt.Errorf("failed to archive document: %w", err)
	}

	a.logger.Info("document archived",
		logger.String("filename", filename),
		logger.String("key", key))
	return key, nil
}
