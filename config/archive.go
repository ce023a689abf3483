package config

import (
	"os"
	"sync"
)

var (
	archiveOnce   sync.Once
	archiveConfig *ArchiveConfig
)

// ArchiveConfig controls where processed originals are archived.
// Backend is "filesystem" (default) or "minio".
type ArchiveConfig struct {
	Backend    string
	BasePath   string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	UseSSL     bool
	Region     string
	BucketName string
}

func GetArchiveConfig() *ArchiveConfig {
	archiveOnce.Do(func() {
		loadEnv()

		archiveConfig = &ArchiveConfig{
			Backend:    getEnv("ARCHIVE_BACKEND", "filesystem"),
			BasePath:   getEnv("ARCHIVE_BASE_PATH", "documents"),
			AccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:  os.Getenv("MINIO_SECRET_KEY"),
			Endpoint:   os.Getenv("MINIO_ENDPOINT"),
			UseSSL:     getEnvBool("MINIO_USE_SSL", false),
			Region:     os.Getenv("MINIO_REGION"),
			BucketName: getEnv("MINIO_BUCKET_NAME", "docverse-archive"),
		}
	})
	return archiveConfig
}
