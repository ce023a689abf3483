package config

import (
	"sync"
)

var (
	serverOnce   sync.Once
	serverConfig *ServerConfig
)

type ServerConfig struct {
	Addr          string
	LogLevel      string
	TempUploadDir string
}

func GetServerConfig() *ServerConfig {
	serverOnce.Do(func() {
		loadEnv()

		serverConfig = &ServerConfig{
			Addr:          getEnv("DOCVERSE_ADDR", ":8080"),
			LogLevel:      getEnv("DOCVERSE_LOG_LEVEL", "info"),
			TempUploadDir: getEnv("DOCVERSE_TEMP_DIR", "temp_uploads"),
		}
	})
	return serverConfig
}
