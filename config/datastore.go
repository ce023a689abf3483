package config

import (
	"sync"
)

var (
	datastoreOnce   sync.Once
	datastoreConfig *DatastoreConfig
)

// DatastoreConfig controls where the document corpus lives: a SQLite
// database for records and a chromem directory for the vector index.
type DatastoreConfig struct {
	DataDir    string
	Collection string
}

func GetDatastoreConfig() *DatastoreConfig {
	datastoreOnce.Do(func() {
		loadEnv()

		datastoreConfig = &DatastoreConfig{
			DataDir:    getEnv("DOCVERSE_DATA_DIR", "data"),
			Collection: getEnv("DOCVERSE_COLLECTION", "documents"),
		}
	})
	return datastoreConfig
}
