package core

import (
	"fmt"
	"os"

	"archcore/internal/infra/persistence/memory"
	"archcore/internal/infra/persistence/postgres"
	"archcore/internal/infra/persistence/sqlite"
	"archcore/pkg/domain"
)

// StorageDriver selects the cache backend.
type StorageDriver string

// Supported cache drivers.
const (
	StorageMemory   StorageDriver = "memory"
	StorageSQLite   StorageDriver = "sqlite"
	StoragePostgres StorageDriver = "postgres"
)

// OpenCacheStore opens the cache backend selected by
// ARCHCORE_STORAGE_DRIVER (memory, sqlite, postgres), defaulting to
// sqlite. The sqlite path and postgres DSN come from
// ARCHCORE_SQLITE_PATH and ARCHCORE_POSTGRES_DSN.
func OpenCacheStore() (domain.CacheStore, error) {
	driver := os.Getenv("ARCHCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("ARCHCORE_SQLITE_PATH"))
	case StoragePostgres:
		return postgres.NewStore(os.Getenv("ARCHCORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
