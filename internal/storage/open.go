package storage

import (
	"fmt"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

// Driver names a KeyValueStore backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverBolt   Driver = "bolt"
	DriverSQLite Driver = "sqlite"
)

// Open selects a KeyValueStore implementation. path is ignored by the
// memory driver.
func Open(driver Driver, path string, log *logger.Logger) (domain.KeyValueStore, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryKV(log), nil
	case DriverBolt, "":
		return OpenBolt(path, log)
	case DriverSQLite:
		return OpenSQLite(path, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
