package storage

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Open picks a backend by driver name. For sqlite, path is the database
// file; for file, path is the data directory.
func Open(driver, path string) (KV, error) {
	switch driver {
	case DriverSQLite, "":
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := afero.NewOsFs().MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		return OpenSQLite(path)
	case DriverFile:
		return NewFileRepository(afero.NewOsFs(), path)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
