package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ensureParentDir creates the directory that will hold the database file
// named by dsn. In-memory and URI DSNs are left alone.
func ensureParentDir(dsn string) error {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
