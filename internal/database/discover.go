package database

import (
	"os"
	"path/filepath"
	"strings"
)

// DBSuffix is the filename suffix that marks an index database.
const DBSuffix = ".findex.db"

// Discover collects index database files from the given paths. A file path
// is included when its name ends with DBSuffix; a directory path is scanned
// one level deep (subdirectories are not descended into). Nonexistent paths
// are skipped silently.
func Discover(paths []string) []string {
	var found []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if strings.HasSuffix(filepath.Base(p), DBSuffix) {
				found = append(found, p)
			}
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasSuffix(entry.Name(), DBSuffix) {
				found = append(found, filepath.Join(p, entry.Name()))
			}
		}
	}

	return found
}
