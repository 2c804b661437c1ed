// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
)

const dataDirName = "data"

// DataDirFor returns the data directory for an executable at exe: two levels
// up from the file, then data/. A binary at <repo>/bin/extract-actions-data
// maps to <repo>/data.
func DataDirFor(exe string) string {
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), dataDirName)
}

// DefaultDataDir locates the running executable, following symlinks, and
// returns DataDirFor its path.
func DefaultDataDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return DataDirFor(exe), nil
}
