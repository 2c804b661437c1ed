// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package datafile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// Result is the outcome of inspecting one data file.
type Result struct {
	// Name is the file name relative to the data directory.
	Name string

	// Path is the full path that was checked.
	Path string

	// Exists reports whether the file was found.
	Exists bool

	// Size is the length of the re-serialized content. Zero when absent.
	Size int
}

// Inspect checks dir/name. A file that is not there is reported with
// Exists false and no error. A file that is there must hold exactly one
// valid JSON value; any read or decode failure is returned.
func Inspect(dir, name string) (Result, error) {
	path := filepath.Join(dir, name)
	res := Result{Name: name, Path: path}

	if _, err := os.Stat(path); err != nil {
		if isAbsent(err) {
			return res, nil
		}
		return res, fmt.Errorf("checking %s: %w", path, err)
	}
	res.Exists = true

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}

	v, err := Decode(data)
	if err != nil {
		return res, fmt.Errorf("parsing %s: %w", path, err)
	}

	size, err := SerializedSize(v)
	if err != nil {
		return res, fmt.Errorf("measuring %s: %w", path, err)
	}
	res.Size = size
	return res, nil
}

// isAbsent reports whether a stat error means the path simply is not there,
// including a missing or non-directory parent and a symlink loop.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}
