// Package storage provides read-only backends for the video asset library.
package storage

import (
	"path/filepath"
	"strings"
)

// ObjectMetadata contains metadata about a stored asset
type ObjectMetadata struct {
	Name          string
	ContentLength int64
}

// validName reports whether name is a plain file name with no path components.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
