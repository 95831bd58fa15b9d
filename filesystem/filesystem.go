// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library so production code runs against the OS filesystem
// while tests swap in a volatile in-memory backend.
package filesystem

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing and CI environments.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// GacheFs adapts the afero backend to the gache.FileSystem interface so the
// watch-history cache persists through the swappable filesystem.
type GacheFs struct{}

// OpenFile opens a file using the current filesystem backend.
func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

// MkdirAll creates a directory using the current filesystem backend.
func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
