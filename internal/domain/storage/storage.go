// Package storage keeps uploaded files in per-submission folders on a remote file store.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrFileNotFound   = errors.New("file not found")
	ErrInvalidName    = errors.New("invalid file or folder name")
)

// Object is one file inside a folder.
type Object struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

// Storage is the file store. Folders are flat: one per submission identifier.
type Storage interface {
	// Put creates folder when it is missing and writes name into it.
	Put(ctx context.Context, folder, name string, r io.Reader) error
	// Remove returns ErrFolderNotFound when folder does not exist.
	Remove(ctx context.Context, folder, name string) error
	List(ctx context.Context, folder string) ([]Object, error)
}

// ValidName rejects anything that could escape a folder.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return path.Base(name) == name
}

func checkNames(folder, name string) error {
	if !ValidName(folder) || !ValidName(name) {
		return ErrInvalidName
	}
	return nil
}
