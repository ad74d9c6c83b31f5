package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage keeps folders under a directory on disk. The directory is served as static
// files by the API server in development.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Put(ctx context.Context, folder, name string, r io.Reader) error {
	if err := checkNames(folder, name); err != nil {
		return err
	}
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	absPath := filepath.Join(dir, name)
	dst, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, readerWithContext(ctx, r)); err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Remove(ctx context.Context, folder, name string) error {
	if err := checkNames(folder, name); err != nil {
		return err
	}
	dir := filepath.Join(s.baseDir, folder)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return ErrFolderNotFound
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List returns an empty slice for a folder that was never created.
func (s *LocalStorage) List(ctx context.Context, folder string) ([]Object, error) {
	if !ValidName(folder) {
		return nil, ErrInvalidName
	}
	entries, err := os.ReadDir(filepath.Join(s.baseDir, folder))
	if errors.Is(err, fs.ErrNotExist) {
		return []Object{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{Name: e.Name(), Size: info.Size(), ModifiedAt: info.ModTime()})
	}
	return objects, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
