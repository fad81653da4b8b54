// Package fsops provides the filesystem operations the migration
// executor runs against.
//
// All filesystem mutations in reorg go through the FS interface, which
// is backed by go-billy. The real tree is reached through an osfs
// filesystem rooted at /; tests run the same engine against an osfs
// chrooted to a temporary directory or an in-memory memfs.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// FS provides an abstraction for filesystem operations.
// All filesystem mutations in reorg must go through this interface.
type FS interface {
	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]os.FileInfo, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Remove removes a file or empty directory.
	Remove(path string) error

	// RemoveAll removes a path and all its contents.
	RemoveAll(path string) error

	// Rename renames a file or directory.
	Rename(oldpath, newpath string) error

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// IsDir reports whether the path exists and is a directory.
	IsDir(path string) (bool, error)

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// CopyFile copies a single file from src to dst, preserving the
	// source mode where the backend supports it.
	CopyFile(src, dst string) error

	// CopyTree recursively copies a directory from src to dst,
	// skipping any source path present in excluded.
	CopyTree(src, dst string, excluded map[string]bool) error

	// Move relocates src to dst, falling back to copy+delete when a
	// rename is not possible (for example across devices).
	Move(src, dst string) error
}

// BillyFS implements FS on top of a billy.Filesystem.
type BillyFS struct {
	fs billy.Filesystem
}

// NewOSFS returns an FS over the real filesystem. Paths are absolute.
func NewOSFS() *BillyFS {
	return &BillyFS{fs: osfs.New("/")}
}

// NewMemFS returns an FS over an in-memory filesystem, for tests and
// simulations.
func NewMemFS() *BillyFS {
	return &BillyFS{fs: memfs.New()}
}

// New wraps an arbitrary billy filesystem.
func New(fs billy.Filesystem) *BillyFS {
	return &BillyFS{fs: fs}
}

// Stat returns file info, following symlinks.
func (b *BillyFS) Stat(path string) (os.FileInfo, error) {
	return b.fs.Stat(path)
}

// ReadDir lists the entries of a directory.
func (b *BillyFS) ReadDir(path string) ([]os.FileInfo, error) {
	list, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", path, err)
	}
	return list, nil
}

// MkdirAll creates a directory and all parent directories.
func (b *BillyFS) MkdirAll(path string, perm os.FileMode) error {
	return b.fs.MkdirAll(path, perm)
}

// Remove removes a file or empty directory.
func (b *BillyFS) Remove(path string) error {
	return b.fs.Remove(path)
}

// RemoveAll removes a path and all its contents.
func (b *BillyFS) RemoveAll(path string) error {
	return util.RemoveAll(b.fs, path)
}

// Rename renames a file or directory.
func (b *BillyFS) Rename(oldpath, newpath string) error {
	return b.fs.Rename(oldpath, newpath)
}

// Exists checks if a path exists.
func (b *BillyFS) Exists(path string) (bool, error) {
	_, err := b.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}

// IsDir reports whether the path exists and is a directory.
func (b *BillyFS) IsDir(path string) (bool, error) {
	info, err := b.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return info.IsDir(), nil
}

// ReadFile reads the entire contents of a file.
func (b *BillyFS) ReadFile(path string) ([]byte, error) {
	return util.ReadFile(b.fs, path)
}

// WriteFile writes data to a file, creating it if necessary.
func (b *BillyFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return util.WriteFile(b.fs, path, data, perm)
}

// CopyFile copies a single file from src to dst, preserving the source
// mode where the backend supports it.
func (b *BillyFS) CopyFile(src, dst string) error {
	srcInfo, err := b.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("copy file called on directory %q - this is a bug", src)
	}

	srcFile, err := b.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	if err := b.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	dstFile, err := b.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	// Preserve timestamps when the backend exposes them. memfs does
	// not implement billy.Change, so this stays best-effort.
	if ch, ok := b.fs.(billy.Change); ok {
		_ = ch.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
	}

	return nil
}

// CopyTree recursively copies a directory from src to dst, skipping
// any source path present in excluded.
func (b *BillyFS) CopyTree(src, dst string, excluded map[string]bool) error {
	srcInfo, err := b.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}

	if err := b.fs.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := b.fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		if excluded[srcPath] {
			continue
		}
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := b.CopyTree(srcPath, dstPath, excluded); err != nil {
				return err
			}
		} else {
			if err := b.CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// Move relocates src to dst, falling back to copy+delete when a rename
// is not possible.
func (b *BillyFS) Move(src, dst string) error {
	if err := b.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := b.fs.Rename(src, dst); err == nil {
		return nil
	}

	srcInfo, err := b.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	if srcInfo.IsDir() {
		if err := b.CopyTree(src, dst, nil); err != nil {
			return err
		}
	} else {
		if err := b.CopyFile(src, dst); err != nil {
			return err
		}
	}

	return b.RemoveAll(src)
}
