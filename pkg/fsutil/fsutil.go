// Package fsutil provides file system helpers for mdpreview: reading sources
// with a content fingerprint, detecting changes between renders, and writing
// HTML output atomically.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo captures the state of a source file at the time it was read.
type FileInfo struct {
	// Path is the absolute or relative path to the file.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the xxhash64 fingerprint of the content.
	Hash uint64
}

// Fingerprint returns the content hash used by FileInfo.
func Fingerprint(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// ReadFile reads a file and returns its content along with metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    Fingerprint(content),
	}

	return content, info, nil
}

// Refresh re-reads info.Path when its size or modification time moved.
// It returns the new content and metadata, or nil content when the file is
// untouched or was rewritten with identical bytes. A deleted file reports ErrNotFound.
func Refresh(ctx context.Context, info *FileInfo) ([]byte, *FileInfo, error) {
	if info == nil {
		return nil, nil, ErrNilFileInfo
	}

	quick, err := CheckModifiedQuick(ctx, info)
	if err != nil || !quick {
		return nil, info, err
	}

	content, fresh, err := ReadFile(ctx, info.Path)
	if err != nil {
		return nil, info, err
	}
	if fresh.Hash == info.Hash {
		return nil, fresh, nil
	}
	return content, fresh, nil
}

// CheckModified returns true if the file has been modified since the given FileInfo.
//
// The check uses a two-tier approach:
//  1. Quick check: compare mod time and size (fast, catches most cases)
//  2. Hash check: re-read and hash content (catches same-size rewrites)
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	quick, err := CheckModifiedQuick(ctx, info)
	if err != nil || quick {
		return quick, err
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return Fingerprint(content) != info.Hash, nil
}

// CheckModifiedQuick performs only the quick modification check (mod time + size).
// A deleted file counts as modified.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	return !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
