package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// renameFunc is swapped in tests to simulate EXDEV.
var renameFunc = os.Rename

// ErrDestinationExists is returned when a move would replace an existing
// file and overwriting is disabled.
var ErrDestinationExists = errors.New("destination already exists")

// MoveOptions tunes Move.
type MoveOptions struct {
	// Overwrite replaces an existing file at dst.
	Overwrite bool
}

// MoveResult describes how a move was carried out.
type MoveResult struct {
	// CrossDevice is set when rename failed with EXDEV and the file was
	// copied and the source removed instead.
	CrossDevice bool
	Bytes       int64
}

// Move relocates src to dst. It renames when possible and falls back to a
// verified copy followed by removal of src when the two paths live on
// different filesystems. The parent directory of dst must exist.
func Move(src, dst string, opts MoveOptions) (MoveResult, error) {
	info, err := os.Lstat(src)
	if err != nil {
		return MoveResult{}, fmt.Errorf("stat source: %w", err)
	}
	result := MoveResult{Bytes: info.Size()}

	if existing, err := os.Lstat(dst); err == nil {
		if existing.IsDir() {
			return MoveResult{}, fmt.Errorf("%w: %s is a directory", ErrDestinationExists, dst)
		}
		if !opts.Overwrite {
			return MoveResult{}, fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return MoveResult{}, fmt.Errorf("stat destination: %w", err)
	}

	renameErr := renameFunc(src, dst)
	if renameErr == nil {
		return result, nil
	}
	if !IsCrossDevice(renameErr) {
		return MoveResult{}, renameErr
	}
	if !info.Mode().IsRegular() {
		return MoveResult{}, fmt.Errorf("cross-device move of non-regular file %s: %w", src, renameErr)
	}

	written, err := copyAcross(src, dst)
	if err != nil {
		return MoveResult{}, err
	}
	if err := os.Remove(src); err != nil {
		return MoveResult{}, fmt.Errorf("remove source after copy: %w", err)
	}
	return MoveResult{CrossDevice: true, Bytes: written}, nil
}

// copyAcross copies src next to dst under a temporary name and renames it
// into place, so readers of dst never see a partial file.
func copyAcross(src, dst string) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".filesort-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()

	written, err := CopyFileVerified(src, tmpName)
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("copy across devices: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("finalize copy: %w", err)
	}
	return written, nil
}

// IsCrossDevice reports whether err stems from a rename across filesystems.
func IsCrossDevice(err error) bool {
	if errors.Is(err, syscall.EXDEV) {
		return true
	}
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}
