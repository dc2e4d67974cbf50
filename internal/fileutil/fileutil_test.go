package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(got)
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	data := make([]byte, 1024*64)
	for i := range data {
		data[i] = byte(i % 251)
	}
	if err := os.WriteFile(src, data, 0o600); err != nil {
		t.Fatal(err)
	}

	written, err := CopyFileVerified(src, dst)
	if err != nil {
		t.Fatalf("CopyFileVerified failed: %v", err)
	}
	if written != int64(len(data)) {
		t.Fatalf("written = %d, want %d", written, len(data))
	}
	if got := readFile(t, dst); got != string(data) {
		t.Fatal("content mismatch after verified copy")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %o, want 600", info.Mode().Perm())
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := CopyFileVerified(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "dst")); !os.IsNotExist(statErr) {
		t.Fatal("destination should not exist after failed copy")
	}
}

func TestMoveRenames(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	dstDir := filepath.Join(dir, "image")
	if err := os.Mkdir(dstDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, src, "pixels")

	dst := filepath.Join(dstDir, "photo.png")
	res, err := Move(src, dst, MoveOptions{})
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if res.CrossDevice {
		t.Fatal("same-directory move reported as cross-device")
	}
	if res.Bytes != int64(len("pixels")) {
		t.Fatalf("bytes = %d", res.Bytes)
	}
	if got := readFile(t, dst); got != "pixels" {
		t.Fatalf("dst content = %q", got)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still present after move")
	}
}

func TestMoveRefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	_, err := Move(src, dst, MoveOptions{})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
	if got := readFile(t, dst); got != "old" {
		t.Fatalf("destination modified: %q", got)
	}
	if got := readFile(t, src); got != "new" {
		t.Fatalf("source modified: %q", got)
	}
}

func TestMoveOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	if _, err := Move(src, dst, MoveOptions{Overwrite: true}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if got := readFile(t, dst); got != "new" {
		t.Fatalf("dst content = %q, want new", got)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still present after overwrite")
	}
}

func TestMoveNeverReplacesDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "video")
	writeFile(t, src, "x")
	dst := filepath.Join(dir, "video-dir")
	if err := os.Mkdir(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Move(src, dst, MoveOptions{Overwrite: true}); !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists for directory target, got %v", err)
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := Move(filepath.Join(dir, "gone"), filepath.Join(dir, "dst"), MoveOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestMoveCrossDeviceFallback(t *testing.T) {
	orig := renameFunc
	t.Cleanup(func() { renameFunc = orig })

	calls := 0
	renameFunc = func(oldpath, newpath string) error {
		calls++
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mp4")
	dstDir := filepath.Join(dir, "video")
	if err := os.Mkdir(dstDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, src, "frames")

	dst := filepath.Join(dstDir, "clip.mp4")
	res, err := Move(src, dst, MoveOptions{})
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("rename calls = %d, want 1", calls)
	}
	if !res.CrossDevice || res.Bytes != int64(len("frames")) {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := readFile(t, dst); got != "frames" {
		t.Fatalf("dst content = %q", got)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still present after cross-device move")
	}
	entries, err := os.ReadDir(dstDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the moved file in %s, found %d entries", dstDir, len(entries))
	}
}

func TestMoveOtherRenameErrorsPropagate(t *testing.T) {
	orig := renameFunc
	t.Cleanup(func() { renameFunc = orig })
	renameFunc = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EACCES}
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	writeFile(t, src, "x")
	_, err := Move(src, filepath.Join(dir, "b"), MoveOptions{})
	if !errors.Is(err, syscall.EACCES) {
		t.Fatalf("expected EACCES, got %v", err)
	}
	if IsCrossDevice(err) {
		t.Fatal("EACCES classified as cross-device")
	}
	if got := readFile(t, src); got != "x" {
		t.Fatalf("source modified: %q", got)
	}
}
