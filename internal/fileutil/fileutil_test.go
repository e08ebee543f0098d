package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "GS010001.360")
	dst := filepath.Join(dir, "moved.360")
	writeFile(t, src, "payload")

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("source still present: %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil || string(b) != "payload" {
		t.Errorf("dst content = %q, err = %v", b, err)
	}
}

func TestMoveFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := MoveFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestMoveInto_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "GS010001.360")
	writeFile(t, src, "x")

	archive := filepath.Join(dir, "joined_files")
	got, err := MoveInto(src, archive)
	if err != nil {
		t.Fatalf("MoveInto: %v", err)
	}
	if got != filepath.Join(archive, "GS010001.360") {
		t.Errorf("MoveInto returned %q", got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Errorf("moved file missing: %v", err)
	}
}

func TestCopyFileMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, src, "copy me")

	if err := CopyFileMode(src, dst, 0o600); err != nil {
		t.Fatalf("CopyFileMode: %v", err)
	}
	b, _ := os.ReadFile(dst)
	if string(b) != "copy me" {
		t.Errorf("dst content = %q", b)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("CopyFileMode must not remove the source")
	}
}

func TestCopyTimes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, src, "a")
	writeFile(t, dst, "b")

	atime := time.Date(2023, 7, 14, 9, 30, 0, 0, time.UTC)
	mtime := time.Date(2023, 7, 14, 10, 15, 0, 0, time.UTC)
	if err := os.Chtimes(src, atime, mtime); err != nil {
		t.Fatal(err)
	}

	if err := CopyTimes(src, dst); err != nil {
		t.Fatalf("CopyTimes: %v", err)
	}
	gotA, gotM, err := Times(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !gotM.Equal(mtime) {
		t.Errorf("mtime = %v, want %v", gotM, mtime)
	}
	if !gotA.Equal(atime) {
		t.Errorf("atime = %v, want %v", gotA, atime)
	}
}

func TestCopyTimes_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst")
	writeFile(t, dst, "b")
	if err := CopyTimes(filepath.Join(dir, "nope"), dst); err == nil {
		t.Error("expected error for missing source")
	}
}
