package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func readZipEntries(t *testing.T, zipPath string) map[string][]byte {
	t.Helper()
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	entries := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = data
	}
	return entries
}

func TestArchive_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "My Artwork_129000000")

	writeTestFile(t, filepath.Join(folder, "01.png"), []byte("page one"))
	writeTestFile(t, filepath.Join(folder, "02.png"), []byte("page two"))
	writeTestFile(t, filepath.Join(folder, "sub", "03.jpg"), []byte("page three"))

	zipPath, err := Archive(folder, false)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if zipPath != folder+".zip" {
		t.Errorf("zipPath = %q, want %q", zipPath, folder+".zip")
	}

	if _, err := os.Stat(folder); !os.IsNotExist(err) {
		t.Error("source folder should have been removed")
	}

	entries := readZipEntries(t, zipPath)
	want := map[string]string{
		"My Artwork_129000000/01.png":     "page one",
		"My Artwork_129000000/02.png":     "page two",
		"My Artwork_129000000/sub/03.jpg": "page three",
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(entries), len(want), entries)
	}
	for name, content := range want {
		if string(entries[name]) != content {
			t.Errorf("entry %s = %q, want %q", name, entries[name], content)
		}
	}
}

func TestArchive_KeepFolder(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "art")
	writeTestFile(t, filepath.Join(folder, "01.jpg"), []byte("x"))

	if _, err := Archive(folder, true); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(folder, "01.jpg")); err != nil {
		t.Errorf("source folder should survive: %v", err)
	}
}

func TestArchive_EmptyFolder(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "nothing")
	if err := os.MkdirAll(folder, 0755); err != nil {
		t.Fatal(err)
	}

	zipPath, err := Archive(folder, false)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if zipPath != "" {
		t.Errorf("zipPath = %q, want empty", zipPath)
	}
	if _, err := os.Stat(folder); !os.IsNotExist(err) {
		t.Error("empty folder should have been removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "nothing.zip")); !os.IsNotExist(err) {
		t.Error("no archive should exist for an empty folder")
	}
}

func TestArchive_SkipsPartialFiles(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "art")
	writeTestFile(t, filepath.Join(folder, "01.png"), []byte("done"))
	writeTestFile(t, filepath.Join(folder, "02.png.part"), []byte("half"))

	zipPath, err := Archive(folder, false)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	entries := readZipEntries(t, zipPath)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %v", len(entries), entries)
	}
	if _, ok := entries["art/01.png"]; !ok {
		t.Errorf("missing completed file entry, got %v", entries)
	}
}

func TestArchive_OnlyPartialFiles(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(dir, "art")
	writeTestFile(t, filepath.Join(folder, "01.png.part"), []byte("half"))

	zipPath, err := Archive(folder, false)
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if zipPath != "" {
		t.Errorf("zipPath = %q, want empty", zipPath)
	}
	if _, err := os.Stat(folder); !os.IsNotExist(err) {
		t.Error("folder with only partial files should have been removed")
	}
}
