package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// partialSuffix marks in-progress downloads. Entries with this suffix
// are never archived.
const partialSuffix = ".part"

// Archive zips folder into a sibling "<folder>.zip" file and, unless
// keepFolder is set, removes the source folder afterwards.
//
// An empty folder (no regular files besides leftover partial
// downloads) produces no archive; the folder itself is still removed
// so aborted runs leave nothing behind.
//
// Returns the path of the created archive, or "" when nothing was
// archived.
func Archive(folder string, keepFolder bool) (string, error) {
	empty, err := isEmpty(folder)
	if err != nil {
		return "", err
	}
	if empty {
		if err := os.RemoveAll(folder); err != nil {
			return "", fmt.Errorf("remove empty folder: %w", err)
		}
		return "", nil
	}

	zipPath := folder + ".zip"
	if err := Zip(folder, zipPath); err != nil {
		return "", err
	}

	if !keepFolder {
		if err := os.RemoveAll(folder); err != nil {
			return zipPath, fmt.Errorf("remove archived folder: %w", err)
		}
	}
	return zipPath, nil
}

// Zip writes a deflate-compressed zip archive of folder to zipPath.
//
// Entry names are rooted at the folder's base name, so unzipping
// recreates the folder instead of spilling its contents. Partial
// download files are skipped.
func Zip(folder, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	root := filepath.Base(folder)

	err = filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, partialSuffix) {
			return nil
		}

		rel, err := filepath.Rel(folder, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(filepath.Join(root, rel))

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		// Close per file; a deferred close would hold every archived
		// file open until the walk finishes.
		if _, err := io.Copy(w, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("zip %s: %w", folder, err)
	}

	return zw.Close()
}

// isEmpty reports whether folder contains no archivable files.
func isEmpty(folder string) (bool, error) {
	found := false
	err := filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, partialSuffix) {
			return nil
		}
		found = true
		return filepath.SkipAll
	})
	if err != nil {
		return false, fmt.Errorf("inspect folder: %w", err)
	}
	return !found, nil
}
