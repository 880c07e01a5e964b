package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aitoolbox/ai-toolbox/internal/platform"
)

// PackDir zips the files under dir into memory. Entry names are
// relative to dir with forward slashes; directories are implied.
func PackDir(dir string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", rel, err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		if _, err := io.Copy(w, f); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Extract writes the archive entries under destDir. Entries with
// absolute names or names escaping destDir are rejected before
// anything is written for them.
func Extract(data []byte, destDir string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}

	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	for _, entry := range zr.File {
		target, err := safeJoin(destDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, platform.DefaultDirPermissions); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", entry.Name, err)
			}
			continue
		}

		if err := extractFile(entry, target); err != nil {
			return err
		}
	}
	return nil
}

// extractFile writes one archive entry to target
func extractFile(entry *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), platform.DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", entry.Name, err)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, platform.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", entry.Name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}
	return nil
}

// safeJoin resolves an entry name inside destDir, rejecting absolute
// names and names that traverse outside the destination
func safeJoin(destDir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("archive entry has empty name")
	}
	if strings.HasPrefix(name, "/") || filepath.IsAbs(filepath.FromSlash(name)) {
		return "", fmt.Errorf("archive entry %q has absolute path", name)
	}

	cleanDest := filepath.Clean(destDir)
	target := filepath.Join(cleanDest, filepath.FromSlash(name))
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	if target == cleanDest {
		return "", fmt.Errorf("archive entry %q resolves to the destination itself", name)
	}
	return target, nil
}
