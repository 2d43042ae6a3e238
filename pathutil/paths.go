// Package pathutil provides filesystem helpers shared across the kjcore
// managers: directory creation, file discovery and filename parsing.
package pathutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnsureDir creates the directory (and any missing parents) if it does not
// exist and returns the cleaned path.
func EnsureDir(dir string) (string, error) {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

// FileList walks root recursively and returns all regular files. When ext is
// non-empty only files with that extension are returned; the match is
// case-insensitive and the leading dot is optional ("csv" and ".CSV" both
// match "data.csv"). A missing root is an error, an empty result is not.
func FileList(root, ext string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to read search path %s: %w", root, err)
	}

	want := strings.ToLower(strings.TrimPrefix(ext, "."))

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if want != "" {
			got := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
			if got != want {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IDExtractor derives an integer sensor ID from a file path.
type IDExtractor func(path string) (int, error)

// LastThreeDigits is the default IDExtractor: it parses the final three
// characters of the file stem, e.g. "TMS_042.csv" -> 42.
func LastThreeDigits(path string) (int, error) {
	stem := Stem(path)
	if len(stem) < 3 {
		return 0, fmt.Errorf("file stem %q too short for a sensor ID", stem)
	}
	id, err := strconv.Atoi(stem[len(stem)-3:])
	if err != nil {
		return 0, fmt.Errorf("failed to parse sensor ID from %q: %w", stem, err)
	}
	return id, nil
}

// SensorIDs applies extract to every file and collects the IDs in order.
// A nil extract uses LastThreeDigits. Any single failure aborts the whole
// extraction so that IDs and files stay aligned.
func SensorIDs(files []string, extract IDExtractor) ([]int, error) {
	if extract == nil {
		extract = LastThreeDigits
	}
	ids := make([]int, 0, len(files))
	for _, f := range files {
		id, err := extract(f)
		if err != nil {
			return nil, fmt.Errorf("failed to extract sensor ID from %s: %w", filepath.Base(f), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
