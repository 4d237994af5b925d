package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory and returns
// how many were written. Files whose content is already up to date are left
// untouched. The directory is created if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) (int, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	written := 0

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		existing, err := os.ReadFile(outputPath)
		if err == nil && bytes.Equal(existing, file.Content) {
			continue
		}

		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("reading file %s: %w", file.Filename, err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written++
	}

	return written, nil
}
