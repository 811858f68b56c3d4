// Package output writes rendered reports to disk. Files are replaced
// atomically so a reader never sees a partially written report.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// BaseName is the file name, without extension, of every report output.
const BaseName = "index"

// Writer writes rendered output into one directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory, creating it if
// needed. If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as name inside the output directory, overwriting any
// previous file. The data goes to a temporary file which is then renamed
// over the target. It returns the final path.
func (w *Writer) Write(name string, data []byte) (string, error) {
	path := filepath.Join(w.OutputDir, name)

	tmp, err := os.CreateTemp(w.OutputDir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replacing file %s: %w", path, err)
	}
	return path, nil
}

// WriteReport writes data as BaseName+ext, e.g. index.html.
func (w *Writer) WriteReport(ext string, data []byte) (string, error) {
	return w.Write(BaseName+ext, data)
}
