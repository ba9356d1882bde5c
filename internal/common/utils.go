package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFileList reads a newline-delimited list of file names, skipping blank
// lines and # comments.
func ReadFileList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file list: %w", err)
	}

	var files []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	return files, nil
}

// ResolvePaths resolves each name against the content directory unless it
// is absolute or already carries a directory component.
func ResolvePaths(files []string, contentDir string) []string {
	resolved := make([]string, 0, len(files))
	for _, f := range files {
		if filepath.IsAbs(f) || filepath.Dir(f) != "." {
			resolved = append(resolved, f)
			continue
		}
		resolved = append(resolved, filepath.Join(contentDir, f))
	}
	return resolved
}

// DefaultContentDir returns the sibling content directory next to the
// executable's parent, matching the legacy site layout where the tool
// lives in scripts/ beside the content tree.
func DefaultContentDir(name string) string {
	execPath, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(filepath.Dir(execPath)), name)
}
