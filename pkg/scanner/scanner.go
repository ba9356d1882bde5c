// Package scanner finds legacy HTML files that have not yet been converted
// to front-matter format. Pure read-only reporting.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blurbkit/blurbconv/pkg/jekyll"
	"github.com/blurbkit/blurbconv/pkg/textio"
)

// skipSegment marks directories of retired pages that are never converted.
const skipSegment = "unused"

// Unconverted walks root and returns the sorted relative paths of .html
// files whose first line is not the front-matter delimiter. Files that
// cannot be read or decoded count as unconverted; the walk never fails on
// a single file.
func Unconverted(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == skipSegment {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if hasSegment(rel, skipSegment) {
			return nil
		}

		if !startsWithFrontMatter(path) {
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func startsWithFrontMatter(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	content, err := textio.Decode(data)
	if err != nil {
		return false
	}
	return jekyll.IsConverted(textio.FirstLine(content))
}

func hasSegment(rel, segment string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == segment {
			return true
		}
	}
	return false
}
