// Package convert implements the items and creatures conversion commands.
package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blurbkit/blurbconv/pkg/jekyll"
	"github.com/blurbkit/blurbconv/pkg/parser"
	"github.com/blurbkit/blurbconv/pkg/storage"
	"github.com/blurbkit/blurbconv/pkg/textio"
)

// errSkip distinguishes a deliberate skip from a conversion failure.
// The wrapped message says why the file was left alone.
var errSkip = errors.New("skipped")

// indexPages are aggregate pages that must never be converted.
var indexPages = map[string]bool{
	"AllBlurbs.html": true,
}

// convertFn turns decoded page content into converted file content, or
// errSkip / an error.
type convertFn func(content string) (string, error)

// convertItem is the item pipeline: parse, require name and id, render.
func convertItem(content string) (string, error) {
	doc, err := parser.NewDocument(content)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}

	rec := parser.ParseItem(doc)
	if rec.Name == "" {
		return "", fmt.Errorf("%w: could not extract item name", errSkip)
	}
	if rec.ID == 0 {
		return "", fmt.Errorf("%w: could not extract item id", errSkip)
	}

	return jekyll.RenderItem(rec), nil
}

// convertCreature is the creature pipeline.
func convertCreature(content string) (string, error) {
	doc, err := parser.NewDocument(content)
	if err != nil {
		return "", fmt.Errorf("parse error: %w", err)
	}

	rec := parser.ParseCreature(doc)
	if rec.Title == "" {
		return "", fmt.Errorf("%w: could not extract title", errSkip)
	}
	if rec.ID == 0 {
		return "", fmt.Errorf("%w: could not extract mob id", errSkip)
	}

	return jekyll.RenderCreature(rec), nil
}

// convertFile runs one file through the pipeline. It returns the rendered
// output, errSkip when the file should be left untouched, or an error. The
// caller decides whether to write.
func convertFile(store *storage.Storage, path string, convert convertFn) (string, error) {
	if indexPages[filepath.Base(path)] {
		return "", fmt.Errorf("%w: index page", errSkip)
	}
	if !store.HasFile(path) {
		return "", fmt.Errorf("file not found: %s", path)
	}

	raw, err := store.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, err := textio.Decode(raw)
	if err != nil {
		return "", err
	}

	if jekyll.IsConverted(textio.FirstLine(content)) {
		return "", fmt.Errorf("%w: already converted", errSkip)
	}

	return convert(content)
}

// skipReason unwraps the message attached to an errSkip.
func skipReason(err error) string {
	return strings.TrimPrefix(err.Error(), errSkip.Error()+": ")
}
