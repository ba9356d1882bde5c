// Package audit implements post-conversion verification of converted files.
package audit

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/blurbkit/blurbconv/internal/common"
	"github.com/blurbkit/blurbconv/pkg/jekyll"
	"github.com/blurbkit/blurbconv/pkg/textio"
	"github.com/pemistahl/lingua-go"
	"github.com/urfave/cli/v2"
)

// envelope is the subset of front-matter keys the audit cares about. Item
// and creature layouts use different name/id keys, so both pairs appear.
type envelope struct {
	Layout   string `yaml:"layout"`
	ItemName string `yaml:"item_name"`
	ItemID   int    `yaml:"item_id"`
	Title    string `yaml:"title"`
	MobID    int    `yaml:"mob_id"`
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// AuditAction walks converted files, checks that their front matter parses
// and carries the required keys, and flags bodies that do not read as
// English. A non-English body on this site almost always means a bad
// decode slipped through.
func AuditAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	dir := c.String("dir")
	if dir == "" {
		dir = common.DefaultContentDir("Blurbs")
	}

	// Languages that plausibly come out of mojibake or stray content; the
	// detector needs a closed set to choose from.
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.French, lingua.German, lingua.Spanish, lingua.Portuguese).
		Build()

	var checked, issues int

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("unreadable file", "file", path, "error", err)
			return nil
		}
		content, err := textio.Decode(data)
		if err != nil || !jekyll.IsConverted(textio.FirstLine(content)) {
			return nil // not converted yet; the scan command reports these
		}

		checked++
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}

		var meta envelope
		body, err := frontmatter.Parse(bytes.NewReader([]byte(content)), &meta)
		if err != nil {
			logger.Error("front matter does not parse", "file", rel, "error", err)
			issues++
			return nil
		}

		if problem := validate(&meta); problem != "" {
			logger.Error("incomplete front matter", "file", rel, "problem", problem)
			issues++
			return nil
		}

		if lang, suspect := foreignBody(detector, string(body)); suspect {
			logger.Warn("body does not read as English", "file", rel, "detected", lang.String())
			issues++
		}
		return nil
	})
	if err != nil {
		logger.Error("audit walk failed", "dir", dir, "error", err)
		os.Exit(2)
	}

	fmt.Printf("Audited %d converted files, %d with issues.\n", checked, issues)
	if issues > 0 {
		os.Exit(1)
	}
	return nil
}

func validate(meta *envelope) string {
	switch meta.Layout {
	case "items":
		if meta.ItemName == "" {
			return "missing item_name"
		}
		if meta.ItemID == 0 {
			return "missing item_id"
		}
	case "creatures":
		if meta.Title == "" {
			return "missing title"
		}
		if meta.MobID == 0 {
			return "missing mob_id"
		}
	case "":
		return "missing layout"
	default:
		return fmt.Sprintf("unexpected layout %q", meta.Layout)
	}
	return ""
}

// foreignBody reports the detected language when the body text is long
// enough to judge and confidently not English.
func foreignBody(detector lingua.LanguageDetector, body string) (lingua.Language, bool) {
	text := strings.TrimSpace(tagRe.ReplaceAllString(body, " "))
	if len(strings.Fields(text)) < 8 {
		return lingua.Unknown, false // too short to judge
	}

	lang, ok := detector.DetectLanguageOf(text)
	if !ok || lang == lingua.English {
		return lang, false
	}
	confidence := detector.ComputeLanguageConfidence(text, lang)
	return lang, confidence > 0.9
}
