// Package parser extracts structured item and creature records from the
// legacy blurb HTML pages. The pages carry their data in a single row of a
// stats table; cells are addressed by header text where the table has a
// recognizable header row, falling back to the known fixed positions when
// it does not.
package parser

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Document wraps a decoded legacy page.
type Document struct {
	doc *goquery.Document
	raw string
}

// NewDocument parses decoded page content.
func NewDocument(content string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc, raw: content}, nil
}

// Title returns the <title> text, trimmed.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Blurb returns the inner HTML of the blurbs div with whitespace collapsed,
// or "" when the page has none.
func (d *Document) Blurb() string {
	sel := d.doc.Find("div.blurbs").First()
	if sel.Length() == 0 {
		return ""
	}
	inner, err := sel.Html()
	if err != nil {
		return ""
	}
	return collapseSpace(inner)
}

// FallbackBlurb asks go-readability for a best-effort excerpt when a page
// carries no blurbs div at all. The pages are local files, so the base URL
// is a placeholder.
func (d *Document) FallbackBlurb() string {
	base, _ := url.Parse("http://localhost/")
	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader(d.raw), base)
	if err != nil {
		return ""
	}
	return collapseSpace(article.Excerpt)
}

// Cell is one table cell, kept both as plain text and as raw inner HTML so
// link markup survives for the relationship parsers.
type Cell struct {
	Text string
	HTML string
}

// DataRow is the single data-bearing row of the stats table.
type DataRow struct {
	headers []string // header row cell texts; empty when located positionally
	cells   []Cell
	idCol   int // column holding the numeric id, -1 when unknown
}

var digitsRe = regexp.MustCompile(`^\d+$`)

// DataRow locates the row immediately following the header row that
// contains the marker column ("No" for items, "Ver" for creatures). When no
// such header exists it falls back to scanning for a row whose leading
// cells match the bare id pattern. Returns false when neither is found.
func (d *Document) DataRow(marker string) (*DataRow, bool) {
	var row *DataRow

	d.doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		for i := 0; i < trs.Length()-1; i++ {
			headers := cellTexts(trs.Eq(i))
			if !containsFold(headers, marker) {
				continue
			}
			row = &DataRow{
				headers: headers,
				cells:   cellsOf(trs.Eq(i + 1)),
				idCol:   indexFold(headers, "No"),
			}
			return false
		}
		return true
	})
	if row != nil {
		return row, true
	}

	// No marker header anywhere. Some pages drop the header row entirely;
	// find a row starting with a numeric id cell, optionally preceded by a
	// blank cell.
	d.doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := cellsOf(tr)
		if len(cells) == 0 {
			return true
		}
		first := strings.TrimSpace(cells[0].Text)
		switch {
		case digitsRe.MatchString(first):
			row = &DataRow{cells: cells, idCol: 0}
			return false
		case first == "" && len(cells) > 1 && digitsRe.MatchString(strings.TrimSpace(cells[1].Text)):
			row = &DataRow{cells: cells, idCol: 1}
			return false
		}
		return true
	})
	return row, row != nil
}

// ID returns the numeric id, or false when the id column is missing or not
// a number.
func (r *DataRow) ID() (int, bool) {
	col := r.idCol
	if col < 0 || col >= len(r.cells) {
		// Header had no "No" column; take the first numeric cell.
		col = -1
		for i, c := range r.cells {
			if digitsRe.MatchString(strings.TrimSpace(c.Text)) {
				col = i
				break
			}
		}
	}
	if col < 0 || col >= len(r.cells) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(r.cells[col].Text))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Cell returns the cell under the header containing name, falling back to
// the column at the given offset from the id column when headers are absent
// or the name is not among them.
func (r *DataRow) Cell(name string, offsetFromID int) (Cell, bool) {
	if i := indexContainsFold(r.headers, name); i >= 0 && i < len(r.cells) {
		return r.cells[i], true
	}
	if r.idCol >= 0 {
		if i := r.idCol + offsetFromID; i < len(r.cells) {
			return r.cells[i], true
		}
	}
	return Cell{}, false
}

func cellsOf(tr *goquery.Selection) []Cell {
	var cells []Cell
	tr.Find("th,td").Each(func(_ int, s *goquery.Selection) {
		inner, _ := s.Html()
		cells = append(cells, Cell{Text: s.Text(), HTML: inner})
	})
	return cells
}

func cellTexts(tr *goquery.Selection) []string {
	var texts []string
	tr.Find("th,td").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

func containsFold(haystack []string, needle string) bool {
	return indexFold(haystack, needle) >= 0
}

// indexFold finds an exact case-insensitive header match. Exactness matters:
// "Notes" must not match a lookup for "No".
func indexFold(haystack []string, needle string) int {
	for i, h := range haystack {
		if strings.EqualFold(h, needle) {
			return i
		}
	}
	return -1
}

// indexContainsFold finds a substring header match, for compound headers
// like "From/Make".
func indexContainsFold(haystack []string, needle string) int {
	for i, h := range haystack {
		if strings.Contains(strings.ToLower(h), strings.ToLower(needle)) {
			return i
		}
	}
	return -1
}

var spaceRe = regexp.MustCompile(`\s+`)

// collapseSpace folds runs of whitespace into single spaces and trims.
func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

var itemNumberRe = regexp.MustCompile(`\s*\(#\d+\)`)

// cleanName strips trailing item-number markers like " (#16)".
func cleanName(s string) string {
	return strings.TrimSpace(itemNumberRe.ReplaceAllString(s, ""))
}

var parenSpacingRe = regexp.MustCompile(`(\S)\(`)

// ensureParenSpacing inserts the space the legacy pages often dropped
// between a name and a following parenthesis.
func ensureParenSpacing(s string) string {
	return parenSpacingRe.ReplaceAllString(s, "$1 (")
}
