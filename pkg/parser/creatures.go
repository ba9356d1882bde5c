package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/blurbkit/blurbconv/models"
)

// foodToken marks the generic food drop every creature shares; it is noise
// in a drop list and always excluded.
const foodToken = "Food"

var qtyPrefixRe = regexp.MustCompile(`\d+-?\d*\s+`)

// ParseCreature extracts a CreatureRecord from a creature blurb page. The
// stats row is the one following the "Ver" header; the drop-item cell sits
// under the Item header, nine columns in.
func ParseCreature(doc *Document) *models.CreatureRecord {
	rec := &models.CreatureRecord{Title: doc.Title()}

	rec.Blurb = doc.Blurb()

	row, ok := doc.DataRow("Ver")
	if !ok {
		return rec
	}
	if id, ok := row.ID(); ok {
		rec.ID = id
	}

	if cell, ok := row.Cell("Item", 7); ok {
		rec.Items = parseDropCell(cell.HTML)
	}

	rec.Locations = parseLocations(doc)

	return rec
}

// parseDropCell turns the raw drop-item cell into named entries. Linked
// items win; a cell with no links at all falls back to splitting the plain
// text on leading quantity prefixes like "2 " or "0-3 ". Food entries are
// dropped either way.
func parseDropCell(cellHTML string) []models.Link {
	if strings.TrimSpace(cellHTML) == "" {
		return nil
	}

	frag, err := goquery.NewDocumentFromReader(strings.NewReader(cellHTML))
	if err != nil {
		return nil
	}

	var items []models.Link
	frag.Find("a").Each(func(_ int, a *goquery.Selection) {
		name := strings.TrimSpace(a.Text())
		if name == "" || strings.Contains(name, foodToken) {
			return
		}
		href, _ := a.Attr("href")
		items = append(items, models.Link{Name: ensureParenSpacing(name), URL: href})
	})
	if items != nil {
		return items
	}
	if frag.Find("a").Length() > 0 {
		// Links existed but all were filtered; do not fall through to the
		// plain-text pass, it would resurrect them without URLs.
		return nil
	}

	for _, part := range qtyPrefixRe.Split(strings.TrimSpace(frag.Text()), -1) {
		part = strings.TrimSpace(part)
		if part == "" || strings.Contains(part, foodToken) {
			continue
		}
		items = append(items, models.Link{Name: ensureParenSpacing(part)})
	}
	return items
}

// parseLocations walks the table following the "Found In" heading. Each
// icon cell holds an icon link and a name link to the same location page;
// the name comes from the second link, the URL from the last.
func parseLocations(doc *Document) []models.Link {
	var locations []models.Link

	doc.doc.Find("h3").Each(func(_ int, h *goquery.Selection) {
		if !strings.Contains(h.Text(), "Found In") {
			return
		}
		table := h.NextAllFiltered("table").First()
		table.Find("th.icon").Each(func(_ int, th *goquery.Selection) {
			links := th.Find("a")
			if links.Length() < 2 {
				return
			}
			name := strings.TrimSpace(links.Eq(1).Text())
			href, _ := links.Eq(links.Length() - 1).Attr("href")
			if name != "" && href != "" {
				locations = append(locations, models.Link{Name: name, URL: href})
			}
		})
	})

	return locations
}
