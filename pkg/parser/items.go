package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/blurbkit/blurbconv/models"
)

// craftIconMarker appears in the From/Make cell of every craftable item.
const craftIconMarker = "Make.png"

var (
	vesselCostRe  = regexp.MustCompile(`Vessel.*?\((\d+)\)`)
	jungleCostRe  = regexp.MustCompile(`Jungle.*?\((\d+)\)`)
	anyCostRe     = regexp.MustCompile(`\((\d+)\)`)
	qtyLinkRe     = regexp.MustCompile(`(\d+)\s*<a\s+href="([^"]+)">\s*(.*?)\s*</a>`)
	blurbLinkRe   = regexp.MustCompile(`<a\s+href="(\.\./Blurbs/[^"]+)">\s*(.*?)\s*</a>`)
	itemLinkRe    = regexp.MustCompile(`<a\s+href="(\.\./Items/[^"]+)">\s*(.*?)\s*</a>`)
	blurbsDirName = "../Blurbs/"
)

// hasCraftIcon reports whether the cell carries the crafting icon.
func hasCraftIcon(cell string) bool {
	return strings.Contains(cell, craftIconMarker)
}

// craftCost extracts the parenthesized action-point cost. Costs adjacent to
// the known crafting keywords win over a bare parenthesized number, and the
// bare number only counts when the crafting icon is present.
func craftCost(cell string) (int, bool) {
	for _, re := range []*regexp.Regexp{vesselCostRe, jungleCostRe} {
		if m := re.FindStringSubmatch(cell); m != nil {
			return atoi(m[1]), true
		}
	}
	if hasCraftIcon(cell) {
		if m := anyCostRe.FindStringSubmatch(cell); m != nil {
			return atoi(m[1]), true
		}
	}
	return 0, false
}

// isRecipe decides the shape of the From/Make cell. Both the crafting icon
// and a cost must be present; anything else is treated as a source cell.
func isRecipe(cell string) bool {
	if !hasCraftIcon(cell) {
		return false
	}
	_, ok := craftCost(cell)
	return ok
}

// ParseItem extracts an ItemRecord from an item blurb page. A missing data
// row leaves ID at 0; the caller decides whether that is a skip. Ambiguous
// From/Make cells produce empty relationship lists rather than errors.
func ParseItem(doc *Document) *models.ItemRecord {
	rec := &models.ItemRecord{Name: doc.Title()}

	rec.Blurb = doc.Blurb()
	if rec.Blurb == "" {
		rec.Blurb = doc.FallbackBlurb()
	}

	row, ok := doc.DataRow("No")
	if !ok {
		return rec
	}
	if id, ok := row.ID(); ok {
		rec.ID = id
	}

	if cell, ok := row.Cell("From", 4); ok {
		if isRecipe(cell.HTML) {
			rec.AP, _ = craftCost(cell.HTML)
			rec.Recipe = parseIngredients(cell.HTML)
		} else {
			rec.Sources = parseSources(cell.HTML)
		}
	}

	if cell, ok := row.Cell("Type", 8); ok {
		rec.UsedIn = parseUsedIn(cell.HTML)
	}

	return rec
}

// parseIngredients pulls quantity-prefixed ingredient links first, then any
// remaining blurb links with an implied quantity of one. De-duplicated by
// URL, first pass wins.
func parseIngredients(cell string) []models.Ingredient {
	var ingredients []models.Ingredient
	seen := map[string]bool{}

	for _, m := range qtyLinkRe.FindAllStringSubmatch(cell, -1) {
		qty, href, name := atoi(m[1]), m[2], cleanName(m[3])
		if name == "" || !strings.HasPrefix(href, blurbsDirName) || seen[href] {
			continue
		}
		seen[href] = true
		ingredients = append(ingredients, models.Ingredient{Name: name, URL: href, Qty: qty})
	}

	for _, m := range blurbLinkRe.FindAllStringSubmatch(cell, -1) {
		href, name := m[1], cleanName(m[2])
		if name == "" || seen[href] {
			continue
		}
		seen[href] = true
		ingredients = append(ingredients, models.Ingredient{Name: name, URL: href, Qty: 1})
	}

	return ingredients
}

// parseSources treats every link in the cell as a "produced by" reference.
// Entries whose display text carries the crafting icon or an img fragment
// are false positives and dropped.
func parseSources(cell string) []models.Link {
	matches := blurbLinkRe.FindAllStringSubmatch(cell, -1)
	if len(matches) == 0 {
		matches = itemLinkRe.FindAllStringSubmatch(cell, -1)
	}

	var sources []models.Link
	for _, m := range matches {
		href, raw := m[1], m[2]
		name := cleanName(raw)
		if name == "" {
			continue
		}
		if strings.Contains(raw, craftIconMarker) || strings.Contains(strings.ToLower(raw), "img") {
			continue
		}
		sources = append(sources, models.Link{Name: name, URL: href})
	}
	return sources
}

// parseUsedIn extracts the links naming items this one is an ingredient for.
func parseUsedIn(cell string) []models.Link {
	var links []models.Link
	for _, m := range blurbLinkRe.FindAllStringSubmatch(cell, -1) {
		if name := cleanName(m[2]); name != "" {
			links = append(links, models.Link{Name: name, URL: m[1]})
		}
	}
	return links
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
