// Package jekyll renders extracted records as Jekyll front matter with a
// wrapped body paragraph, and recognizes files that already carry one.
package jekyll

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blurbkit/blurbconv/models"
)

// Delimiter opens and closes a front-matter block.
const Delimiter = "---"

// IsConverted reports whether a file's first line marks it as already in
// front-matter format.
func IsConverted(firstLine string) bool {
	return strings.TrimSpace(firstLine) == Delimiter
}

// RenderItem produces the full converted file content for an item record.
// Key order is fixed; empty relationship lists are omitted entirely, and
// every emitted list is sorted by display name.
func RenderItem(rec *models.ItemRecord) string {
	lines := []string{
		Delimiter,
		"layout: items",
		"item_name: " + rec.Name,
		fmt.Sprintf("item_id: %d", rec.ID),
	}

	if len(rec.Sources) > 0 {
		lines = append(lines, "src:")
		lines = appendLinks(lines, sortedLinks(rec.Sources))
	}
	if len(rec.UsedIn) > 0 {
		lines = append(lines, "make:")
		lines = appendLinks(lines, sortedLinks(rec.UsedIn))
	}
	if len(rec.Recipe) > 0 {
		lines = append(lines, "recipe:")
		for _, ing := range sortedIngredients(rec.Recipe) {
			lines = append(lines,
				fmt.Sprintf("  - name: %q", ing.Name),
				fmt.Sprintf("    url: %q", ing.URL),
				fmt.Sprintf("    qty: %d", ing.Qty))
		}
	}
	if rec.AP > 0 {
		lines = append(lines, fmt.Sprintf("ap: %d", rec.AP))
	}

	lines = append(lines, Delimiter)

	body := "\n"
	if rec.Blurb != "" {
		body = "\n<p>\n\t" + rec.Blurb + "\n</p>\n"
	}
	return strings.Join(lines, "\n") + body
}

// RenderCreature produces the full converted file content for a creature
// record. Drop entries only get a url line when the legacy page linked
// them.
func RenderCreature(rec *models.CreatureRecord) string {
	lines := []string{
		Delimiter,
		"layout: creatures",
		"title: " + rec.Title,
		fmt.Sprintf("mob_id: %d", rec.ID),
	}

	if len(rec.Items) > 0 {
		lines = append(lines, "item:")
		for _, it := range sortedLinksFold(rec.Items) {
			lines = append(lines, fmt.Sprintf("  - name: %q", it.Name))
			if it.URL != "" {
				lines = append(lines, fmt.Sprintf("    url: %q", it.URL))
			}
		}
	}
	if len(rec.Locations) > 0 {
		lines = append(lines, "loc:")
		lines = appendLinks(lines, sortedLinksFold(rec.Locations))
	}

	lines = append(lines, Delimiter, "", "<p>")
	for _, bl := range WrapBlurb(rec.Blurb) {
		lines = append(lines, "\t"+bl)
	}
	lines = append(lines, "</p>", "")

	return strings.Join(lines, "\n")
}

func appendLinks(lines []string, links []models.Link) []string {
	for _, l := range links {
		lines = append(lines,
			fmt.Sprintf("  - name: %q", l.Name),
			fmt.Sprintf("    url: %q", l.URL))
	}
	return lines
}

func sortedLinks(links []models.Link) []models.Link {
	out := make([]models.Link, len(links))
	copy(out, links)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// sortedLinksFold sorts case-insensitively; creature lists have always been
// ordered that way.
func sortedLinksFold(links []models.Link) []models.Link {
	out := make([]models.Link, len(links))
	copy(out, links)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func sortedIngredients(ings []models.Ingredient) []models.Ingredient {
	out := make([]models.Ingredient, len(ings))
	copy(out, ings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
