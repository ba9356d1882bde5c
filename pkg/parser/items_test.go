package parser

import (
	"testing"
)

// itemPage builds a minimal legacy item page around the given From/Make and
// Type cells, using the standard eleven-column stats table.
func itemPage(t *testing.T, title string, id, fromMake, typeCell string) *Document {
	t.Helper()

	html := `<html><head><title>` + title + `</title></head><body>
<table>
<tr><th>&nbsp;</th><th>No</th><th>Name</th><th>Carry</th><th>Sell</th><th>From/Make</th><th>Treasure</th><th>Used</th><th>Class</th><th>Type</th><th>Notes</th></tr>
<tr><th>&nbsp;</th><th>` + id + `</th><td>` + title + `</td><td>1</td><td>5</td><td>` + fromMake + `</td><td>&nbsp;</td><td>&nbsp;</td><td>Misc</td><td>` + typeCell + `</td><td>&nbsp;</td></tr>
</table>
<div class="blurbs">A curious thing.</div>
</body></html>`

	doc, err := NewDocument(html)
	if err != nil {
		t.Fatalf("NewDocument() failed: %v", err)
	}
	return doc
}

func TestCraftPredicates(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		wantIcon bool
		wantCost int
		wantOK   bool
	}{
		{
			name:     "vessel keyword cost",
			cell:     `<img src="Make.png"/>Vessel Pond or Waterhole (12) 7 stuff`,
			wantIcon: true,
			wantCost: 12,
			wantOK:   true,
		},
		{
			name:     "jungle keyword cost",
			cell:     `<img src="Make.png"/>Jungle Knife (18) 2 stuff`,
			wantIcon: true,
			wantCost: 18,
			wantOK:   true,
		},
		{
			name:     "bare cost with icon",
			cell:     `<img src="Make.png"/>Firepit (3)`,
			wantIcon: true,
			wantCost: 3,
			wantOK:   true,
		},
		{
			name:     "bare cost without icon",
			cell:     `Dropped by something (3)`,
			wantIcon: false,
			wantCost: 0,
			wantOK:   false,
		},
		{
			name:     "icon without cost",
			cell:     `<img src="Make.png"/>unfinished`,
			wantIcon: true,
			wantCost: 0,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasCraftIcon(tt.cell); got != tt.wantIcon {
				t.Errorf("hasCraftIcon() = %v, want %v", got, tt.wantIcon)
			}
			cost, ok := craftCost(tt.cell)
			if ok != tt.wantOK || cost != tt.wantCost {
				t.Errorf("craftCost() = (%d, %v), want (%d, %v)", cost, ok, tt.wantCost, tt.wantOK)
			}
		})
	}
}

func TestParseItemRecipeShape(t *testing.T) {
	// The documented reference row: craft icon, Vessel cost, one
	// quantity-prefixed ingredient.
	doc := itemPage(t, "Widget", "42",
		`<img src="Make.png">Vessel Pond (5) 2 <a href="../Blurbs/Twig.html">Twig (#9)</a>`,
		`&nbsp;`)

	rec := ParseItem(doc)
	if rec.Name != "Widget" {
		t.Errorf("Name = %q, want %q", rec.Name, "Widget")
	}
	if rec.ID != 42 {
		t.Errorf("ID = %d, want 42", rec.ID)
	}
	if rec.AP != 5 {
		t.Errorf("AP = %d, want 5", rec.AP)
	}
	if len(rec.Recipe) != 1 {
		t.Fatalf("Recipe has %d entries, want 1", len(rec.Recipe))
	}
	ing := rec.Recipe[0]
	if ing.Name != "Twig" || ing.URL != "../Blurbs/Twig.html" || ing.Qty != 2 {
		t.Errorf("Recipe[0] = %+v, want {Twig ../Blurbs/Twig.html 2}", ing)
	}
	if len(rec.Sources) != 0 {
		t.Errorf("Sources should be empty for a recipe cell, got %v", rec.Sources)
	}
}

func TestParseItemCostWithoutIngredients(t *testing.T) {
	doc := itemPage(t, "Firebrand", "7",
		`<img src="Make.png">Jungle Knife (18)`,
		`&nbsp;`)

	rec := ParseItem(doc)
	if rec.AP != 18 {
		t.Errorf("AP = %d, want 18", rec.AP)
	}
	if len(rec.Recipe) != 0 {
		t.Errorf("Recipe should be empty, got %v", rec.Recipe)
	}
	if len(rec.Sources) != 0 {
		t.Errorf("Sources should be empty, got %v", rec.Sources)
	}
}

func TestParseItemIngredientDedup(t *testing.T) {
	// The same link appears in the quantity pass and the catch-all pass;
	// the quantity pass must win.
	doc := itemPage(t, "Salve", "31",
		`<img src="Make.png">Vessel Pond (12) 7 <a href="../Blurbs/Leaf.html">Purple Lotus Leaf (#16)</a> and <a href="../Blurbs/Leaf.html">Purple Lotus Leaf (#16)</a> plus <a href="../Blurbs/Bird.html">Reptron Bird (#122)</a>`,
		`&nbsp;`)

	rec := ParseItem(doc)
	if len(rec.Recipe) != 2 {
		t.Fatalf("Recipe has %d entries, want 2: %v", len(rec.Recipe), rec.Recipe)
	}
	if rec.Recipe[0].Name != "Purple Lotus Leaf" || rec.Recipe[0].Qty != 7 {
		t.Errorf("Recipe[0] = %+v, want Purple Lotus Leaf qty 7", rec.Recipe[0])
	}
	if rec.Recipe[1].Name != "Reptron Bird" || rec.Recipe[1].Qty != 1 {
		t.Errorf("Recipe[1] = %+v, want Reptron Bird qty 1 from catch-all pass", rec.Recipe[1])
	}
}

func TestParseItemSourceShape(t *testing.T) {
	doc := itemPage(t, "Blood Mite Eye", "12",
		`<a href="../Blurbs/BloodMite.html">Blood Mite (#40)</a> <a href="../Blurbs/Crafting.html"><img src="Make.png"/></a>`,
		`<a href="../Blurbs/VoodooCauldron.html">Voodoo Cauldron (#55)</a>`)

	rec := ParseItem(doc)
	if rec.AP != 0 || len(rec.Recipe) != 0 {
		t.Errorf("source cell misclassified as recipe: ap=%d recipe=%v", rec.AP, rec.Recipe)
	}
	if len(rec.Sources) != 1 {
		t.Fatalf("Sources has %d entries, want 1 (icon link excluded): %v", len(rec.Sources), rec.Sources)
	}
	if rec.Sources[0].Name != "Blood Mite" || rec.Sources[0].URL != "../Blurbs/BloodMite.html" {
		t.Errorf("Sources[0] = %+v", rec.Sources[0])
	}
	if len(rec.UsedIn) != 1 || rec.UsedIn[0].Name != "Voodoo Cauldron" {
		t.Errorf("UsedIn = %v, want Voodoo Cauldron", rec.UsedIn)
	}
}

func TestParseItemItemsDirFallback(t *testing.T) {
	doc := itemPage(t, "Old Coin", "90",
		`<a href="../Items/Chest.html">Treasure Chest</a>`,
		`&nbsp;`)

	rec := ParseItem(doc)
	if len(rec.Sources) != 1 || rec.Sources[0].URL != "../Items/Chest.html" {
		t.Errorf("Sources = %v, want the ../Items/ link", rec.Sources)
	}
}

func TestParseItemNoHeaderRow(t *testing.T) {
	// Some pages drop the header row entirely; the row is found by its
	// leading numeric id cell instead.
	html := `<html><head><title>Ancient Silver Spike</title></head><body>
<table>
<tr><th>77</th><td>Ancient Silver Spike</td><td>1</td><td>5</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>Misc</td><td>&nbsp;</td><td>&nbsp;</td></tr>
</table>
<div class="blurbs">An old spike.</div>
</body></html>`

	doc, err := NewDocument(html)
	if err != nil {
		t.Fatalf("NewDocument() failed: %v", err)
	}
	rec := ParseItem(doc)
	if rec.ID != 77 {
		t.Errorf("ID = %d, want 77", rec.ID)
	}
	if rec.Blurb != "An old spike." {
		t.Errorf("Blurb = %q", rec.Blurb)
	}
}

func TestParseItemMissingDataRow(t *testing.T) {
	html := `<html><head><title>Broken</title></head><body><p>no table here</p></body></html>`
	doc, err := NewDocument(html)
	if err != nil {
		t.Fatalf("NewDocument() failed: %v", err)
	}
	rec := ParseItem(doc)
	if rec.ID != 0 {
		t.Errorf("ID = %d, want 0 for a page without a data row", rec.ID)
	}
	if rec.Name != "Broken" {
		t.Errorf("Name = %q, want the title regardless", rec.Name)
	}
}
