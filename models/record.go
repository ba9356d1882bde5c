// Package models defines the data structures shared across the converter.
package models

// Link is a named reference to another page, typically a relative
// ../Blurbs/ URL. Creature drop entries may have no URL when the legacy
// page listed the item as plain text.
type Link struct {
	Name string
	URL  string
}

// Ingredient is a recipe component with its required quantity.
type Ingredient struct {
	Name string
	URL  string
	Qty  int
}

// ItemRecord holds everything extracted from a legacy item blurb page.
// ID 0 means the numeric id could not be found; such records are never
// emitted.
type ItemRecord struct {
	Name    string
	ID      int
	Sources []Link       // creatures/plants this item drops from
	UsedIn  []Link       // items this one is an ingredient for
	Recipe  []Ingredient // crafting ingredients
	AP      int          // action point cost of the recipe, 0 = none
	Blurb   string
}

// CreatureRecord holds everything extracted from a legacy creature blurb page.
type CreatureRecord struct {
	Title     string
	ID        int
	Items     []Link // dropped items
	Locations []Link
	Blurb     string
}
