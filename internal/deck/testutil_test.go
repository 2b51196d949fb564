package deck

import "github.com/peterkuimelis/genesys/internal/catalog"

// --- Test card helpers ---

func monster(id int, name string) *catalog.Card {
	return &catalog.Card{ID: id, Name: name, Type: "Effect Monster", Level: 4, ATK: 1800, DEF: 1000}
}

func fusionMonster(id int, name string) *catalog.Card {
	return &catalog.Card{ID: id, Name: name, Type: "Fusion Monster", Level: 8, ATK: 2500, DEF: 2000}
}

func spell(id int, name string) *catalog.Card {
	return &catalog.Card{ID: id, Name: name, Type: "Spell Card"}
}

// pointTable is a ScoringTable backed by a plain map.
type pointTable map[string]int

func (t pointTable) PointsFor(name string) int {
	return t[name]
}

// countListener counts notifications, for exactly-once assertions.
type countListener struct {
	calls int
	last  Event
}

func (c *countListener) listen(e Event) {
	c.calls++
	c.last = e
}
