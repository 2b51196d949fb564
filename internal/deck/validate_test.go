package deck

import (
	"strings"
	"testing"
)

func TestViolationsCleanDeck(t *testing.T) {
	s := Snapshot{
		Main:  []Entry{{Card: monster(1, "A"), Quantity: 3}, {Card: spell(2, "B"), Quantity: 1}},
		Extra: []Entry{{Card: fusionMonster(3, "C"), Quantity: 2}},
	}
	if got := Violations(s); len(got) != 0 {
		t.Errorf("violations = %v, want none", got)
	}
}

func TestViolations(t *testing.T) {
	// Side deck over capacity: 6 distinct cards at 3 copies = 18 > 15.
	var side []Entry
	for i := 0; i < 6; i++ {
		side = append(side, Entry{Card: monster(10+i, "Side Filler"), Quantity: 3})
	}

	s := Snapshot{
		Main: []Entry{
			{Card: monster(1, "A"), Quantity: 4},        // over the copy cap
			{Card: fusionMonster(2, "C"), Quantity: 1},  // extra-deck card in main
		},
		Side: side,
	}

	got := Violations(s)
	if len(got) != 3 {
		t.Fatalf("violations = %v, want 3", got)
	}

	wantSubstrings := []string{"copies of A", "Side Deck holds 18", "Extra Deck card"}
	for _, want := range wantSubstrings {
		found := false
		for _, p := range got {
			if strings.Contains(p, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no violation mentioning %q in %v", want, got)
		}
	}
}
