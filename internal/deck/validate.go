package deck

import "fmt"

// Violations reports every legality problem in a snapshot as a
// human-readable line. The engine's add path can never produce one, but a
// loaded or imported deck can; the UI and the CLI surface these instead of
// refusing the load.
func Violations(s Snapshot) []string {
	var problems []string

	for _, z := range Zones {
		if n := s.Count(z); n > z.Capacity() {
			problems = append(problems,
				fmt.Sprintf("%s holds %d cards (limit %d)", z, n, z.Capacity()))
		}
		for _, e := range s.Zone(z) {
			if e.Quantity > MaxCopies {
				problems = append(problems,
					fmt.Sprintf("%d copies of %s in %s (limit %d)", e.Quantity, e.Card.Name, z, MaxCopies))
			}
		}
	}

	for _, e := range s.Main {
		if Classify(e.Card.Type) == ZoneExtra {
			problems = append(problems,
				fmt.Sprintf("%s is an Extra Deck card but sits in the Main Deck", e.Card.Name))
		}
	}

	return problems
}
