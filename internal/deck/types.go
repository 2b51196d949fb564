package deck

import "github.com/peterkuimelis/genesys/internal/catalog"

// --- Zones ---

type Zone int

const (
	ZoneMain Zone = iota
	ZoneExtra
	ZoneSide
)

// ZoneAuto is the sentinel target meaning "let the classifier pick".
const ZoneAuto Zone = -1

func (z Zone) String() string {
	switch z {
	case ZoneMain:
		return "Main Deck"
	case ZoneExtra:
		return "Extra Deck"
	case ZoneSide:
		return "Side Deck"
	default:
		return "Unknown"
	}
}

// Capacity returns the maximum total number of copies the zone may hold.
func (z Zone) Capacity() int {
	if z == ZoneMain {
		return 60
	}
	return 15
}

// Zones lists the three deck zones in canonical order.
var Zones = [3]Zone{ZoneMain, ZoneExtra, ZoneSide}

// MaxCopies is the per-card copy limit within a zone.
const MaxCopies = 3

// DefaultName is used when a deck has no (or a blank) name.
const DefaultName = "My Deck"

// --- Entries and snapshots ---

// Entry is one card stacked in a zone.
type Entry struct {
	Card     *catalog.Card
	Quantity int
}

// Snapshot is an immutable copy of the full deck state, including the
// derived score. Listeners and callers receive snapshots, never the
// engine's internal slices.
type Snapshot struct {
	Name  string
	Main  []Entry
	Extra []Entry
	Side  []Entry
	Score int
}

// Zone returns the entry list for the given zone.
func (s Snapshot) Zone(z Zone) []Entry {
	switch z {
	case ZoneMain:
		return s.Main
	case ZoneExtra:
		return s.Extra
	default:
		return s.Side
	}
}

// Count returns the total number of copies in the given zone.
func (s Snapshot) Count(z Zone) int {
	total := 0
	for _, e := range s.Zone(z) {
		total += e.Quantity
	}
	return total
}

// --- Rule check results ---

// Verdict is the structured result of a rule check. Rule violations are
// values, not errors: a full zone or an exhausted copy limit is expected
// interaction, not a fault.
type Verdict struct {
	Allowed bool
	Reason  string

	// Suggested is set (with HasSuggestion) when the card was aimed at the
	// classifier's default path but belongs in a different zone. The caller
	// may retry with the suggested zone as an explicit target.
	Suggested     Zone
	HasSuggestion bool
}

func allow() Verdict {
	return Verdict{Allowed: true}
}

func deny(reason string) Verdict {
	return Verdict{Reason: reason}
}
