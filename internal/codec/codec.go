// Package codec implements the canonical text deck-list format: a metadata
// line, the #main and #extra section markers, the !side marker, and one card
// id per copy.
package codec

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterkuimelis/genesys/internal/catalog"
	"github.com/peterkuimelis/genesys/internal/deck"
)

const (
	markerCreatedBy = "#created by"
	markerMain      = "#main"
	markerExtra     = "#extra"
	markerSide      = "!side"
)

// Serialize emits the deck in the canonical interchange format: the
// metadata line with the deck name, then each zone in Main/Extra/Side order
// with one id line per copy. Entry order follows the deck's insertion
// order; copies of a card are emitted consecutively.
func Serialize(s deck.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", markerCreatedBy, s.Name)

	writeZone := func(marker string, entries []deck.Entry) {
		sb.WriteString(marker)
		sb.WriteByte('\n')
		for _, e := range entries {
			for i := 0; i < e.Quantity; i++ {
				sb.WriteString(strconv.Itoa(e.Card.ID))
				sb.WriteByte('\n')
			}
		}
	}
	writeZone(markerMain, s.Main)
	writeZone(markerExtra, s.Extra)
	writeZone(markerSide, s.Side)

	return sb.String()
}

// Deserialize parses a deck list and resolves every id through the catalog
// provider. Section markers switch the target zone, blank and unparseable
// lines are skipped, and multiplicities collapse in first-seen order. An id
// the provider cannot resolve fails the whole import; no partial deck is
// returned.
//
// The copy and capacity limits are deliberately not enforced here: an
// imported deck may exceed them and is surfaced as-is.
func Deserialize(ctx context.Context, text string, provider catalog.Provider) (deck.Snapshot, error) {
	var ids [3][]int
	name := ""
	current := deck.ZoneMain

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, markerCreatedBy):
			name = strings.TrimSpace(line[len(markerCreatedBy):])
		case strings.HasPrefix(lower, markerMain):
			current = deck.ZoneMain
		case strings.HasPrefix(lower, markerExtra):
			current = deck.ZoneExtra
		case strings.HasPrefix(lower, markerSide):
			current = deck.ZoneSide
		case lower[0] == '#' || lower[0] == '!':
			// unrecognized marker or comment
		default:
			id, err := strconv.Atoi(line)
			if err != nil {
				continue
			}
			ids[current] = append(ids[current], id)
		}
	}

	resolved := make(map[int]*catalog.Card)
	snapshot := deck.Snapshot{Name: name}

	zones := [3]*[]deck.Entry{&snapshot.Main, &snapshot.Extra, &snapshot.Side}
	for z, target := range zones {
		index := make(map[int]int) // card id → entry position
		for _, id := range ids[z] {
			if pos, seen := index[id]; seen {
				(*target)[pos].Quantity++
				continue
			}
			card, ok := resolved[id]
			if !ok {
				var err error
				card, err = provider.LookupByID(ctx, id)
				if err != nil {
					return deck.Snapshot{}, fmt.Errorf("resolve card id %d: %w", id, err)
				}
				resolved[id] = card
			}
			index[id] = len(*target)
			*target = append(*target, deck.Entry{Card: card, Quantity: 1})
		}
	}

	return snapshot, nil
}
