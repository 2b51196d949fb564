package deck

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/genesys/internal/catalog"
)

// ScoringTable maps card names to Genesys point values. Unknown names are
// worth 0.
type ScoringTable interface {
	PointsFor(name string) int
}

// Engine owns the deck being edited: the three zone collections, the copy
// and capacity rules, the score, and the change listeners.
//
// The engine is single-threaded. A host that calls it from multiple
// goroutines must serialize all mutating operations itself.
type Engine struct {
	name  string
	zones [3][]Entry
	table ScoringTable

	subs    []subscription
	nextSub int
	seq     int
}

type subscription struct {
	id int
	fn Listener
}

// New creates an empty deck engine. table may be nil, in which case every
// card scores 0.
func New(table ScoringTable) *Engine {
	return &Engine{name: DefaultName, table: table}
}

// resolve picks the target zone: the explicit one if given, else the
// classifier's default.
func (e *Engine) resolve(card *catalog.Card, target Zone) Zone {
	if target == ZoneAuto {
		return Classify(card.Type)
	}
	return target
}

func (e *Engine) find(z Zone, cardID int) *Entry {
	for i := range e.zones[z] {
		if e.zones[z][i].Card.ID == cardID {
			return &e.zones[z][i]
		}
	}
	return nil
}

func zoneCount(entries []Entry) int {
	total := 0
	for _, en := range entries {
		total += en.Quantity
	}
	return total
}

// CanAdd reports whether a copy of card may be added. With target ZoneAuto
// the classifier picks the zone; a card that classifies outside the Main
// Deck is rejected with a suggested zone so the caller can retry with an
// explicit target. An explicit target is authoritative and skips
// classification entirely.
func (e *Engine) CanAdd(card *catalog.Card, target Zone) Verdict {
	if card == nil {
		return deny("no card given")
	}

	resolved := e.resolve(card, target)
	if target == ZoneAuto && resolved != ZoneMain {
		return Verdict{
			Reason:        fmt.Sprintf("%s belongs in the %s", card.Name, resolved),
			Suggested:     resolved,
			HasSuggestion: true,
		}
	}

	if zoneCount(e.zones[resolved])+1 > resolved.Capacity() {
		return deny(fmt.Sprintf("%s is full (limit %d)", resolved, resolved.Capacity()))
	}
	if ent := e.find(resolved, card.ID); ent != nil && ent.Quantity >= MaxCopies {
		return deny(fmt.Sprintf("only %d copies of %s allowed", MaxCopies, card.Name))
	}
	return allow()
}

// Add adds one copy of card to the resolved zone. It re-validates via
// CanAdd at call time and returns false without mutating on any rule
// violation.
func (e *Engine) Add(card *catalog.Card, target Zone) bool {
	if v := e.CanAdd(card, target); !v.Allowed {
		return false
	}

	z := e.resolve(card, target)
	if ent := e.find(z, card.ID); ent != nil {
		ent.Quantity++
	} else {
		e.zones[z] = append(e.zones[z], Entry{Card: card, Quantity: 1})
	}
	e.notify(Event{
		Type:    EventCardAdded,
		Card:    card.Name,
		Zone:    z,
		Details: fmt.Sprintf("added %s to %s", card.Name, z),
	})
	return true
}

// AddByID adds one more copy of a card already present somewhere in the
// deck. It does not consult the catalog: if no zone holds an entry for id,
// it returns false.
func (e *Engine) AddByID(id int, target Zone) bool {
	for _, z := range Zones {
		if ent := e.find(z, id); ent != nil {
			return e.Add(ent.Card, target)
		}
	}
	return false
}

// Remove takes one copy (or with all set, every copy) of the card out of
// the zone. An entry dropping to 0 copies is deleted; the order of the
// remaining entries is preserved.
func (e *Engine) Remove(id int, z Zone, all bool) bool {
	if z < ZoneMain || z > ZoneSide {
		return false
	}
	for i := range e.zones[z] {
		ent := &e.zones[z][i]
		if ent.Card.ID != id {
			continue
		}
		name := ent.Card.Name
		if all || ent.Quantity == 1 {
			e.zones[z] = append(e.zones[z][:i], e.zones[z][i+1:]...)
		} else {
			ent.Quantity--
		}
		e.notify(Event{
			Type:    EventCardRemoved,
			Card:    name,
			Zone:    z,
			Details: fmt.Sprintf("removed %s from %s", name, z),
		})
		return true
	}
	return false
}

// ClearZone empties one zone.
func (e *Engine) ClearZone(z Zone) {
	e.zones[z] = nil
	e.notify(Event{
		Type:    EventZoneCleared,
		Zone:    z,
		Details: fmt.Sprintf("cleared %s", z),
	})
}

// Clear empties all three zones.
func (e *Engine) Clear() {
	for _, z := range Zones {
		e.zones[z] = nil
	}
	e.notify(Event{Type: EventDeckCleared, Details: "cleared deck"})
}

// SetName renames the deck. Blank names normalize to DefaultName.
func (e *Engine) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	e.name = name
	e.notify(Event{
		Type:    EventRenamed,
		Details: fmt.Sprintf("renamed deck to %q", name),
	})
}

// Load wholesale-replaces the deck from a snapshot. The snapshot is assumed
// structurally valid; producers (the codec, the store) are responsible for
// its shape. An imported deck may exceed the usual limits and is loaded
// as-is.
func (e *Engine) Load(s Snapshot) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = DefaultName
	}
	e.name = name
	for _, z := range Zones {
		e.zones[z] = append([]Entry(nil), s.Zone(z)...)
	}
	e.notify(Event{
		Type:    EventLoaded,
		Details: fmt.Sprintf("loaded deck %q", name),
	})
}

// Name returns the deck's display name.
func (e *Engine) Name() string {
	return e.name
}

// Score returns the deck's total Genesys points: the sum over every entry
// in all three zones of the card's point value times its quantity.
func (e *Engine) Score() int {
	if e.table == nil {
		return 0
	}
	total := 0
	for _, z := range Zones {
		for _, ent := range e.zones[z] {
			total += e.table.PointsFor(ent.Card.Name) * ent.Quantity
		}
	}
	return total
}

// Snapshot returns an immutable copy of the current deck state, score
// included.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Name:  e.name,
		Main:  append([]Entry(nil), e.zones[ZoneMain]...),
		Extra: append([]Entry(nil), e.zones[ZoneExtra]...),
		Side:  append([]Entry(nil), e.zones[ZoneSide]...),
		Score: e.Score(),
	}
}

// Subscribe registers a change listener and returns its id. Listeners run
// synchronously in registration order, once per successful mutation, after
// the mutation and score recomputation are complete.
func (e *Engine) Subscribe(fn Listener) int {
	e.nextSub++
	e.subs = append(e.subs, subscription{id: e.nextSub, fn: fn})
	return e.nextSub
}

// Unsubscribe removes the listener registered under id.
func (e *Engine) Unsubscribe(id int) {
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
}

func (e *Engine) notify(ev Event) {
	e.seq++
	ev.Seq = e.seq
	ev.Deck = e.Snapshot()
	for _, s := range e.subs {
		s.fn(ev)
	}
}
