package web

import (
	"fmt"

	"github.com/peterkuimelis/genesys/internal/deck"
)

// JSON views for the HTTP API and the websocket change feed.

// EntryView is one stacked card in a zone.
type EntryView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// DeckView is the full deck state as served to the client.
type DeckView struct {
	Name  string      `json:"name"`
	Score int         `json:"score"`
	Main  []EntryView `json:"main"`
	Extra []EntryView `json:"extra"`
	Side  []EntryView `json:"side"`
}

// VerdictView is the result of an add attempt.
type VerdictView struct {
	Allowed   bool   `json:"allowed"`
	Reason    string `json:"reason,omitempty"`
	Suggested string `json:"suggested_zone,omitempty"`
}

// ChangeView is one websocket frame: either the initial state or a change.
type ChangeView struct {
	Type    string   `json:"type"` // "state" or "change"
	Event   string   `json:"event,omitempty"`
	Card    string   `json:"card,omitempty"`
	Details string   `json:"details,omitempty"`
	Deck    DeckView `json:"deck"`
}

// BuildDeckView converts an engine snapshot to its JSON view.
func BuildDeckView(s deck.Snapshot) DeckView {
	return DeckView{
		Name:  s.Name,
		Score: s.Score,
		Main:  buildEntries(s.Main),
		Extra: buildEntries(s.Extra),
		Side:  buildEntries(s.Side),
	}
}

func buildEntries(entries []deck.Entry) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			ID:       e.Card.ID,
			Name:     e.Card.Name,
			Type:     e.Card.Type,
			Quantity: e.Quantity,
		})
	}
	return views
}

// BuildVerdictView converts a rule-check verdict to its JSON view.
func BuildVerdictView(v deck.Verdict) VerdictView {
	view := VerdictView{Allowed: v.Allowed, Reason: v.Reason}
	if v.HasSuggestion {
		view.Suggested = ZoneName(v.Suggested)
	}
	return view
}

// ZoneName is the wire name of a zone ("main", "extra", "side").
func ZoneName(z deck.Zone) string {
	switch z {
	case deck.ZoneMain:
		return "main"
	case deck.ZoneExtra:
		return "extra"
	case deck.ZoneSide:
		return "side"
	default:
		return ""
	}
}

// ParseZone parses a wire zone name. The empty string (or "auto") means
// "let the classifier pick".
func ParseZone(name string) (deck.Zone, error) {
	switch name {
	case "", "auto":
		return deck.ZoneAuto, nil
	case "main":
		return deck.ZoneMain, nil
	case "extra":
		return deck.ZoneExtra, nil
	case "side":
		return deck.ZoneSide, nil
	default:
		return deck.ZoneAuto, fmt.Errorf("unknown zone %q", name)
	}
}
