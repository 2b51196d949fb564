package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a card id has no entry in the catalog.
var ErrNotFound = errors.New("card not found")

// Card is the static description of a single card, as loaded from the
// catalog database file.
type Card struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"` // e.g. "Effect Monster", "Spell Card", "Fusion Monster"
	Race        string `yaml:"race,omitempty" json:"race,omitempty"`
	Attribute   string `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	Level       int    `yaml:"level,omitempty" json:"level,omitempty"`
	ATK         int    `yaml:"atk,omitempty" json:"atk,omitempty"`
	DEF         int    `yaml:"def,omitempty" json:"def,omitempty"`
	Description string `yaml:"desc,omitempty" json:"desc,omitempty"`
}

func (c *Card) String() string {
	return c.Name
}

// Provider resolves card ids to card records. The HTTP-backed provider used
// in production and the in-memory Catalog both satisfy it; the codec only
// depends on this interface.
type Provider interface {
	LookupByID(ctx context.Context, id int) (*Card, error)
}

// CatalogFile is the top-level YAML structure of the card database.
type CatalogFile struct {
	Cards []Card `yaml:"cards"`
}

// Catalog is an in-memory card database with id lookup and text search.
type Catalog struct {
	cards []Card
	byID  map[int]*Card
}

// Load reads a YAML card database from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	return New(cf.Cards)
}

// New builds a catalog from already-parsed card records.
func New(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards: cards,
		byID:  make(map[int]*Card, len(cards)),
	}
	for i := range c.cards {
		card := &c.cards[i]
		if card.ID <= 0 {
			return nil, fmt.Errorf("card %q: invalid id %d", card.Name, card.ID)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %d", card.ID)
		}
		c.byID[card.ID] = card
	}
	return c, nil
}

// LookupByID implements Provider.
func (c *Catalog) LookupByID(ctx context.Context, id int) (*Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	card, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return card, nil
}

// Search returns all cards whose name, type or text contains the query
// (case-insensitive). An empty query returns every card.
func (c *Catalog) Search(query string) []*Card {
	q := strings.ToLower(strings.TrimSpace(query))
	var result []*Card
	for i := range c.cards {
		card := &c.cards[i]
		if q == "" ||
			strings.Contains(strings.ToLower(card.Name), q) ||
			strings.Contains(strings.ToLower(card.Type), q) ||
			strings.Contains(strings.ToLower(card.Description), q) {
			result = append(result, card)
		}
	}
	return result
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}
