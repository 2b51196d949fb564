package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testCards() []Card {
	return []Card{
		{ID: 1, Name: "Gemini Elf", Type: "Normal Monster", ATK: 1900, DEF: 900},
		{ID: 2, Name: "Pot of Greed", Type: "Spell Card", Description: "Draw 2 cards."},
		{ID: 3, Name: "Thousand-Eyes Restrict", Type: "Fusion Monster"},
	}
}

func TestLookupByID(t *testing.T) {
	cat, err := New(testCards())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	card, err := cat.LookupByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if card.Name != "Pot of Greed" {
		t.Errorf("name = %q", card.Name)
	}

	_, err = cat.LookupByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNewRejectsBadIDs(t *testing.T) {
	if _, err := New([]Card{{ID: 0, Name: "Zero"}}); err == nil {
		t.Error("expected error for id 0")
	}
	if _, err := New([]Card{{ID: 5, Name: "A"}, {ID: 5, Name: "B"}}); err == nil {
		t.Error("expected error for duplicate id")
	}
}

func TestSearch(t *testing.T) {
	cat, err := New(testCards())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"gemini", 1},
		{"GEMINI ELF", 1},
		{"monster", 2},   // type match: Normal Monster + Fusion Monster
		{"draw 2", 1},    // description match
		{"", 3},          // empty query returns everything
		{"zzz", 0},
	}
	for _, tt := range tests {
		if got := len(cat.Search(tt.query)); got != tt.want {
			t.Errorf("Search(%q) = %d results, want %d", tt.query, got, tt.want)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	data := `cards:
  - id: 1
    name: Gemini Elf
    type: Normal Monster
    atk: 1900
    def: 900
  - id: 2
    name: Pot of Greed
    type: Spell Card
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("len = %d, want 2", cat.Len())
	}
	card, err := cat.LookupByID(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if card.ATK != 1900 {
		t.Errorf("atk = %d", card.ATK)
	}
}
