package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/genesys/internal/catalog"
	"github.com/peterkuimelis/genesys/internal/codec"
	"github.com/peterkuimelis/genesys/internal/deck"
	"github.com/peterkuimelis/genesys/internal/score"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "score":
		runScore(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "fmt":
		runFmt(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  genesys-cli score    --deck FILE [--cards FILE] [--points FILE]")
	fmt.Println("  genesys-cli validate --deck FILE [--cards FILE]")
	fmt.Println("  genesys-cli fmt      --deck FILE [--cards FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  score      Compute the deck's Genesys point total")
	fmt.Println("  validate   Report capacity and copy-limit violations")
	fmt.Println("  fmt        Rewrite the deck list in canonical form")
}

// loadDeckList reads a deck list file and resolves it against the catalog.
func loadDeckList(deckFile, cardsFile string) (deck.Snapshot, error) {
	cat, err := catalog.Load(cardsFile)
	if err != nil {
		return deck.Snapshot{}, fmt.Errorf("load card database: %w", err)
	}
	text, err := os.ReadFile(deckFile)
	if err != nil {
		return deck.Snapshot{}, err
	}
	return codec.Deserialize(context.Background(), string(text), cat)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runScore(args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	deckFile := fs.String("deck", "deck.ydk", "path to deck list file")
	cardsFile := fs.String("cards", "cards.yaml", "path to card database YAML")
	pointsFile := fs.String("points", "points.yaml", "path to scoring table YAML")
	fs.Parse(args)

	snap, err := loadDeckList(*deckFile, *cardsFile)
	if err != nil {
		fatal(err)
	}
	table, err := score.Load(*pointsFile)
	if err != nil {
		fatal(err)
	}

	total := 0
	for _, z := range deck.Zones {
		for _, e := range snap.Zone(z) {
			pts := table.PointsFor(e.Card.Name) * e.Quantity
			if pts > 0 {
				fmt.Printf("%4d  %d× %s (%s)\n", pts, e.Quantity, e.Card.Name, z)
			}
			total += pts
		}
	}
	fmt.Printf("\n%s: %d points\n", snap.Name, total)
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	deckFile := fs.String("deck", "deck.ydk", "path to deck list file")
	cardsFile := fs.String("cards", "cards.yaml", "path to card database YAML")
	fs.Parse(args)

	snap, err := loadDeckList(*deckFile, *cardsFile)
	if err != nil {
		fatal(err)
	}

	problems := deck.Violations(snap)
	if len(problems) == 0 {
		fmt.Printf("%s: ok (%d main, %d extra, %d side)\n", snap.Name,
			snap.Count(deck.ZoneMain), snap.Count(deck.ZoneExtra), snap.Count(deck.ZoneSide))
		return
	}
	for _, p := range problems {
		fmt.Println(p)
	}
	os.Exit(1)
}

func runFmt(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	deckFile := fs.String("deck", "deck.ydk", "path to deck list file")
	cardsFile := fs.String("cards", "cards.yaml", "path to card database YAML")
	fs.Parse(args)

	snap, err := loadDeckList(*deckFile, *cardsFile)
	if err != nil {
		fatal(err)
	}
	fmt.Print(codec.Serialize(snap))
}
