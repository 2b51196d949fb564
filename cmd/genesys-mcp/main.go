package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/genesys/internal/catalog"
	"github.com/peterkuimelis/genesys/internal/deck"
	genesysmcp "github.com/peterkuimelis/genesys/internal/mcp"
	"github.com/peterkuimelis/genesys/internal/score"
)

func main() {
	cardsFile := flag.String("cards", "cards.yaml", "path to card database YAML")
	pointsFile := flag.String("points", "points.yaml", "path to scoring table YAML")
	flag.Parse()

	cat, err := catalog.Load(*cardsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading card database: %v\n", err)
		os.Exit(1)
	}
	table, err := score.Load(*pointsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scoring table: %v\n", err)
		os.Exit(1)
	}

	genesysmcp.StartSession(deck.New(table), cat)

	s := server.NewMCPServer("genesys", "1.0.0")
	genesysmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
