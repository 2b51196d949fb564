package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/genesys/internal/catalog"
	"github.com/peterkuimelis/genesys/internal/codec"
	"github.com/peterkuimelis/genesys/internal/config"
	"github.com/peterkuimelis/genesys/internal/deck"
	"github.com/peterkuimelis/genesys/internal/score"
	"github.com/peterkuimelis/genesys/internal/store"
	"github.com/peterkuimelis/genesys/internal/web"
)

func main() {
	configPath := flag.String("config", "genesys.toml", "path to TOML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	catalogPath := flag.String("cards", "", "path to card database YAML (overrides config)")
	scoringPath := flag.String("points", "", "path to scoring table YAML (overrides config)")
	storePath := flag.String("db", "", "path to deck store (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}
	if *scoringPath != "" {
		cfg.Scoring.Path = *scoringPath
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading card database: %v\n", err)
		os.Exit(1)
	}
	log.Printf("loaded %d cards from %s", cat.Len(), cfg.Catalog.Path)

	table, err := score.Load(cfg.Scoring.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scoring table: %v\n", err)
		os.Exit(1)
	}
	log.Printf("loaded %d point values from %s", table.Len(), cfg.Scoring.Path)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening deck store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	engine := deck.New(table)
	restoreCurrent(engine, st, cat)

	srv := web.NewServer(engine, cat, st, cfg.Store.Autosave)
	log.Printf("genesys deck builder listening on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// restoreCurrent loads the autosaved deck into a fresh engine, if one
// exists and still resolves against the catalog.
func restoreCurrent(engine *deck.Engine, st *store.Store, cat *catalog.Catalog) {
	ctx := context.Background()
	body, err := st.LoadCurrent(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("Warning: could not read autosaved deck: %v", err)
		return
	}
	snap, err := codec.Deserialize(ctx, body, cat)
	if err != nil {
		log.Printf("Warning: could not restore autosaved deck: %v", err)
		return
	}
	engine.Load(snap)
	log.Printf("restored autosaved deck %q", snap.Name)
}
