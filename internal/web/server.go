package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/peterkuimelis/genesys/internal/catalog"
	"github.com/peterkuimelis/genesys/internal/codec"
	"github.com/peterkuimelis/genesys/internal/deck"
	"github.com/peterkuimelis/genesys/internal/store"
)

//go:embed static
var staticFiles embed.FS

// Server is the deck-builder web server. It owns the only goroutine-shared
// reference to the engine and serializes every engine call behind mu; the
// engine itself is single-threaded.
type Server struct {
	catalog *catalog.Catalog
	store   *store.Store // optional

	mu     sync.Mutex
	engine *deck.Engine

	mux *http.ServeMux
}

// NewServer creates a deck-builder server around an engine. st may be nil,
// in which case the save/load endpoints report failure and no autosaving
// happens.
func NewServer(engine *deck.Engine, cat *catalog.Catalog, st *store.Store, autosave bool) *Server {
	s := &Server{
		catalog: cat,
		store:   st,
		engine:  engine,
		mux:     http.NewServeMux(),
	}
	if autosave && st != nil {
		engine.Subscribe(func(ev deck.Event) {
			body := codec.Serialize(ev.Deck)
			if err := st.SaveCurrent(context.Background(), body); err != nil {
				log.Printf("autosave: %v", err)
			}
		})
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/deck", s.handleDeck)
	s.mux.HandleFunc("POST /api/deck/cards", s.handleAddCard)
	s.mux.HandleFunc("POST /api/deck/cards/remove", s.handleRemoveCard)
	s.mux.HandleFunc("POST /api/deck/clear", s.handleClear)
	s.mux.HandleFunc("PUT /api/deck/name", s.handleRename)
	s.mux.HandleFunc("GET /api/deck/export", s.handleExport)
	s.mux.HandleFunc("POST /api/deck/import", s.handleImport)
	s.mux.HandleFunc("GET /api/decks", s.handleList)
	s.mux.HandleFunc("POST /api/deck/save", s.handleSave)
	s.mux.HandleFunc("POST /api/deck/load", s.handleLoad)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := s.catalog.Search(r.URL.Query().Get("q"))
	if cards == nil {
		cards = []*catalog.Card{}
	}
	writeJSON(w, cards)
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.engine.Snapshot()
	s.mu.Unlock()
	writeJSON(w, BuildDeckView(snap))
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   int    `json:"id"`
		Zone string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	zone, err := ParseZone(req.Zone)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := s.catalog.LookupByID(r.Context(), req.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	s.mu.Lock()
	verdict := s.engine.CanAdd(card, zone)
	if verdict.Allowed {
		s.engine.Add(card, zone)
	}
	s.mu.Unlock()

	writeJSON(w, BuildVerdictView(verdict))
}

func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   int    `json:"id"`
		Zone string `json:"zone"`
		All  bool   `json:"all"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	zone, err := ParseZone(req.Zone)
	if err != nil || zone == deck.ZoneAuto {
		http.Error(w, "zone is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	ok := s.engine.Remove(req.ID, zone, req.All)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "card not in zone", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Zone string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if req.Zone == "" {
		s.engine.Clear()
	} else {
		zone, err := ParseZone(req.Zone)
		if err != nil || zone == deck.ZoneAuto {
			s.mu.Unlock()
			http.Error(w, "unknown zone", http.StatusBadRequest)
			return
		}
		s.engine.ClearZone(zone)
	}
	s.mu.Unlock()

	writeJSON(w, map[string]bool{"ok": true})
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.engine.SetName(req.Name)
	name := s.engine.Name()
	s.mu.Unlock()

	writeJSON(w, map[string]string{"name": name})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	text := codec.Serialize(s.engine.Snapshot())
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	snap, err := codec.Deserialize(r.Context(), string(body), s.catalog)
	if err != nil {
		// Engine state is untouched on a failed import.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.engine.Load(snap)
	view := BuildDeckView(s.engine.Snapshot())
	s.mu.Unlock()

	writeJSON(w, view)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no deck store configured", http.StatusServiceUnavailable)
		return
	}
	decks, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if decks == nil {
		decks = []store.SavedDeck{}
	}
	writeJSON(w, decks)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no deck store configured", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	snap := s.engine.Snapshot()
	s.mu.Unlock()
	if req.Name == "" {
		req.Name = snap.Name
	}

	if err := s.store.Save(r.Context(), req.Name, codec.Serialize(snap)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"name": req.Name})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no deck store configured", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	body, err := s.store.Load(r.Context(), req.Name)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			code = http.StatusNotFound
		}
		http.Error(w, err.Error(), code)
		return
	}

	snap, err := codec.Deserialize(r.Context(), body, s.catalog)
	if err != nil {
		http.Error(w, fmt.Sprintf("saved deck %q: %v", req.Name, err), http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.engine.Load(snap)
	view := BuildDeckView(s.engine.Snapshot())
	s.mu.Unlock()

	writeJSON(w, view)
}

// handleWebSocket streams a deck view to the browser after every change.
// The listener runs while s.mu is held, so it only hands the event to a
// buffered channel; this handler's goroutine does the socket writes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow connections from any origin
	})
	if err != nil {
		log.Printf("websocket accept: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	updates := make(chan deck.Event, 16)

	s.mu.Lock()
	id := s.engine.Subscribe(func(ev deck.Event) {
		select {
		case updates <- ev:
		default: // slow client; it catches up on the next change
		}
	})
	snap := s.engine.Snapshot()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.engine.Unsubscribe(id)
		s.mu.Unlock()
	}()

	// Initial state so the client doesn't wait for a change.
	if err := writeWS(ctx, wsConn, ChangeView{Type: "state", Deck: BuildDeckView(snap)}); err != nil {
		return
	}

	// Detect client close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := wsConn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-updates:
			view := ChangeView{
				Type:    "change",
				Event:   ev.Type.String(),
				Card:    ev.Card,
				Details: ev.Details,
				Deck:    BuildDeckView(ev.Deck),
			}
			if err := writeWS(ctx, wsConn, view); err != nil {
				return
			}
		case <-closed:
			return
		case <-ctx.Done():
			return
		}
	}
}

func writeWS(ctx context.Context, conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// Handler exposes the route mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}
