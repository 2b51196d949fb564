package mcp

import (
	"encoding/json"
	"sync"

	"github.com/peterkuimelis/genesys/internal/catalog"
	"github.com/peterkuimelis/genesys/internal/deck"
	"github.com/peterkuimelis/genesys/internal/web"
)

// session is the singleton builder session (one per stdio process).
var session *BuilderSession

// BuilderSession owns the engine being edited over MCP. MCP requests may
// arrive on different goroutines, so every engine call goes through mu.
type BuilderSession struct {
	mu      sync.Mutex
	engine  *deck.Engine
	catalog *catalog.Catalog
}

// StartSession wires the process-wide builder session. Called by main
// before serving.
func StartSession(engine *deck.Engine, cat *catalog.Catalog) {
	session = &BuilderSession{engine: engine, catalog: cat}
}

// withEngine runs fn with the session engine under the session lock.
func (s *BuilderSession) withEngine(fn func(e *deck.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// respondJSON marshals v for a tool result, indented for the AI client.
func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// deckJSON renders the current deck as the same view the web API serves.
func (s *BuilderSession) deckJSON() string {
	s.mu.Lock()
	snap := s.engine.Snapshot()
	s.mu.Unlock()
	return respondJSON(web.BuildDeckView(snap))
}
