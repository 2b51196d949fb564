package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/genesys/internal/codec"
	"github.com/peterkuimelis/genesys/internal/deck"
	"github.com/peterkuimelis/genesys/internal/web"
)

// RegisterTools adds all deck-building tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(searchCardsTool(), handleSearchCards)
	s.AddTool(getDeckTool(), handleGetDeck)
	s.AddTool(addCardTool(), handleAddCard)
	s.AddTool(removeCardTool(), handleRemoveCard)
	s.AddTool(setDeckNameTool(), handleSetDeckName)
	s.AddTool(clearDeckTool(), handleClearDeck)
	s.AddTool(exportDeckTool(), handleExportDeck)
	s.AddTool(importDeckTool(), handleImportDeck)
}

// --- Tool definitions ---

func searchCardsTool() mcp.Tool {
	return mcp.NewTool("search_cards",
		mcp.WithDescription("Search the card catalog by name, type or card text. Returns matching cards with their ids."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search text (case-insensitive substring match)")),
	)
}

func getDeckTool() mcp.Tool {
	return mcp.NewTool("get_deck",
		mcp.WithDescription("Get the current deck: name, Genesys score, and the Main/Extra/Side zone contents. Read-only."),
	)
}

func addCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Add one copy of a card to the deck. Without a zone the card's type decides between Main and Extra; "+
			"a rejected add may include a suggested zone to retry with explicitly."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Card id from search_cards")),
		mcp.WithString("zone", mcp.Description("Target zone: 'main', 'extra' or 'side'. Omit to classify automatically.")),
	)
}

func removeCardTool() mcp.Tool {
	return mcp.NewTool("remove_card",
		mcp.WithDescription("Remove one copy (or every copy) of a card from a zone."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Card id")),
		mcp.WithString("zone", mcp.Required(), mcp.Description("Zone: 'main', 'extra' or 'side'")),
		mcp.WithBoolean("all", mcp.Description("Remove every copy instead of just one")),
	)
}

func setDeckNameTool() mcp.Tool {
	return mcp.NewTool("set_deck_name",
		mcp.WithDescription("Rename the deck. A blank name resets it to the default."),
		mcp.WithString("name", mcp.Required(), mcp.Description("New deck name")),
	)
}

func clearDeckTool() mcp.Tool {
	return mcp.NewTool("clear_deck",
		mcp.WithDescription("Empty one zone, or the whole deck if no zone is given."),
		mcp.WithString("zone", mcp.Description("Zone to clear: 'main', 'extra' or 'side'. Omit to clear everything.")),
	)
}

func exportDeckTool() mcp.Tool {
	return mcp.NewTool("export_deck",
		mcp.WithDescription("Export the deck in the canonical text deck-list format."),
	)
}

func importDeckTool() mcp.Tool {
	return mcp.NewTool("import_deck",
		mcp.WithDescription("Replace the deck with one parsed from deck-list text. Fails without touching the deck if any card id is unknown."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Deck list in the canonical text format")),
	)
}

// --- Tool handlers ---

func handleSearchCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}
	cards := session.catalog.Search(request.GetString("query", ""))
	return mcp.NewToolResultText(respondJSON(cards)), nil
}

func handleGetDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}
	return mcp.NewToolResultText(session.deckJSON()), nil
}

func handleAddCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}

	id := request.GetInt("id", 0)
	zone, err := web.ParseZone(request.GetString("zone", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}

	card, err := session.catalog.LookupByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}

	var verdict deck.Verdict
	session.withEngine(func(e *deck.Engine) {
		verdict = e.CanAdd(card, zone)
		if verdict.Allowed {
			e.Add(card, zone)
		}
	})
	if !verdict.Allowed {
		return mcp.NewToolResultText(respondJSON(web.BuildVerdictView(verdict))), nil
	}
	return mcp.NewToolResultText(session.deckJSON()), nil
}

func handleRemoveCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}

	id := request.GetInt("id", 0)
	zone, err := web.ParseZone(request.GetString("zone", ""))
	if err != nil || zone == deck.ZoneAuto {
		return mcp.NewToolResultError("zone must be 'main', 'extra' or 'side'"), nil
	}
	all := request.GetBool("all", false)

	removed := false
	session.withEngine(func(e *deck.Engine) {
		removed = e.Remove(id, zone, all)
	})
	if !removed {
		return mcp.NewToolResultErrorf("card %d is not in the %s", id, zone), nil
	}
	return mcp.NewToolResultText(session.deckJSON()), nil
}

func handleSetDeckName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}
	session.withEngine(func(e *deck.Engine) {
		e.SetName(request.GetString("name", ""))
	})
	return mcp.NewToolResultText(session.deckJSON()), nil
}

func handleClearDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}

	name := request.GetString("zone", "")
	zone, err := web.ParseZone(name)
	if err != nil {
		return mcp.NewToolResultErrorf("%v", err), nil
	}

	session.withEngine(func(e *deck.Engine) {
		if zone == deck.ZoneAuto {
			e.Clear()
		} else {
			e.ClearZone(zone)
		}
	})
	return mcp.NewToolResultText(session.deckJSON()), nil
}

func handleExportDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}
	var text string
	session.withEngine(func(e *deck.Engine) {
		text = codec.Serialize(e.Snapshot())
	})
	return mcp.NewToolResultText(text), nil
}

func handleImportDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if session == nil {
		return mcp.NewToolResultError("No builder session. This is a server wiring bug."), nil
	}

	snap, err := codec.Deserialize(ctx, request.GetString("text", ""), session.catalog)
	if err != nil {
		return mcp.NewToolResultErrorf("import failed, deck unchanged: %v", err), nil
	}
	session.withEngine(func(e *deck.Engine) {
		e.Load(snap)
	})
	return mcp.NewToolResultText(session.deckJSON()), nil
}
