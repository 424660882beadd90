package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/set-game/game/engine"
	"github.com/wricardo/set-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Set Card Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Set Card Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Find sets of three cards on the table. For each of the four attributes
(count, shape, shading, color) the three cards must be all the same or all different.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions / get_session: Inspect sessions
- game_state: Show the table, the selection and the piles
- choose: Tap a card by position or ID - requires intent explanation
- deal_three: Deal three more cards
- shuffle: Shuffle the visible cards
- new_game: Start over with a fresh deck
- hint: Reveal one set on the table
- action_history: View past actions
- list_configs: List available configurations
- game_instructions: Full rules and strategy

NOTE: The 'intent' parameter on choose serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func sessionOnlySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": sessionProperty(),
		},
		Required: []string{"session_id"},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, e.g. classic or practice (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionOnlySchema(),
	}, c.handleGetSession)

	// Game commands
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current table, selection and pile sizes",
		InputSchema: sessionOnlySchema(),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "choose",
		Description: "Tap a card on the table. Tapping a selected card deselects it; three selected cards are judged as a set or not. Give either position or card_id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"position": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based table position of the card",
				},
				"card_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the card",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are choosing this card (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleChoose)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "deal_three",
		Description: "Deal three more cards. A matched set is discarded first and the new cards fill its slots.",
		InputSchema: sessionOnlySchema(),
	}, c.handleDeal)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "shuffle",
		Description: "Shuffle the visible cards",
		InputSchema: sessionOnlySchema(),
	}, c.handleShuffle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game with a freshly shuffled deck",
		InputSchema: sessionOnlySchema(),
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Show the positions of one set on the table, if there is one",
		InputSchema: sessionOnlySchema(),
	}, c.handleHint)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get the action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configID, _ := arguments(request)["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleChoose(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	cardID, _ := args["card_id"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = args["intent"]

	body := map[string]interface{}{}
	switch position := args["position"].(type) {
	case float64:
		body["position"] = int(position)
	case int:
		body["position"] = position
	}
	if cardID != "" {
		body["card_id"] = cardID
	}
	if len(body) == 0 {
		return mcp.NewToolResultError("position or card_id is required"), nil
	}

	return c.runCommand(ctx, sessionPath(sessionID, "/choose"), body)
}

func (c *Client) handleDeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.runCommand(ctx, sessionPath(sessionID, "/deal"), nil)
}

func (c *Client) handleShuffle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.runCommand(ctx, sessionPath(sessionID, "/shuffle"), nil)
}

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)
	return c.runCommand(ctx, sessionPath(sessionID, "/new-game"), nil)
}

func (c *Client) runCommand(ctx context.Context, path string, body interface{}) (*mcp.CallToolResult, error) {
	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var hint service.HintResult
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/hint"), nil, &hint); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHint(&hint)), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprintf("%d", int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		seeded := ""
		if config.Seeded {
			seeded = ", fixed deal order"
		}
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Table: %d cards%s\n\n",
			config.Name, config.ConfigID, config.Description, config.TableSize, seeded)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Set Card Game - Complete Instructions

THE DECK:
81 cards, one for every combination of four attributes:
• Count: one, two, three
• Shape: diamond, squiggle, oval
• Shading: solid, striped, open
• Color: red, green, purple

WHAT IS A SET:
Three cards where, for EACH attribute on its own, the values are all the same
or all different. If two cards share a value and the third does not, it is not a set.

Example set:     one red solid diamond, two red striped diamonds, three red open diamonds
  count all different, color all same, shading all different, shape all same
Example non-set: one red solid diamond, two red solid diamonds, three green solid diamonds
  color has two red and one green

PLAYING:
• The table starts with twelve cards (the config may change this).
• choose a card by its zero-based position or ID. Choosing a selected card deselects it.
• With three cards selected the game reports "matched" or "mismatched".
• After a match, the next choose (or deal_three) discards the three cards and
  refills their slots from the draw pile.
• After a mismatch, the next choose clears the selection and starts over with that card.
• deal_three adds three cards when you are stuck. It does nothing once the draw pile is empty.
• The game is over when the draw pile is empty and no set is left on the table.

STRATEGY:
• For any two cards there is exactly one card that completes the set.
  Pick two cards, work out the missing third, and scan the table for it.
• With twelve cards there is no set about 3% of the time; deal three more then.
• hint shows the positions of one set if you are stuck.

Good luck finding sets!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatters

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nLast accessed: %s\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339))
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return result
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "Game state: unavailable"
	}

	var b strings.Builder
	if state.GameOver {
		b.WriteString("🏁 GAME OVER\n")
	}
	fmt.Fprintf(&b, "Game #%d (%s)\n", state.GameNumber, state.ConfigName)
	fmt.Fprintf(&b, "Draw pile: %d | Discarded: %d | Sets found: %d | Sets on table: %d\n",
		state.DrawPileCount, len(state.Discarded), len(state.Discarded)/engine.SetSize, state.SetsOnTable)
	fmt.Fprintf(&b, "Selection: %s\n", formatSelection(state))
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}

	b.WriteString("\nTable:\n")
	b.WriteString(formatTable(state))
	return b.String()
}

func formatSelection(state *engine.GameState) string {
	if len(state.Selected) == 0 {
		return "none"
	}
	positions := make([]string, 0, len(state.Selected))
	for _, card := range state.Selected {
		positions = append(positions, fmt.Sprintf("%d", positionOf(state.Visible, card.ID)))
	}
	return fmt.Sprintf("%s (positions %s)", state.Outcome, strings.Join(positions, ", "))
}

func formatTable(state *engine.GameState) string {
	var b strings.Builder
	for i, card := range state.Visible {
		marker := " "
		if positionOf(state.Selected, card.ID) >= 0 {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s[%2d] %s  (id %s)\n", marker, i, card, card.ID)
	}
	return b.String()
}

func positionOf(cards []engine.Card, id engine.CardID) int {
	for i, card := range cards {
		if card.ID == id {
			return i
		}
	}
	return -1
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Applied {
		b.WriteString("✓ ")
	} else {
		b.WriteString("✗ No change: ")
	}
	b.WriteString(result.Message)
	b.WriteString("\n")

	for _, event := range result.Events {
		fmt.Fprintf(&b, "  - %s: %s\n", event.Type, event.Message)
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHint(hint *service.HintResult) string {
	if !hint.Found {
		if hint.Message != "" {
			return hint.Message
		}
		return "No set on the table. Deal three more cards."
	}

	var b strings.Builder
	positions := make([]string, len(hint.Positions))
	for i, p := range hint.Positions {
		positions[i] = fmt.Sprintf("%d", p)
	}
	fmt.Fprintf(&b, "Set at positions %s (%d sets on the table)\n", strings.Join(positions, ", "), hint.SetsOnTable)
	for _, card := range hint.Cards {
		fmt.Fprintf(&b, "  - %s\n", card)
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Action History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, entry := range history.Actions {
		status := "✓"
		if !entry.Applied {
			status = "✗"
		}
		line := fmt.Sprintf("%d. [game %d] %s %s", entry.ActionNumber, entry.GameNumber, entry.Action, status)
		if entry.CardID != "" {
			line += " card " + entry.CardID
		}
		result += fmt.Sprintf("%s [%s, table %d, draw %d, discard %d]\n",
			line, entry.Outcome, entry.VisibleCount, entry.DrawPileCount, entry.DiscardCount)
	}

	return result
}
