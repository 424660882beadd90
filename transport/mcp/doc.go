// Package mcp exposes the Set card game to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API and the JSON response is rendered as plain text for
// the agent. It can be served over stdio or mounted on the HTTP server at
// /mcp.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state: table with zero-based positions, selection and pile sizes
//   - choose: tap a card by position or card_id, with an optional intent
//   - deal_three, shuffle, new_game
//   - hint: positions of one set on the table
//   - action_history: paginated action log
//   - list_configs, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
