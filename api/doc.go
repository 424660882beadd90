// Package api provides the HTTP REST API for the Set card game.
//
// Routes are registered on a gorilla/mux router. Every game operation is
// scoped to a session:
//
// Session Management:
//   - POST   /api/sessions              create a session ({"config_id": "classic"})
//   - GET    /api/sessions              list sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/unified      summaries of several sessions (?sessionIds=a,b or ?configName=X)
//   - GET    /api/sessions/{id}         session info with its game state
//   - DELETE /api/sessions/{id}         delete a session
//
// Game Commands (respond with an ActionResult):
//   - POST /api/sessions/{id}/choose    tap a card: {"card_id": "..."} or {"position": 0}
//   - POST /api/sessions/{id}/deal      deal three more cards
//   - POST /api/sessions/{id}/shuffle   shuffle the visible cards
//   - POST /api/sessions/{id}/new-game  start over with a fresh deck
//
// Game Queries:
//   - GET /api/sessions/{id}/state      current game state
//   - GET /api/sessions/{id}/hint       one set on the table, if any
//   - GET /api/sessions/{id}/history    paginated action history (?page&limit&order)
//
// Configuration:
//   - GET  /api/configs                 list configurations
//   - GET  /api/configs/{name}          load one configuration
//   - POST /api/configs                 save a configuration
//
// Other:
//   - GET /health                       liveness probe
//   - GET /ws?session={id}              WebSocket push of state updates
//
// Errors are returned as {"error": "message"}. Unknown sessions and configs
// map to 404, unknown cards and invalid configs to 400.
package api
