package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/wricardo/set-game/game/engine"
	"github.com/wricardo/set-game/game/service"
	"github.com/wricardo/set-game/transport/websocket"
)

var log = logrus.WithField("component", "api")

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil, which disables /ws.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	// Unified sessions for multi-session view (must be before {id} pattern)
	api.HandleFunc("/sessions/unified", s.handleUnifiedSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/choose", s.handleChoose).Methods("POST")
	api.HandleFunc("/sessions/{id}/deal", s.handleDeal).Methods("POST")
	api.HandleFunc("/sessions/{id}/shuffle", s.handleShuffle).Methods("POST")
	api.HandleFunc("/sessions/{id}/new-game", s.handleNewGame).Methods("POST")
	api.HandleFunc("/sessions/{id}/hint", s.handleHint).Methods("GET")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinels to status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrConfigNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCardID), errors.Is(err, service.ErrInvalidConfig):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("request failed")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	// Support both parameter names, but prefer config_id
	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	limit := total
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < total {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, "session_deleted", nil)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		CardID   string `json:"card_id,omitempty"`
		Position *int   `json:"position,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var result *service.ActionResult
	var err error
	switch {
	case req.CardID != "":
		result, err = s.service.Choose(r.Context(), sessionID, req.CardID)
	case req.Position != nil:
		result, err = s.service.ChooseAt(r.Context(), sessionID, *req.Position)
	default:
		respondError(w, http.StatusBadRequest, "card_id or position is required")
		return
	}

	s.finishCommand(w, sessionID, "choose", result, err)
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	result, err := s.service.DealThreeMore(r.Context(), sessionID)
	s.finishCommand(w, sessionID, "deal", result, err)
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	result, err := s.service.ShuffleVisible(r.Context(), sessionID)
	s.finishCommand(w, sessionID, "shuffle", result, err)
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	result, err := s.service.NewGame(r.Context(), sessionID)
	s.finishCommand(w, sessionID, "new_game", result, err)
}

// finishCommand pushes the result to WebSocket watchers, logs a compact line and responds
func (s *Server) finishCommand(w http.ResponseWriter, sessionID, action string, result *service.ActionResult, err error) {
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastResult(sessionID, result)
	}

	state := result.GameState
	log.WithFields(logrus.Fields{
		"session":   sessionID,
		"action":    action,
		"applied":   result.Applied,
		"outcome":   state.Outcome,
		"visible":   len(state.Visible),
		"draw_pile": state.DrawPileCount,
		"discard":   len(state.Discarded),
	}).Info("command")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	hint, err := s.service.Hint(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, hint)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetActionHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	config, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, config)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		engine.GameConfig
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	// The file name defaults to a slug of the display name
	configID := req.ConfigID
	if configID == "" {
		configID = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(req.Name), " ", "_"))
	}

	gameConfig := req.GameConfig
	if err := s.service.SaveConfig(r.Context(), configID, &gameConfig); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// Unified Sessions Handler

func (s *Server) handleUnifiedSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var sessions []*service.SessionInfo

	if sessionIDs := query.Get("sessionIds"); sessionIDs != "" {
		ids := strings.Split(sessionIDs, ",")
		sessions = make([]*service.SessionInfo, 0, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id != "" {
				session, err := s.service.GetSession(r.Context(), id)
				if err == nil {
					sessions = append(sessions, session)
				}
			}
		}
	} else {
		allSessions, err := s.service.ListSessions(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		configName := query.Get("configName")
		sessions = make([]*service.SessionInfo, 0, len(allSessions))
		for _, session := range allSessions {
			if configName == "" || session.ConfigName == configName {
				sessions = append(sessions, session)
			}
		}
	}

	configName := ""
	if len(sessions) > 0 {
		configName = sessions[0].ConfigName
	}

	summaries := make([]map[string]interface{}, 0, len(sessions))
	totalDiscarded := 0
	for _, session := range sessions {
		summary := map[string]interface{}{
			"session_id":    session.ID,
			"config_name":   session.ConfigName,
			"game_state":    session.GameState,
			"created_at":    session.CreatedAt,
			"last_accessed": session.LastAccessedAt,
		}
		if session.GameState != nil {
			summary["sets_found"] = len(session.GameState.Discarded) / engine.SetSize
			totalDiscarded += len(session.GameState.Discarded)
		}
		summaries = append(summaries, summary)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"config_name":      configName,
		"total_sets_found": totalDiscarded / engine.SetSize,
		"sessions":         summaries,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket push is disabled", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
