package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wricardo/set-game/game/engine"
)

var log = logrus.WithField("component", "service")

// gameServiceImpl implements the GameService interface. One mutex serializes
// every command across all sessions; queries share a read lock.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSessionNotFound, sessionID, err)
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.Snapshot(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.WithFields(logrus.Fields{
		"session": sess.ID,
		"config":  config.Name,
	}).Info("session created")

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getSession(sessionID); err != nil {
		return err
	}
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}

	log.WithField("session", sessionID).Info("session deleted")
	return nil
}

// NewGame deals a fresh deck in an existing session
func (s *gameServiceImpl) NewGame(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.runCommand(sessionID, engine.ActionNewGame, "", func(e *engine.GameEngine) bool {
		e.NewGame()
		return true
	})
}

// Choose toggles the card with the given ID
func (s *gameServiceImpl) Choose(ctx context.Context, sessionID, cardID string) (*ActionResult, error) {
	id, err := engine.ParseCardID(strings.TrimSpace(cardID))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCardID, cardID)
	}

	return s.runCommand(sessionID, engine.ActionChoose, fmt.Sprintf("Card %s is not on the table", id), func(e *engine.GameEngine) bool {
		return e.Choose(id)
	})
}

// ChooseAt chooses the card at a zero-based table position
func (s *gameServiceImpl) ChooseAt(ctx context.Context, sessionID string, position int) (*ActionResult, error) {
	return s.runCommand(sessionID, engine.ActionChoose, fmt.Sprintf("No card at position %d", position), func(e *engine.GameEngine) bool {
		return e.ChooseAt(position)
	})
}

// DealThreeMore deals three cards, replacing a pending match
func (s *gameServiceImpl) DealThreeMore(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.runCommand(sessionID, engine.ActionDeal, "", func(e *engine.GameEngine) bool {
		return e.DealThreeMore()
	})
}

// ShuffleVisible reorders the table
func (s *gameServiceImpl) ShuffleVisible(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.runCommand(sessionID, engine.ActionShuffle, "", func(e *engine.GameEngine) bool {
		e.ShuffleVisible()
		return true
	})
}

// runCommand applies one engine command under the write lock and reports what changed
func (s *gameServiceImpl) runCommand(sessionID string, action engine.ActionType, noOpMessage string, apply func(*engine.GameEngine) bool) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.sessions.UpdateLastAccessed(sessionID)

	before := sess.Engine.Snapshot()
	applied := apply(sess.Engine)
	after := sess.Engine.Snapshot()
	now := time.Now()

	result := &ActionResult{
		Applied:   applied,
		GameState: after,
		Message:   after.Message,
	}

	if !applied {
		if noOpMessage == "" {
			noOpMessage = sess.Config.Messages.DealEmpty
		}
		if noOpMessage == "" {
			noOpMessage = "Nothing to do"
		}
		result.Message = noOpMessage
		result.Events = []GameEvent{{Type: EventNoOp, Message: noOpMessage, Timestamp: now}}
	} else {
		result.Events = actionEvents(action, before, after, now)
	}

	log.WithFields(logrus.Fields{
		"session":   sess.ID,
		"action":    action,
		"applied":   applied,
		"outcome":   after.Outcome,
		"visible":   len(after.Visible),
		"draw_pile": after.DrawPileCount,
	}).Debug("command")

	return result, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Snapshot(), nil
}

// Hint reports one set on the table without changing the game
func (s *gameServiceImpl) Hint(ctx context.Context, sessionID string) (*HintResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Snapshot()
	sets := engine.FindSets(state.Visible)
	result := &HintResult{SetsOnTable: len(sets)}

	if len(sets) == 0 {
		result.Message = "No set on the table. Deal three more cards."
		if state.DrawPileCount == 0 {
			result.Message = "No set on the table and the draw pile is empty."
		}
		return result, nil
	}

	first := sets[0]
	result.Found = true
	result.Positions = []int{first[0], first[1], first[2]}
	for _, pos := range result.Positions {
		result.Cards = append(result.Cards, state.Visible[pos])
	}
	result.Message = fmt.Sprintf("Try %s, %s and %s", result.Cards[0], result.Cards[1], result.Cards[2])
	return result, nil
}

// GetActionHistory returns paginated action history
func (s *gameServiceImpl) GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetActionHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	actions := []engine.ActionEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else if start < total {
		actions = append(actions, history[start:end]...)
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
