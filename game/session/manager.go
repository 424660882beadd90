package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wricardo/set-game/game/engine"
	"github.com/wricardo/set-game/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds the retries when a generated ID collides with a live session
const maxIDAttempts = 32

var log = logrus.WithField("component", "session")

// Manager handles game session lifecycle. Sessions live in memory only.
type Manager struct {
	sessions map[string]*service.Session
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// Create creates a new session with the given ID and configuration.
// An empty ID gets a generated 4-character one.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if strings.ContainsAny(id, " /\\?#") {
		return nil, ErrInvalidSessionID
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id, err = m.uniqueSessionID()
		if err != nil {
			return nil, err
		}
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[strings.ToLower(id)] = session

	log.WithFields(logrus.Fields{
		"session": id,
		"config":  config.Name,
	}).Debug("session created")

	return session, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all active sessions, oldest first
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, lowerID)

	log.WithField("session", id).Debug("session deleted")
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	session.LastAccessedAt = time.Now()
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		log.WithField("removed", removed).Info("expired sessions cleaned up")
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// uniqueSessionID returns a generated ID not used by any live session.
// Callers hold the write lock.
func (m *Manager) uniqueSessionID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := generateSessionID()
		if !m.sessionExists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free session ID after %d attempts", maxIDAttempts)
}

// generateSessionID generates a random 4-character session ID
func generateSessionID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// sessionExists checks if a session exists (case-insensitive)
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
