package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/wricardo/set-game/game/engine"
	"github.com/wricardo/set-game/game/service"
)

// Sentinels are shared with the service layer so callers can match with errors.Is
var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = service.ErrInvalidConfig
)

// DefaultConfigName is the variant used when none is requested
const DefaultConfigName = "classic"

var log = logrus.WithField("component", "config")

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	m.defaultConfig = m.resolveDefault()
	log.WithFields(logrus.Fields{
		"dir":     configDir,
		"default": m.defaultConfig.Name,
	}).Debug("config manager ready")

	return m, nil
}

// LoadConfig loads a configuration by name. The name is the file name with
// or without its .json extension.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

func (m *Manager) readConfig(name string) (*engine.GameConfig, error) {
	configPath := filepath.Join(m.configDir, name+".json")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, name, err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// ListConfigs returns information about all valid configurations, sorted by config ID
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	configs := []*service.ConfigInfo{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(name)
		if err != nil {
			log.WithError(err).WithField("file", entry.Name()).Warn("skipping invalid config")
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			TableSize:   config.TableSize,
			Seeded:      config.Seed != 0,
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached configuration and re-resolves the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	config := m.resolveDefault()

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// resolveDefault picks classic.json, else the first valid file, else the built-in classic table
func (m *Manager) resolveDefault() *engine.GameConfig {
	if config, err := m.LoadConfig(DefaultConfigName); err == nil {
		return config
	}

	configs, err := m.ListConfigs()
	if err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			return config
		}
	}

	log.WithField("dir", m.configDir).Warn("no valid config found, using built-in default")
	return engine.DefaultGameConfig()
}

// SaveConfig validates and writes a configuration to disk
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: bad config name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, name+".json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	log.WithField("config", name).Info("config saved")
	return nil
}
