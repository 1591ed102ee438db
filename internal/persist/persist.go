// Package persist stores client state under the local state directory so a
// restarted client comes back with its session and last-known entity lists.
// State is split into two partitions: session.toml (auth) and cache.toml
// (entity lists). Logout purges only the auth partition.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ssegura/abasto/internal/models"
)

const (
	sessionFile = "session.toml"
	cacheFile   = "cache.toml"
)

// SessionState is the persisted auth partition.
type SessionState struct {
	Token     string      `toml:"token"`
	ExpiresAt time.Time   `toml:"expires_at"`
	User      models.User `toml:"user"`
}

// CacheState is the persisted entity-cache partition.
type CacheState struct {
	SavedAt    time.Time         `toml:"saved_at"`
	Products   []models.Product  `toml:"products"`
	Sales      []models.Sale     `toml:"sales"`
	Deliveries []models.Delivery `toml:"deliveries"`
	Suppliers  []models.Supplier `toml:"suppliers"`
	Customers  []models.Customer `toml:"customers"`
	Employees  []models.Employee `toml:"employees"`
}

// Manager reads and writes the state partitions under one directory.
type Manager struct {
	dir string
}

// NewManager resolves the state directory (expanding a leading ~) and
// creates it when missing.
func NewManager(dir string) (*Manager, error) {
	resolved, err := expandPath(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Manager{dir: resolved}, nil
}

// Dir returns the resolved state directory.
func (m *Manager) Dir() string { return m.dir }

// LoadSession rehydrates the auth partition. A missing or unreadable file
// degrades to an empty state.
func (m *Manager) LoadSession() (SessionState, bool) {
	var state SessionState
	if !load(filepath.Join(m.dir, sessionFile), &state) {
		return SessionState{}, false
	}
	return state, state.Token != ""
}

// SaveSession writes the auth partition.
func (m *Manager) SaveSession(state SessionState) error {
	return save(filepath.Join(m.dir, sessionFile), state)
}

// PurgeAuth removes the auth partition only; the entity cache is kept.
func (m *Manager) PurgeAuth() error {
	err := os.Remove(filepath.Join(m.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("purge session: %w", err)
	}
	return nil
}

// LoadCache rehydrates the entity-cache partition. Corruption degrades to
// an empty cache.
func (m *Manager) LoadCache() (CacheState, bool) {
	var state CacheState
	if !load(filepath.Join(m.dir, cacheFile), &state) {
		return CacheState{}, false
	}
	return state, true
}

// SaveCache writes the entity-cache partition.
func (m *Manager) SaveCache(state CacheState) error {
	state.SavedAt = time.Now()
	return save(filepath.Join(m.dir, cacheFile), state)
}

func load(path string, dest any) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := toml.Unmarshal(raw, dest); err != nil {
		return false // graceful degradation
	}
	return true
}

func save(path string, value any) error {
	raw, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("state dir is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
