// Package session owns the authenticated-user context: bearer token, its
// expiry deadline and the profile snapshot. It is a two-state machine,
// unauthenticated and authenticated; every transition is explicit.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ssegura/abasto/internal/api"
	"github.com/ssegura/abasto/internal/models"
	"github.com/ssegura/abasto/internal/persist"
)

// AuthAPI is the slice of the API client the session needs. *api.Client
// implements it; tests substitute doubles.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (api.LoginData, error)
	Me(ctx context.Context, token string) (models.User, error)
	CheckSession(ctx context.Context, token string) (bool, error)
	Logout(ctx context.Context, token string) error
}

// Store holds the session state. The zero values of token and expiry mean
// unauthenticated.
type Store struct {
	api     AuthAPI
	persist *persist.Manager
	log     *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	user      models.User
}

// New builds a Store and rehydrates the persisted auth partition. A
// persisted token that is already past its deadline is discarded.
func New(authAPI AuthAPI, p *persist.Manager, log *slog.Logger) *Store {
	s := &Store{api: authAPI, persist: p, log: log, now: time.Now}
	if p != nil {
		if state, ok := p.LoadSession(); ok && s.now().Before(state.ExpiresAt) {
			s.token = state.Token
			s.expiresAt = state.ExpiresAt
			s.user = state.User
		}
	}
	return s
}

// Valid reports whether a token is present and its deadline has not passed.
func (s *Store) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validLocked()
}

func (s *Store) validLocked() bool {
	return s.token != "" && s.now().Before(s.expiresAt)
}

// BearerToken returns the current token, or api.ErrAuthRequired when the
// session is absent or expired.
func (s *Store) BearerToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validLocked() {
		return "", api.ErrAuthRequired
	}
	return s.token, nil
}

// User returns the profile snapshot while authenticated.
func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validLocked() {
		return models.User{}, false
	}
	return s.user, true
}

// ExpiresAt returns the current deadline (zero when unauthenticated).
func (s *Store) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// Login performs the credential exchange and, on success, transitions to
// authenticated and persists the auth partition.
func (s *Store) Login(ctx context.Context, email, password string, remember bool) error {
	data, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password, Remember: remember})
	if err != nil {
		return err
	}
	user, err := s.api.Me(ctx, data.Token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = data.Token
	s.expiresAt = data.Expires
	s.user = user
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.SaveSession(persist.SessionState{
			Token:     data.Token,
			ExpiresAt: data.Expires,
			User:      user,
		}); err != nil && s.log != nil {
			s.log.Warn("persist session failed", "err", err)
		}
	}
	return nil
}

// Logout revokes the token server-side (best effort) and always clears the
// local state and purges the auth partition.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil && s.log != nil {
			s.log.Warn("server logout failed", "err", err)
		}
	}
	s.clear()
}

// AuthFailed transitions to unauthenticated without a server round trip.
// Stores call it when an API response carries an auth-class error code.
func (s *Store) AuthFailed() {
	s.clear()
}

func (s *Store) clear() {
	s.mu.Lock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.user = models.User{}
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.PurgeAuth(); err != nil && s.log != nil {
			s.log.Warn("purge auth partition failed", "err", err)
		}
	}
}
