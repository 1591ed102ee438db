package session

import (
	"context"
	"time"
)

// DefaultCheckInterval is how often an authenticated session is re-validated
// against the server.
const DefaultCheckInterval = time.Minute

// StartChecker launches a background goroutine that re-validates the session
// at a fixed cadence while authenticated. A failed or negative check forces
// the transition to unauthenticated, revoking the token server-side on a
// best-effort basis. It returns immediately.
func (s *Store) StartChecker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			s.check(ctx)
		}
	}()
}

func (s *Store) check(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	valid := s.validLocked()
	s.mu.Unlock()

	if !valid {
		// The deadline alone may have passed; drop any leftover state so
		// the persisted partition does not outlive the session.
		if token != "" {
			s.clear()
		}
		return
	}

	ok, err := s.api.CheckSession(ctx, token)
	if err == nil && ok {
		return
	}
	if ctx.Err() != nil {
		// Shutting down, not a verdict on the session.
		return
	}
	if s.log != nil {
		s.log.Info("session check failed, logging out", "err", err)
	}
	if err := s.api.Logout(ctx, token); err != nil && s.log != nil {
		s.log.Warn("server logout failed", "err", err)
	}
	s.clear()
}
