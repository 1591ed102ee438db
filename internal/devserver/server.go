// Package devserver is an in-process stand-in for the remote management API.
// It speaks the same envelope contract over in-memory fixtures, so the client
// can be developed and tested without the production backend.
package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ssegura/abasto/internal/api"
	"github.com/ssegura/abasto/internal/models"
)

// Fixture credentials accepted by POST /auth/login.
const (
	FixtureEmail    = "admin@abasto.test"
	FixturePassword = "abasto123"
)

const tokenTTL = 30 * time.Minute

// Server holds the fixtures and issued tokens.
type Server struct {
	log *slog.Logger

	mu     sync.Mutex
	tokens map[string]time.Time
	user   models.User

	products   *collection[models.Product]
	sales      *collection[models.Sale]
	deliveries *collection[models.Delivery]
	suppliers  *collection[models.Supplier]
	customers  *collection[models.Customer]
	employees  *collection[models.Employee]
}

// New builds a Server seeded with fixtures.
func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log:    log,
		tokens: make(map[string]time.Time),
	}
	s.seed()
	return s
}

// Handler returns the HTTP surface of the stub API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", s.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/auth/me", s.handleMe)
		r.Get("/auth/session", s.handleSession)
		r.Post("/auth/logout", s.handleLogout)
	})

	mount(r, s, s.products)
	mount(r, s, s.sales)
	mount(r, s, s.deliveries)
	mount(r, s, s.suppliers)
	mount(r, s, s.customers)
	mount(r, s, s.employees)

	return r
}

// Start serves the stub API on a loopback port until ctx is cancelled. It
// returns the listen address.
func Start(ctx context.Context, log *slog.Logger) (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	srv := &http.Server{Handler: New(log).Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("devserver stopped", "err", err)
			}
		}
	}()
	return ln.Addr().String(), nil
}

// envelope responders

func respondData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(api.Envelope{
		Status: api.EnvelopeStatus{Success: true, Errors: []api.EnvelopeError{}},
		Data:   mustMarshal(data),
	})
}

func respondError(w http.ResponseWriter, httpStatus, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(api.Envelope{
		Status: api.EnvelopeStatus{
			Success: false,
			Errors:  []api.EnvelopeError{{Code: code, Message: msg}},
		},
	})
}

func mustMarshal(data any) json.RawMessage {
	if data == nil {
		return json.RawMessage(`null`)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return raw
}

// auth handlers

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, 3000, "invalid login payload")
		return
	}
	if req.Email != FixtureEmail || req.Password != FixturePassword {
		respondError(w, http.StatusUnauthorized, 1102, "invalid credentials")
		return
	}
	token := uuid.NewString()
	expires := time.Now().Add(tokenTTL)

	s.mu.Lock()
	s.tokens[token] = expires
	s.mu.Unlock()

	respondData(w, api.LoginData{Token: token, Expires: expires, Verified: true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	respondData(w, map[string]models.User{"user": user})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]bool{"valid": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	respondData(w, nil)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, 1000, "authentication required")
			return
		}
		s.mu.Lock()
		expires, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			respondError(w, http.StatusUnauthorized, 1001, "invalid token")
			return
		}
		if time.Now().After(expires) {
			respondError(w, http.StatusUnauthorized, 1002, "token expired")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// generic collection CRUD

type record interface {
	RecordID() int
}

// collection stores the fixtures for one entity type. withID stamps the
// server-assigned id onto a created record; required reports a fixture-level
// validation failure for create payloads.
type collection[T record] struct {
	name     string
	nextID   int
	items    []T
	withID   func(T, int) T
	required func(T) string
}

func (c *collection[T]) wrap(items []T) map[string][]T {
	if items == nil {
		items = []T{}
	}
	return map[string][]T{c.name: items}
}

func mount[T record](r chi.Router, s *Server, col *collection[T]) {
	r.Get("/shared/"+col.name, func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		items := append([]T(nil), col.items...)
		s.mu.Unlock()
		respondData(w, col.wrap(items))
	})

	r.Route("/"+col.name, func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			s.mu.Lock()
			items := append([]T(nil), col.items...)
			s.mu.Unlock()
			respondData(w, col.wrap(items))
		})

		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var item T
			if err := json.NewDecoder(req.Body).Decode(&item); err != nil {
				respondError(w, http.StatusBadRequest, 3000, "invalid payload")
				return
			}
			if col.required != nil {
				if field := col.required(item); field != "" {
					respondError(w, http.StatusBadRequest, 3001, "missing required field: "+field)
					return
				}
			}
			s.mu.Lock()
			col.nextID++
			item = col.withID(item, col.nextID)
			col.items = append(col.items, item)
			s.mu.Unlock()
			respondData(w, item)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				id, _ := strconv.Atoi(chi.URLParam(req, "id"))
				s.mu.Lock()
				item, ok := col.find(id)
				s.mu.Unlock()
				if !ok {
					respondError(w, http.StatusNotFound, 2000, "resource not found")
					return
				}
				respondData(w, item)
			})

			r.Patch("/", func(w http.ResponseWriter, req *http.Request) {
				id, _ := strconv.Atoi(chi.URLParam(req, "id"))
				s.mu.Lock()
				defer s.mu.Unlock()
				idx := col.index(id)
				if idx < 0 {
					respondError(w, http.StatusNotFound, 2000, "resource not found")
					return
				}
				patched := col.items[idx]
				if err := json.NewDecoder(req.Body).Decode(&patched); err != nil {
					respondError(w, http.StatusBadRequest, 3000, "invalid payload")
					return
				}
				patched = col.withID(patched, id)
				col.items[idx] = patched
				respondData(w, patched)
			})

			r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
				id, _ := strconv.Atoi(chi.URLParam(req, "id"))
				s.mu.Lock()
				defer s.mu.Unlock()
				idx := col.index(id)
				if idx < 0 {
					respondError(w, http.StatusNotFound, 2000, "resource not found")
					return
				}
				col.items = append(col.items[:idx], col.items[idx+1:]...)
				respondData(w, nil)
			})
		})
	})
}

func (c *collection[T]) index(id int) int {
	for i, item := range c.items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) find(id int) (T, bool) {
	var zero T
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	return zero, false
}
