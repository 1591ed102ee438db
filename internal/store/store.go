// Package store implements the client-side cache for one entity type and its
// CRUD lifecycle against the remote API. Every operation goes through three
// transitions: pending registers with the loading tracker and sets the
// operation tag; fulfilled or rejected do the inverse and apply the
// entity-specific mutation.
//
// Fetch results are fenced with a per-store sequence number: when two fetches
// overlap, a completion older than the latest applied one is discarded
// instead of clobbering newer data.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ssegura/abasto/internal/alerts"
	"github.com/ssegura/abasto/internal/loading"
)

// Record is any entity with a server-assigned id.
type Record interface {
	RecordID() int
}

// Backend issues the remote calls for one collection. *api.Resource[T]
// implements it; tests substitute doubles.
type Backend[T any] interface {
	List(ctx context.Context, token string) ([]T, error)
	ListShared(ctx context.Context) ([]T, error)
	Get(ctx context.Context, token string, id int) (T, error)
	Create(ctx context.Context, token string, payload any) (T, error)
	Update(ctx context.Context, token string, id int, patch any) (T, error)
	Delete(ctx context.Context, token string, id int) error
}

// Credentials supplies the bearer token for authenticated calls and receives
// the signal when the server reports an authentication failure.
type Credentials interface {
	BearerToken() (string, error)
	AuthFailed()
}

// validatable payloads are checked locally before any request is issued.
type validatable interface {
	Validate() error
}

// Store caches one entity type. All exported methods are safe for concurrent
// use.
type Store[T Record] struct {
	name    string
	backend Backend[T]
	creds   Credentials
	track   *loading.Tracker
	alerts  *alerts.Center
	log     *slog.Logger

	mu           sync.Mutex
	items        []T
	byID         map[int]T
	status       Status
	failure      *Failure
	op           Op
	opSeq        uint64 // unique ids for the loading tracker
	fetchSeq     uint64 // issued list fetches
	fetchApplied uint64 // newest list fetch applied
}

// New builds a store. track and alertCenter must be the process-wide
// instances shared by every store.
func New[T Record](name string, backend Backend[T], creds Credentials, track *loading.Tracker, alertCenter *alerts.Center, log *slog.Logger) *Store[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Store[T]{
		name:    name,
		backend: backend,
		creds:   creds,
		track:   track,
		alerts:  alertCenter,
		log:     log,
		byID:    make(map[int]T),
	}
}

// Name returns the collection name the store caches.
func (s *Store[T]) Name() string { return s.name }

// Snapshot is an immutable view of the store envelope.
type Snapshot[T Record] struct {
	Items   []T
	Status  Status
	Failure *Failure
	Op      Op
}

// Snapshot returns a defensive copy of the current envelope.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot[T]{Status: s.status, Op: s.op}
	if len(s.items) > 0 {
		snap.Items = make([]T, len(s.items))
		copy(snap.Items, s.items)
	}
	if s.failure != nil {
		f := *s.failure
		snap.Failure = &f
	}
	return snap
}

// ByID returns the record last fetched individually, if any.
func (s *Store[T]) ByID(id int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.byID[id]
	return item, ok
}

// Hydrate seeds the item list from the persisted cache without touching the
// request status. Used once at startup, before any operation runs.
func (s *Store[T]) Hydrate(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), items...)
}

// FetchAll replaces the item list wholesale from the authenticated list
// endpoint. It is refused locally when no valid session exists. On failure
// the existing list stays visible.
func (s *Store[T]) FetchAll(ctx context.Context) error {
	h := s.begin(OpFetch, true)
	token, err := s.creds.BearerToken()
	if err != nil {
		return s.reject(h, err)
	}
	items, err := s.backend.List(ctx, token)
	if err != nil {
		return s.reject(h, err)
	}
	if err := ctx.Err(); err != nil {
		return s.reject(h, err)
	}
	s.applyList(h, items)
	return nil
}

// FetchShared replaces the item list from the public variant of the list
// endpoint. No session required.
func (s *Store[T]) FetchShared(ctx context.Context) error {
	h := s.begin(OpFetchShared, true)
	items, err := s.backend.ListShared(ctx)
	if err != nil {
		return s.reject(h, err)
	}
	if err := ctx.Err(); err != nil {
		return s.reject(h, err)
	}
	s.applyList(h, items)
	return nil
}

// FetchByID upserts a single record into the by-id index. The main list is
// not affected.
func (s *Store[T]) FetchByID(ctx context.Context, id int) (T, error) {
	var zero T
	h := s.begin(OpFetch, false)
	token, err := s.creds.BearerToken()
	if err != nil {
		return zero, s.reject(h, err)
	}
	item, err := s.backend.Get(ctx, token, id)
	if err != nil {
		return zero, s.reject(h, err)
	}
	if err := ctx.Err(); err != nil {
		return zero, s.reject(h, err)
	}
	s.fulfill(h, func() {
		s.byID[item.RecordID()] = item
	})
	return item, nil
}

// Create posts a new record and appends the server's version (with its
// assigned id) to the list. Payloads exposing Validate are checked locally
// first; a constraint violation never reaches the network.
func (s *Store[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T
	h := s.begin(OpAdd, false)
	if v, ok := payload.(validatable); ok {
		if err := v.Validate(); err != nil {
			return zero, s.reject(h, err)
		}
	}
	token, err := s.creds.BearerToken()
	if err != nil {
		return zero, s.reject(h, err)
	}
	created, err := s.backend.Create(ctx, token, payload)
	if err != nil {
		return zero, s.reject(h, err)
	}
	if err := ctx.Err(); err != nil {
		return zero, s.reject(h, err)
	}
	s.fulfill(h, func() {
		s.items = append(s.items, created)
	})
	return created, nil
}

// Update patches a record and replaces the matching list entry in place.
// When no entry matches the id, the result is dropped: an update for a
// record the list no longer holds does not resurrect it.
func (s *Store[T]) Update(ctx context.Context, id int, patch any) (T, error) {
	var zero T
	h := s.begin(OpUpdate, false)
	if v, ok := patch.(validatable); ok {
		if err := v.Validate(); err != nil {
			return zero, s.reject(h, err)
		}
	}
	token, err := s.creds.BearerToken()
	if err != nil {
		return zero, s.reject(h, err)
	}
	updated, err := s.backend.Update(ctx, token, id, patch)
	if err != nil {
		return zero, s.reject(h, err)
	}
	if err := ctx.Err(); err != nil {
		return zero, s.reject(h, err)
	}
	s.fulfill(h, func() {
		for i := range s.items {
			if s.items[i].RecordID() == id {
				s.items[i] = updated
				return
			}
		}
	})
	return updated, nil
}

// Delete removes a record server-side and then drops the matching list entry
// (at most one). The removal happens only after the server confirms.
func (s *Store[T]) Delete(ctx context.Context, id int) error {
	h := s.begin(OpDelete, false)
	token, err := s.creds.BearerToken()
	if err != nil {
		return s.reject(h, err)
	}
	if err := s.backend.Delete(ctx, token, id); err != nil {
		return s.reject(h, err)
	}
	if err := ctx.Err(); err != nil {
		return s.reject(h, err)
	}
	s.fulfill(h, func() {
		delete(s.byID, id)
		for i := range s.items {
			if s.items[i].RecordID() == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				return
			}
		}
	})
	return nil
}

type opHandle struct {
	op       Op
	id       string
	fetchSeq uint64
}

// begin is the pending transition: status goes to loading, the operation tag
// is set and the operation registers with the loading tracker. Fenced
// operations (list fetches) additionally draw a sequence number.
func (s *Store[T]) begin(op Op, fenced bool) opHandle {
	s.mu.Lock()
	s.opSeq++
	h := opHandle{op: op, id: fmt.Sprintf("%s/%s#%d", s.name, op, s.opSeq)}
	if fenced {
		s.fetchSeq++
		h.fetchSeq = s.fetchSeq
	}
	s.status = StatusLoading
	s.op = op
	s.mu.Unlock()

	s.track.Start(h.id)
	return h
}

// fulfill is the successful completion: unregister, clear the operation tag
// and error, and run the entity-specific mutation.
func (s *Store[T]) fulfill(h opHandle, mutate func()) {
	s.track.Stop(h.id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.op = OpNone
	s.status = StatusSucceeded
	s.failure = nil
	if mutate != nil {
		mutate()
	}
}

// applyList is fulfill for list fetches, guarded by the sequence fence: a
// completion older than the newest applied fetch is discarded.
func (s *Store[T]) applyList(h opHandle, items []T) {
	s.track.Stop(h.id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.op = OpNone
	if h.fetchSeq < s.fetchApplied {
		s.log.Debug("stale fetch discarded", "store", s.name, "seq", h.fetchSeq)
		return
	}
	s.fetchApplied = h.fetchSeq
	s.items = append([]T(nil), items...)
	s.status = StatusSucceeded
	s.failure = nil
}

// reject is the failed completion: unregister, clear the operation tag,
// record the classified failure and surface API-originated errors through
// the alert center exactly once. The item list is never mutated here.
func (s *Store[T]) reject(h opHandle, err error) error {
	s.track.Stop(h.id)
	f := classify(err)

	s.mu.Lock()
	s.op = OpNone
	s.status = StatusFailed
	s.failure = &f
	s.mu.Unlock()

	s.log.Info("operation rejected", "store", s.name, "op", string(h.op), "kind", f.Kind.String(), "err", f.Message)

	switch f.Kind {
	case KindAPI:
		s.alerts.Add(f.UserMessages()...)
		if f.AuthFailure() {
			s.creds.AuthFailed()
		}
	case KindAuth, KindTransport, KindGeneric:
		// Recorded on the store only; the alert center is reserved for
		// API-originated failures.
	}
	return err
}
