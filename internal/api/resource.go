package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Resource issues the CRUD calls for one entity collection. The list
// endpoints wrap their payload in an object keyed by the collection name
// ({"products": [...]}); single-entity endpoints return the record directly.
type Resource[T any] struct {
	c    *Client
	name string // collection segment, e.g. "products"
}

// NewResource binds a typed resource to its collection path.
func NewResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{c: c, name: name}
}

// List fetches the authenticated collection.
func (r *Resource[T]) List(ctx context.Context, token string) ([]T, error) {
	return r.list(ctx, "/"+r.name, token)
}

// ListShared fetches the public variant of the collection, used for the
// pre-login landing statistics.
func (r *Resource[T]) ListShared(ctx context.Context) ([]T, error) {
	return r.list(ctx, "/shared/"+r.name, "")
}

func (r *Resource[T]) list(ctx context.Context, path, token string) ([]T, error) {
	var data map[string]json.RawMessage
	if err := r.c.do(ctx, http.MethodGet, path, token, nil, &data); err != nil {
		return nil, err
	}
	raw, ok := data[r.name]
	if !ok {
		return nil, &TransportError{
			Op:  http.MethodGet + " " + path,
			Err: fmt.Errorf("payload missing %q collection", r.name),
		}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &TransportError{
			Op:  http.MethodGet + " " + path,
			Err: fmt.Errorf("decode %s: %w", r.name, err),
		}
	}
	return items, nil
}

// Get fetches one record by id.
func (r *Resource[T]) Get(ctx context.Context, token string, id int) (T, error) {
	var item T
	if err := r.c.do(ctx, http.MethodGet, r.itemPath(id), token, nil, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Create posts a new record and returns it with its server-assigned id.
func (r *Resource[T]) Create(ctx context.Context, token string, payload any) (T, error) {
	var item T
	if err := r.c.do(ctx, http.MethodPost, "/"+r.name, token, payload, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Update patches a record and returns the updated version.
func (r *Resource[T]) Update(ctx context.Context, token string, id int, patch any) (T, error) {
	var item T
	if err := r.c.do(ctx, http.MethodPatch, r.itemPath(id), token, patch, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Delete removes a record.
func (r *Resource[T]) Delete(ctx context.Context, token string, id int) error {
	return r.c.do(ctx, http.MethodDelete, r.itemPath(id), token, nil, nil)
}

func (r *Resource[T]) itemPath(id int) string {
	return "/" + r.name + "/" + strconv.Itoa(id)
}
