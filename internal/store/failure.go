package store

import (
	"errors"

	"github.com/ssegura/abasto/internal/api"
)

// Kind classifies a rejected operation. Every consumption site switches over
// all four variants.
type Kind int

const (
	// KindAuth is a local refusal: no valid session existed, so no request
	// was issued.
	KindAuth Kind = iota
	// KindTransport is a network failure or a response without a parseable
	// envelope.
	KindTransport
	// KindAPI is an envelope that reported success=false with coded errors.
	KindAPI
	// KindGeneric is anything else, including a cancelled context.
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	default:
		return "generic"
	}
}

// Failure describes why a store operation was rejected. Entries is populated
// only for KindAPI.
type Failure struct {
	Kind    Kind
	Message string
	Entries []api.ErrorEntry
}

// UserMessages returns the text the notification layer should show. Only
// KindAPI failures carry translated messages; everything else falls back to
// the generic unknown-error string.
func (f Failure) UserMessages() []string {
	if f.Kind == KindAPI {
		apiErr := &api.APIError{Entries: f.Entries}
		return apiErr.Messages()
	}
	return []string{api.Translate(api.CodeUnknown)}
}

// AuthFailure reports whether the server rejected the call with an
// auth-class code.
func (f Failure) AuthFailure() bool {
	if f.Kind != KindAPI {
		return false
	}
	apiErr := &api.APIError{Entries: f.Entries}
	return apiErr.AuthFailure()
}

// classify folds an operation error into the tagged Failure variant.
func classify(err error) Failure {
	var apiErr *api.APIError
	var transportErr *api.TransportError
	switch {
	case errors.Is(err, api.ErrAuthRequired):
		return Failure{Kind: KindAuth, Message: err.Error()}
	case errors.As(err, &apiErr):
		return Failure{Kind: KindAPI, Message: apiErr.Error(), Entries: apiErr.Entries}
	case errors.As(err, &transportErr):
		return Failure{Kind: KindTransport, Message: transportErr.Error()}
	default:
		return Failure{Kind: KindGeneric, Message: err.Error()}
	}
}
