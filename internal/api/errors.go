package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuthRequired is raised locally when an authenticated call is attempted
// without a valid session. It never reaches the network.
var ErrAuthRequired = errors.New("authentication required")

// TransportError wraps a network failure or a non-2xx response whose body
// could not be parsed as the API envelope.
type TransportError struct {
	Op     string // method and path, e.g. "GET /products"
	Status int    // HTTP status, zero when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("api %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorEntry is one coded error reported by the API envelope, resolved
// through the static translation table. Translated is blank for codes the
// table does not know.
type ErrorEntry struct {
	Code       int
	Message    string
	Translated string
}

// APIError is returned when the envelope reports success=false. It always
// carries at least one entry; a failure with no server-supplied codes is
// normalized to a single generic entry with CodeUnknown.
type APIError struct {
	Entries []ErrorEntry
}

func (e *APIError) Error() string {
	parts := make([]string, 0, len(e.Entries))
	for _, entry := range e.Entries {
		parts = append(parts, fmt.Sprintf("%d %s", entry.Code, entry.Message))
	}
	return "api error: " + strings.Join(parts, "; ")
}

// AuthFailure reports whether any entry carries an auth-class code. A call
// rejected this way invalidates the local session.
func (e *APIError) AuthFailure() bool {
	for _, entry := range e.Entries {
		if entry.Code >= 1000 && entry.Code <= 1006 {
			return true
		}
	}
	return false
}

// Messages returns the user-facing text of every entry. Entries without a
// translation collapse into a single generic unknown-error message, so a
// batch of unmapped codes produces one notification, not many blanks.
func (e *APIError) Messages() []string {
	msgs := make([]string, 0, len(e.Entries))
	untranslated := false
	for _, entry := range e.Entries {
		if entry.Translated == "" {
			untranslated = true
			continue
		}
		msgs = append(msgs, entry.Translated)
	}
	if untranslated || len(msgs) == 0 {
		msgs = append(msgs, Translate(CodeUnknown))
	}
	return msgs
}
