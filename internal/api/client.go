// Package api implements the HTTP client for the Abasto management API.
// Every response uses a uniform envelope; failures surface as typed errors
// so callers can branch with errors.Is / errors.As.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "abasto/0.1"
	requestTimeout   = 10 * time.Second
)

// Envelope is the wrapper every API response uses.
type Envelope struct {
	Status EnvelopeStatus  `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// EnvelopeStatus reports success plus zero or more coded errors.
type EnvelopeStatus struct {
	Success bool            `json:"success"`
	Errors  []EnvelopeError `json:"errors"`
}

// EnvelopeError is one coded error as sent on the wire.
type EnvelopeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client talks to the Abasto HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for the given base URL. The URL must carry a
// scheme and host; path, query and fragment are stripped.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// do issues one request and decodes the envelope. A blank token omits the
// Authorization header. dest may be nil when the caller ignores the data
// payload.
func (c *Client) do(ctx context.Context, method, path, token string, body, dest any) error {
	op := method + " " + path
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	if !envelope.Status.Success {
		return newAPIError(envelope.Status.Errors)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// newAPIError translates wire errors through the static table, substituting
// a single generic entry when the server supplied no codes at all.
func newAPIError(wire []EnvelopeError) *APIError {
	if len(wire) == 0 {
		return &APIError{Entries: []ErrorEntry{{
			Code:       CodeUnknown,
			Message:    "unknown error",
			Translated: Translate(CodeUnknown),
		}}}
	}
	entries := make([]ErrorEntry, 0, len(wire))
	for _, e := range wire {
		entries = append(entries, ErrorEntry{
			Code:       e.Code,
			Message:    e.Message,
			Translated: Translate(e.Code),
		})
	}
	return &APIError{Entries: entries}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api base url %q has no host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
