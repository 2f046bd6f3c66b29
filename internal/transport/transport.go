// Package transport issues requests to the remote script endpoint. The
// endpoint sits behind inconsistent cross-origin rules, so a call is tried
// over an ordered list of strategies: a direct request, a script-callback
// style request, and a last-resort raced plain request.
package transport

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the envelope every remote action answers with
type Result struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// OK reports whether the remote action succeeded
func (r Result) OK() bool { return r.Status == StatusSuccess }

// Errorf builds an error Result
func Errorf(message string) Result {
	return Result{Status: StatusError, Message: message}
}

// Call describes one request to the script endpoint
type Call struct {
	Action string
	Method string // GET or POST
	Data   map[string]string
}

// Transport performs a single call over one strategy. A returned error is a
// transport-level failure and triggers fallback; a Result carrying
// status "error" is the remote application's answer and does not.
type Transport interface {
	Name() string
	Do(ctx context.Context, call Call) (Result, error)
}

// buildURL assembles the endpoint URL with the action and any extra
// query parameters
func buildURL(endpoint, action string, extra map[string]string) string {
	q := url.Values{}
	q.Set("action", action)
	for k, v := range extra {
		if v != "" {
			q.Set(k, v)
		}
	}

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + q.Encode()
}
