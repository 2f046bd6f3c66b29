// Package backend wraps the remote script actions with typed calls. All
// authoritative state lives behind the endpoint; this side only submits and
// decodes.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/session"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/transport"
)

// CallError is a settled remote failure: either the endpoint reported an
// application error or no transport could reach it. The message is already
// user-facing.
type CallError struct {
	Action  string
	Message string
}

func (e *CallError) Error() string { return e.Message }

// Client issues remote actions with the stored bearer token attached
type Client struct {
	api  *transport.Client
	sess *session.Store
}

// New creates a backend client over the transport fallback client
func New(api *transport.Client, sess *session.Store) *Client {
	return &Client{api: api, sess: sess}
}

// call runs one action and returns its data payload. Remote-reported errors
// and connectivity failures both come back as a *CallError.
func (c *Client) call(ctx context.Context, action string, data map[string]string, method string) (json.RawMessage, error) {
	fields := make(map[string]string, len(data)+1)
	for k, v := range data {
		fields[k] = v
	}
	if c.sess != nil {
		if tok := c.sess.Token(); tok != "" {
			fields["token"] = tok
		}
	}

	res := c.api.Call(ctx, action, fields, method)
	if !res.OK() {
		return nil, &CallError{Action: action, Message: res.Message}
	}
	return res.Data, nil
}

func (c *Client) get(ctx context.Context, action string, data map[string]string, out interface{}) error {
	return c.run(ctx, action, data, http.MethodGet, out)
}

func (c *Client) post(ctx context.Context, action string, data map[string]string, out interface{}) error {
	return c.run(ctx, action, data, http.MethodPost, out)
}

func (c *Client) run(ctx context.Context, action string, data map[string]string, method string, out interface{}) error {
	raw, err := c.call(ctx, action, data, method)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s payload: %w", action, err)
	}
	return nil
}
