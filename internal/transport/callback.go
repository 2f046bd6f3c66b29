package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Callback performs the script-callback (JSONP style) request the endpoint
// accepts when direct cross-origin calls are rejected. Everything travels in
// the query string, with a per-call unique callback name the endpoint wraps
// its JSON in. The request cannot be cancelled once issued: on timeout the
// call settles as an error while the request may still finish in the
// background.
type Callback struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewCallback creates the script-callback transport
func NewCallback(endpoint string, timeout time.Duration) *Callback {
	return &Callback{
		endpoint: endpoint,
		// Safety net so the background request eventually ends
		client:  &http.Client{Timeout: 2 * timeout},
		timeout: timeout,
	}
}

func (c *Callback) Name() string { return "callback" }

func (c *Callback) Do(ctx context.Context, call Call) (Result, error) {
	name := "cb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	params := make(map[string]string, len(call.Data)+2)
	for k, v := range call.Data {
		params[k] = v
	}
	params["callback"] = name
	if call.Method == http.MethodPost {
		// The endpoint reads the intended method out of the query string
		// since a script tag can only GET
		params["method"] = call.Method
	}

	type outcome struct {
		res Result
		err error
	}
	ch := make(chan outcome, 1)

	go func() {
		res, err := c.fetch(buildURL(c.endpoint, call.Action, params), name, call.Action)
		ch <- outcome{res, err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out.res, out.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
		return Result{}, fmt.Errorf("%s callback timed out after %v", call.Action, c.timeout)
	}
}

func (c *Callback) fetch(url, name, action string) (Result, error) {
	resp, err := c.client.Get(url)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%s returned %d", action, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	payload, err := unwrap(body, name)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", action, err)
	}

	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return Result{}, fmt.Errorf("parse %s response: %w", action, err)
	}
	return res, nil
}

// unwrap strips the "name(...)" wrapper from a callback response body.
// A bare JSON body is accepted too, since the endpoint answers some
// callback requests with plain JSON.
func unwrap(body []byte, name string) ([]byte, error) {
	s := strings.TrimSpace(string(body))

	if strings.HasPrefix(s, name+"(") {
		s = strings.TrimPrefix(s, name+"(")
		s = strings.TrimSuffix(s, ";")
		s = strings.TrimSpace(s)
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("malformed callback body")
		}
		return []byte(s[:len(s)-1]), nil
	}

	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unexpected callback body")
}
