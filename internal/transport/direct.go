package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Direct performs a plain cross-origin request against the endpoint. It is
// the only strategy whose in-flight request honors cancellation.
type Direct struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewDirect creates the direct transport
func NewDirect(endpoint string, timeout time.Duration) *Direct {
	return &Direct{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
	}
}

func (d *Direct) Name() string { return "direct" }

func (d *Direct) Do(ctx context.Context, call Call) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var req *http.Request
	var err error

	if call.Method == http.MethodPost {
		payload, merr := json.Marshal(call.Data)
		if merr != nil {
			return Result{}, merr
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, buildURL(d.endpoint, call.Action, nil), bytes.NewReader(payload))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, buildURL(d.endpoint, call.Action, call.Data), nil)
	}
	if err != nil {
		return Result{}, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("%s returned %d: %s", call.Action, resp.StatusCode, string(body))
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("parse %s response: %w", call.Action, err)
	}
	return res, nil
}
