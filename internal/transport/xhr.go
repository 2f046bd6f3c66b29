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

// XHR is the last-resort strategy: a plain request raced against a deadline,
// with no cancellation of the request itself. Like the callback strategy, a
// timed-out call may still complete silently in the background.
type XHR struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewXHR creates the last-resort transport
func NewXHR(endpoint string, timeout time.Duration) *XHR {
	return &XHR{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 2 * timeout},
		timeout:  timeout,
	}
}

func (x *XHR) Name() string { return "xhr" }

func (x *XHR) Do(ctx context.Context, call Call) (Result, error) {
	type outcome struct {
		res Result
		err error
	}
	ch := make(chan outcome, 1)

	go func() {
		res, err := x.send(call)
		ch <- outcome{res, err}
	}()

	timer := time.NewTimer(x.timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		return out.res, out.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
		return Result{}, fmt.Errorf("%s timed out after %v", call.Action, x.timeout)
	}
}

func (x *XHR) send(call Call) (Result, error) {
	var resp *http.Response
	var err error

	if call.Method == http.MethodPost {
		payload, merr := json.Marshal(call.Data)
		if merr != nil {
			return Result{}, merr
		}
		resp, err = x.client.Post(buildURL(x.endpoint, call.Action, nil), "application/json", bytes.NewReader(payload))
	} else {
		resp, err = x.client.Get(buildURL(x.endpoint, call.Action, call.Data))
	}
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
