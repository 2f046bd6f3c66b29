package transport

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Generic connectivity message shown when every strategy fails
const connectivityMessage = "Tidak dapat terhubung ke server. Periksa koneksi internet Anda."

// Loading is the blocking overlay toggled around every call
type Loading interface {
	Show()
	Hide()
}

// Client runs calls over the configured strategies in order, remembering the
// last strategy that got through so later calls try it first.
type Client struct {
	mu         sync.Mutex
	transports []Transport
	preferred  int

	loading Loading
}

// NewClient creates a fallback client over the given strategies
func NewClient(transports []Transport, loading Loading) *Client {
	return &Client{transports: transports, loading: loading, preferred: -1}
}

// FromConfig builds the strategy list from the configured order
func FromConfig(endpoint string, order []string, directTimeout, callbackTimeout, xhrTimeout time.Duration, loading Loading) *Client {
	if len(order) == 0 {
		order = []string{"direct", "callback", "xhr"}
	}

	var transports []Transport
	for _, name := range order {
		switch strings.ToLower(name) {
		case "direct":
			transports = append(transports, NewDirect(endpoint, directTimeout))
		case "callback":
			transports = append(transports, NewCallback(endpoint, callbackTimeout))
		case "xhr":
			transports = append(transports, NewXHR(endpoint, xhrTimeout))
		default:
			log.Printf("Unknown transport strategy %q ignored", name)
		}
	}
	return NewClient(transports, loading)
}

// Call runs one action against the endpoint. The returned Result is always
// settled: transport failures, timeouts and remote-reported errors all come
// back as an error-status Result, never as a panic or raw error.
func (c *Client) Call(ctx context.Context, action string, data map[string]string, method string) Result {
	if c.loading != nil {
		c.loading.Show()
		defer c.loading.Hide()
	}

	if strings.TrimSpace(action) == "" {
		return Errorf("Aksi tidak dikenal")
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	call := Call{Action: action, Method: method, Data: data}

	for _, i := range c.order() {
		t := c.transports[i]
		res, err := t.Do(ctx, call)
		if err != nil {
			log.Printf("Transport %s failed for %s: %v", t.Name(), action, err)
			continue
		}
		c.remember(i)
		// Remote application errors pass through verbatim
		return res
	}

	return Errorf(connectivityMessage)
}

// Get runs a GET action
func (c *Client) Get(ctx context.Context, action string, data map[string]string) Result {
	return c.Call(ctx, action, data, http.MethodGet)
}

// Post runs a POST action
func (c *Client) Post(ctx context.Context, action string, data map[string]string) Result {
	return c.Call(ctx, action, data, http.MethodPost)
}

// order yields transport indexes with the remembered strategy first
func (c *Client) order() []int {
	c.mu.Lock()
	preferred := c.preferred
	c.mu.Unlock()

	idx := make([]int, 0, len(c.transports))
	if preferred >= 0 && preferred < len(c.transports) {
		idx = append(idx, preferred)
	}
	for i := range c.transports {
		if i != preferred {
			idx = append(idx, i)
		}
	}
	return idx
}

func (c *Client) remember(i int) {
	c.mu.Lock()
	c.preferred = i
	c.mu.Unlock()
}
