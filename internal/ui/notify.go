package ui

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
)

// Notification kinds, mirroring the banner styles of the web UI
const (
	KindSuccess = "success"
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

// Banners other than errors remove themselves after this delay
const autoDismissDelay = 5 * time.Second

// Banner represents a single user-facing notification
type Banner struct {
	ID        int       `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier is a thread-safe ring buffer of notification banners
type Notifier struct {
	mu      sync.RWMutex
	entries []Banner
	cap     int
	nextID  int

	dismiss time.Duration

	// OnPublish, when set, is invoked for every new banner (used to push
	// notifications to attached local UIs)
	OnPublish func(Banner)
}

// NewNotifier creates a new notifier with the given capacity
func NewNotifier(capacity int) *Notifier {
	return &Notifier{
		entries: make([]Banner, 0, capacity),
		cap:     capacity,
		nextID:  1,
		dismiss: autoDismissDelay,
	}
}

// Notify adds a banner. Non-error banners self-remove after a fixed delay.
func (n *Notifier) Notify(message, kind string) {
	n.mu.Lock()

	b := Banner{
		ID:        n.nextID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
	n.nextID++

	if len(n.entries) >= n.cap {
		// Shift everything left by 1, drop oldest
		copy(n.entries, n.entries[1:])
		n.entries[len(n.entries)-1] = b
	} else {
		n.entries = append(n.entries, b)
	}

	publish := n.OnPublish
	n.mu.Unlock()

	if kind != KindError {
		time.AfterFunc(n.dismiss, func() { n.Dismiss(b.ID) })
	}

	if publish != nil {
		publish(b)
	}
}

// Dismiss removes a banner by ID
func (n *Notifier) Dismiss(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.entries {
		if e.ID == id {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			return
		}
	}
}

// Active returns the banners currently shown, optionally filtered by kind
func (n *Notifier) Active(kinds []string) []Banner {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if len(kinds) == 0 {
		result := make([]Banner, len(n.entries))
		copy(result, n.entries)
		return result
	}

	kindSet := make(map[string]bool)
	for _, k := range kinds {
		kindSet[strings.ToLower(k)] = true
	}

	result := make([]Banner, 0)
	for _, e := range n.entries {
		if kindSet[strings.ToLower(e.Kind)] {
			result = append(result, e)
		}
	}
	return result
}

// Clear removes all banners
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = n.entries[:0]
}

// SetAutoDismiss overrides the self-removal delay (tests use a short one)
func (n *Notifier) SetAutoDismiss(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dismiss = d
}

// Notifyf formats and adds a banner
func (n *Notifier) Notifyf(kind, format string, args ...interface{}) {
	n.Notify(fmt.Sprintf(format, args...), kind)
}

// logWriter adapts Notifier to io.Writer for use with Go's log package
type logWriter struct {
	n *Notifier
}

func (lw *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg == "" {
		return len(p), nil
	}

	// Parse banner kind from message
	kind := KindInfo
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "error") || strings.Contains(lower, "gagal") {
		kind = KindError
	} else if strings.Contains(lower, "warn") {
		kind = KindWarning
	}

	// Strip standard log prefix (date/time) if present
	// Go's log package prefixes with "2006/01/02 15:04:05 "
	if len(msg) > 20 && msg[4] == '/' && msg[7] == '/' && msg[10] == ' ' {
		msg = msg[20:]
	}

	lw.n.Notify(msg, kind)
	return len(p), nil
}

// InstallLogCapture sets up Go's log package to write to the Notifier
// and also to stderr. Returns the multi-writer for additional use.
func InstallLogCapture(n *Notifier) io.Writer {
	lw := &logWriter{n: n}
	multi := io.MultiWriter(lw, log.Writer())
	log.SetOutput(multi)
	log.SetFlags(log.LstdFlags)
	return multi
}
