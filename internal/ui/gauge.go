package ui

import "sync"

// Gauge tracks the blocking loading overlay. Show and Hide must be paired
// around every asynchronous backend call; the counter keeps nested calls
// from hiding the overlay early.
type Gauge struct {
	mu    sync.Mutex
	count int
}

// NewGauge creates a loading gauge
func NewGauge() *Gauge {
	return &Gauge{}
}

// Show activates the overlay
func (g *Gauge) Show() {
	g.mu.Lock()
	g.count++
	g.mu.Unlock()
}

// Hide releases one Show. Extra Hides are ignored.
func (g *Gauge) Hide() {
	g.mu.Lock()
	if g.count > 0 {
		g.count--
	}
	g.mu.Unlock()
}

// Active reports whether the overlay is showing
func (g *Gauge) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count > 0
}
