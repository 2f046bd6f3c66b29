// Package screen drives the application's views. Each controller follows
// the same lifecycle: load reference data, fetch the primary dataset,
// render through a typed view binding, then handle input until teardown.
package screen

import (
	"sync"
	"time"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
)

// Notifier shows a transient user-facing banner
type Notifier interface {
	Notify(message, kind string)
}

// Refresher reruns a screen load on an interval, skipping ticks while the
// attached view reports itself not visible. Start and Stop are idempotent;
// a stopped refresher stays stopped.
type Refresher struct {
	interval time.Duration
	visible  func() bool
	fn       func()

	mu      sync.Mutex
	started bool
	stop    sync.Once
	done    chan struct{}
}

// NewRefresher creates a refresher. A zero interval disables it.
func NewRefresher(interval time.Duration, visible func() bool, fn func()) *Refresher {
	return &Refresher{
		interval: interval,
		visible:  visible,
		fn:       fn,
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop once
func (r *Refresher) Start() {
	if r == nil || r.interval <= 0 {
		return
	}

	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	go r.loop()
}

func (r *Refresher) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			if r.visible != nil && !r.visible() {
				continue
			}
			r.fn()
		}
	}
}

// Stop ends the refresh loop
func (r *Refresher) Stop() {
	if r == nil {
		return
	}
	r.stop.Do(func() { close(r.done) })
}

// Alert is one stock alert table row with its derived severity
type Alert struct {
	Row    model.AlertRow
	Status model.StokStatus
}

// BuildAlerts orders the report's alert rows for display: depleted drugs
// first, then the ones running low. Rows without a drug code are skipped,
// matching the sheet's trailing blanks.
func BuildAlerts(l *model.Laporan) []Alert {
	alerts := make([]Alert, 0, len(l.StokHabis)+len(l.StokMenipis))
	for _, row := range l.StokHabis {
		if row.Cell(0) == "" {
			continue
		}
		alerts = append(alerts, Alert{Row: row, Status: model.StokHabis})
	}
	for _, row := range l.StokMenipis {
		if row.Cell(0) == "" {
			continue
		}
		alerts = append(alerts, Alert{Row: row, Status: model.StokMenipis})
	}
	return alerts
}
