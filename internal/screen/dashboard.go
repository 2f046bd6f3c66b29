package screen

import (
	"context"
	"time"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

// DashboardView is the stat-cards-and-charts binding of the landing screen
type DashboardView interface {
	RenderStats(l *model.Laporan)
	RenderCharts(cd model.ChartData)
	RenderAlerts(alerts []Alert)
	Visible() bool
}

// Dashboard loads the aggregate report snapshot into the landing screen and
// keeps it fresh on an interval while the view is visible
type Dashboard struct {
	api    *backend.Client
	view   DashboardView
	notify Notifier

	refresher *Refresher
}

// NewDashboard creates the dashboard controller
func NewDashboard(api *backend.Client, view DashboardView, notify Notifier, refresh time.Duration) *Dashboard {
	d := &Dashboard{api: api, view: view, notify: notify}
	d.refresher = NewRefresher(refresh, view.Visible, func() {
		d.Refresh(context.Background())
	})
	return d
}

// Init performs the first load and starts the periodic refresh
func (d *Dashboard) Init(ctx context.Context) {
	d.Refresh(ctx)
	d.refresher.Start()
}

// Refresh fetches the report snapshot and redraws. On failure the screen
// keeps its current state and the user is told.
func (d *Dashboard) Refresh(ctx context.Context) {
	l, err := d.api.DataLaporan(ctx)
	if err != nil {
		d.notify.Notify("Gagal memuat data dashboard: "+err.Error(), ui.KindError)
		return
	}

	d.view.RenderStats(l)
	d.view.RenderCharts(l.ChartData)
	d.view.RenderAlerts(BuildAlerts(l))
}

// Recompute asks the backend to rebuild its dashboard sheet, then reloads
func (d *Dashboard) Recompute(ctx context.Context) {
	if err := d.api.UpdateDashboard(ctx); err != nil {
		d.notify.Notify("Gagal memperbarui dashboard: "+err.Error(), ui.KindError)
		return
	}
	d.Refresh(ctx)
	d.notify.Notify("Dashboard diperbarui", ui.KindSuccess)
}

// Teardown stops the periodic refresh
func (d *Dashboard) Teardown() {
	d.refresher.Stop()
}
