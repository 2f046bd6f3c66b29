package screen

import (
	"context"
	"time"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

// LaporanView is the report screen binding
type LaporanView interface {
	RenderStats(l *model.Laporan)
	RenderCharts(cd model.ChartData)
	RenderKategoriBreakdown(breakdown map[string]float64)
	ShowUnduhan(e *model.Ekspor)
	Visible() bool
}

// Laporan drives the report screen and the export flow
type Laporan struct {
	api    *backend.Client
	view   LaporanView
	notify Notifier

	refresher *Refresher
}

// NewLaporan creates the report controller. A zero refresh interval leaves
// the screen on-demand only.
func NewLaporan(api *backend.Client, view LaporanView, notify Notifier, refresh time.Duration) *Laporan {
	l := &Laporan{api: api, view: view, notify: notify}
	l.refresher = NewRefresher(refresh, view.Visible, func() {
		l.Refresh(context.Background())
	})
	return l
}

// Init performs the first load and starts any periodic refresh
func (l *Laporan) Init(ctx context.Context) {
	l.Refresh(ctx)
	l.refresher.Start()
}

// Refresh fetches the report snapshot and redraws
func (l *Laporan) Refresh(ctx context.Context) {
	data, err := l.api.DataLaporan(ctx)
	if err != nil {
		l.notify.Notify("Gagal memuat data laporan: "+err.Error(), ui.KindError)
		return
	}

	l.view.RenderStats(data)
	l.view.RenderCharts(data.ChartData)
	l.view.RenderKategoriBreakdown(data.PengeluaranKategori)
}

// Ekspor validates the export request and hands the resulting download to
// the view
func (l *Laporan) Ekspor(ctx context.Context, form model.EksporForm) error {
	if err := form.Validate(); err != nil {
		l.notify.Notify(err.Error(), ui.KindError)
		return err
	}

	l.notify.Notify("Membuat laporan...", ui.KindInfo)

	e, err := l.api.EksporLaporan(ctx, form)
	if err != nil {
		l.notify.Notify("Gagal membuat laporan: "+err.Error(), ui.KindError)
		return err
	}

	l.view.ShowUnduhan(e)
	l.notify.Notify("Laporan berhasil dibuat: "+e.FileName, ui.KindSuccess)
	return nil
}

// Teardown stops the periodic refresh
func (l *Laporan) Teardown() {
	l.refresher.Stop()
}
