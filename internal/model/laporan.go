package model

import "fmt"

// AlertRow is one spreadsheet row of a stock alert list. The backend sends
// raw sheet rows (kode, nama, kategori, ... stok, stok minimum), so cells
// are kept untyped and read positionally.
type AlertRow []interface{}

// Cell returns the row cell at i rendered as text, empty when out of range
func (r AlertRow) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	if r[i] == nil {
		return ""
	}
	return fmt.Sprint(r[i])
}

// Series is one chart data series
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ChartData bundles the dashboard chart series
type ChartData struct {
	Pembelian   Series `json:"pembelian"`
	Pengeluaran Series `json:"pengeluaran"`
	PrbVsNonPRB Series `json:"prbVsNonPRB"`
}

// Laporan is the aggregate report snapshot behind the dashboard and report
// screens. It is fetched per page view and never cached across reloads.
type Laporan struct {
	TotalObat                int        `json:"totalObat"`
	StokMenipis              []AlertRow `json:"stokMenipis"`
	StokHabis                []AlertRow `json:"stokHabis"`
	TotalPembelianBulanIni   float64    `json:"totalPembelianBulanIni"`
	TotalPengeluaranBulanIni float64    `json:"totalPengeluaranBulanIni"`
	TotalPRBBulanIni         float64    `json:"totalPRBBulanIni"`
	TotalNonPRBBulanIni      float64    `json:"totalNonPRBBulanIni"`
	TotalTransaksiPembelian  int        `json:"totalTransaksiPembelian"`
	TotalTransaksiPengeluaran int       `json:"totalTransaksiPengeluaran"`
	ChartData                ChartData  `json:"chartData"`
	PengeluaranKategori      map[string]float64 `json:"pengeluaranKategori"`
	LastUpdate               string     `json:"lastUpdate,omitempty"`
}

// PRBPersen returns the PRB share of this month's purchases in whole
// percent, zero when there were none
func (l *Laporan) PRBPersen() int {
	total := l.TotalPRBBulanIni + l.TotalNonPRBBulanIni
	if total <= 0 {
		return 0
	}
	return int(l.TotalPRBBulanIni/total*100 + 0.5)
}

// Ekspor is the answer to a report export request
type Ekspor struct {
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
}

// SystemStatus values reported by getSystemStatus
const (
	SystemNeedsSetup  = "needs_setup"
	SystemInitialized = "initialized"
	SystemHealthy     = "healthy"
)
