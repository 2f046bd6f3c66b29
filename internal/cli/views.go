package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/screen"
)

// Terminal renders every screen onto one text writer. It also remembers the
// reference lists so the prompt loop can offer numbered choices.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	kategori       []string
	jenisTransaksi []string
	penginput      []string
	penginputSaran string
	hasilCari      []model.Obat
}

// NewTerminal creates the terminal view
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Visible is always true for an attached terminal
func (t *Terminal) Visible() bool { return true }

// Kategori returns the last rendered category list
func (t *Terminal) Kategori() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.kategori...)
}

// JenisTransaksi returns the last rendered transaction type list
func (t *Terminal) JenisTransaksi() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.jenisTransaksi...)
}

// Penginput returns the staff list and the preselected name
func (t *Terminal) Penginput() ([]string, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.penginput...), t.penginputSaran
}

// HasilCari returns the last browse results
func (t *Terminal) HasilCari() []model.Obat {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.Obat(nil), t.hasilCari...)
}

func (t *Terminal) RenderKategori(list []string) {
	t.mu.Lock()
	t.kategori = list
	t.mu.Unlock()
}

func (t *Terminal) RenderJenisTransaksi(list []string) {
	t.mu.Lock()
	t.jenisTransaksi = list
	t.mu.Unlock()
}

func (t *Terminal) RenderPenginput(list []string, selected string) {
	t.mu.Lock()
	t.penginput = list
	t.penginputSaran = selected
	t.mu.Unlock()
}

// RenderStats prints the dashboard stat cards
func (t *Terminal) RenderStats(l *model.Laporan) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintln(t.out, "\n=== Dashboard ===")
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total Obat\t%d\n", l.TotalObat)
	fmt.Fprintf(w, "Stok Menipis\t%d\n", len(l.StokMenipis))
	fmt.Fprintf(w, "Stok Habis\t%d\n", len(l.StokHabis))
	fmt.Fprintf(w, "Pembelian Bulan Ini\t%s\n", Rupiah(l.TotalPembelianBulanIni))
	fmt.Fprintf(w, "Pengeluaran Bulan Ini\t%.0f items\n", l.TotalPengeluaranBulanIni)
	if p := l.PRBPersen(); p > 0 {
		fmt.Fprintf(w, "Rasio PRB\t%d%% PRB\n", p)
	}
	w.Flush()
}

// RenderCharts prints the chart series as plain rows
func (t *Terminal) RenderCharts(cd model.ChartData) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(cd.Pembelian.Labels) == 0 {
		return
	}
	fmt.Fprintln(t.out, "\nTren Pembelian vs Pengeluaran:")
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Periode\tPembelian (Rp)\tPengeluaran (Qty)")
	for i, label := range cd.Pembelian.Labels {
		beli := seriesAt(cd.Pembelian.Data, i)
		keluar := seriesAt(cd.Pengeluaran.Data, i)
		fmt.Fprintf(w, "%s\t%s\t%.0f\n", label, Rupiah(beli), keluar)
	}
	w.Flush()
}

func seriesAt(data []float64, i int) float64 {
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}

// RenderAlerts prints the stock alert table, depleted drugs first
func (t *Terminal) RenderAlerts(alerts []screen.Alert) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintln(t.out, "\nPeringatan Stok:")
	if len(alerts) == 0 {
		fmt.Fprintln(t.out, "  Semua stok dalam kondisi aman")
		return
	}

	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Kode\tNama\tKategori\tStok\tStok Min\tStatus")
	for _, a := range alerts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Row.Cell(0), a.Row.Cell(1), a.Row.Cell(2),
			a.Row.Cell(4), a.Row.Cell(5), strings.ToUpper(string(a.Status)))
	}
	w.Flush()
}

// RenderTable prints one catalog page
func (t *Terminal) RenderTable(items []model.Obat, page, totalPages, totalItems int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if totalItems == 0 {
		fmt.Fprintln(t.out, "\nTidak ada data obat yang sesuai dengan filter")
		return
	}

	fmt.Fprintf(t.out, "\nData Obat (halaman %d dari %d, %d item):\n", page, totalPages, totalItems)
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Kode\tNama\tKategori\tSatuan\tStok Min\tStok\tStatus")
	for _, o := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			o.Kode, o.Nama, o.Kategori, o.Satuan, o.StokMin, o.Stok,
			strings.ToUpper(string(o.Status())))
	}
	w.Flush()
}

// ShowDetail prints one drug record
func (t *Terminal) ShowDetail(o model.Obat) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "\nDetail Obat: %s\n", o.Nama)
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Kode Obat\t%s\n", o.Kode)
	fmt.Fprintf(w, "Nama Obat\t%s\n", o.Nama)
	fmt.Fprintf(w, "Kategori\t%s\n", o.Kategori)
	fmt.Fprintf(w, "Satuan\t%s\n", o.Satuan)
	fmt.Fprintf(w, "Stok Minimum\t%d\n", o.StokMin)
	fmt.Fprintf(w, "Stok Saat Ini\t%d\n", o.Stok)
	fmt.Fprintf(w, "Status\t%s\n", strings.ToUpper(string(o.Status())))
	w.Flush()
}

// RenderObat prints the resolved drug above the entry form
func (t *Terminal) RenderObat(o *model.Obat) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "Obat: %s (%s) — stok %d %s [%s]\n",
		o.Nama, o.Kategori, o.Stok, o.Satuan, strings.ToUpper(string(o.Status())))
	if o.Stok <= o.StokMin {
		fmt.Fprintln(t.out, "  ! Stok menipis")
	}
}

// ClearObat resets the resolved drug fields
func (t *Terminal) ClearObat() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, "Obat: -")
}

// RenderTotal prints the running purchase total
func (t *Terminal) RenderTotal(total float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "Total harga: %s\n", Rupiah(total))
}

// RenderHasilCari prints browse search results
func (t *Terminal) RenderHasilCari(list []model.Obat) {
	t.mu.Lock()
	t.hasilCari = list
	t.mu.Unlock()

	if len(list) == 0 {
		fmt.Fprintln(t.out, "Tidak ada obat ditemukan")
		return
	}

	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "No\tKode\tNama\tKategori\tStok")
	for i, o := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", i+1, o.Kode, o.Nama, o.Kategori, o.Stok)
	}
	w.Flush()
}

// RenderStokCek prints the stock courtesy check outcome
func (t *Terminal) RenderStokCek(c screen.StokCek) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, c.Pesan)
}

// RenderRingkasan prints the quick stock alert counts
func (t *Terminal) RenderRingkasan(habis, menipis int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case habis == 0 && menipis == 0:
		fmt.Fprintln(t.out, "Semua stok dalam kondisi aman")
	default:
		if habis > 0 {
			fmt.Fprintf(t.out, "%d Obat Habis\n", habis)
		}
		if menipis > 0 {
			fmt.Fprintf(t.out, "%d Obat Menipis\n", menipis)
		}
	}
}

// RenderKategoriBreakdown prints the dispense-by-category breakdown
func (t *Terminal) RenderKategoriBreakdown(breakdown map[string]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(breakdown) == 0 {
		return
	}
	fmt.Fprintln(t.out, "\nPengeluaran per Kategori:")
	w := tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
	for k, v := range breakdown {
		fmt.Fprintf(w, "%s\t%.0f items\n", k, v)
	}
	w.Flush()
}

// ShowUnduhan prints the export download location
func (t *Terminal) ShowUnduhan(e *model.Ekspor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "Laporan siap: %s\nUnduh: %s\n", e.FileName, e.DownloadURL)
}

// ClearForm marks the entry form as reset
func (t *Terminal) ClearForm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, "Formulir dikosongkan.")
}

// Rupiah formats an amount the Indonesian way: Rp with dot thousands
// separators and no decimals
func Rupiah(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	digits := strconv.FormatFloat(v, 'f', 0, 64)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}
