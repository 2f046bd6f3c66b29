package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

// ErrStokKurang blocks a dispense that exceeds the last known stock. The
// backend would reject it too; this check just spares the round trip.
var ErrStokKurang = errors.New("stok tidak mencukupi")

// StokCek is the outcome of the courtesy stock check shown next to the
// quantity input
type StokCek struct {
	OK    bool
	Sisa  int
	Pesan string
	Kind  string
}

// PengeluaranView is the dispense entry binding
type PengeluaranView interface {
	RenderKategori(list []string)
	RenderPenginput(list []string, selected string)
	RenderObat(o *model.Obat)
	ClearObat()
	RenderStokCek(c StokCek)
	RenderRingkasan(habis, menipis int)
	RenderHasilCari(list []model.Obat)
	ClearForm()
}

// Pengeluaran handles dispense entry, including the client-side stock
// courtesy check against the last fetched drug record
type Pengeluaran struct {
	api    *backend.Client
	view   PengeluaranView
	notify Notifier
	user   *model.User

	mu       sync.Mutex
	lastObat *model.Obat
}

// NewPengeluaran creates the dispense controller
func NewPengeluaran(api *backend.Client, view PengeluaranView, notify Notifier, user *model.User) *Pengeluaran {
	return &Pengeluaran{api: api, view: view, notify: notify, user: user}
}

// Init loads the dropdowns and the quick stock summary in parallel
func (p *Pengeluaran) Init(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		kategori, err := p.api.DaftarKategori(ctx)
		if err != nil {
			p.notify.Notify("Gagal memuat data dropdown: "+err.Error(), ui.KindError)
			return
		}
		p.view.RenderKategori(kategori)
	}()

	go func() {
		defer wg.Done()
		penginput, err := p.api.DaftarPenginput(ctx)
		if err != nil {
			p.notify.Notify("Gagal memuat data dropdown: "+err.Error(), ui.KindError)
			return
		}
		selected := ""
		if p.user != nil {
			selected = p.user.Nama
		}
		p.view.RenderPenginput(penginput, selected)
	}()

	go func() {
		defer wg.Done()
		p.MuatRingkasan(ctx)
	}()

	wg.Wait()
}

// MuatRingkasan redraws the depleted/running-low counts above the form
func (p *Pengeluaran) MuatRingkasan(ctx context.Context) {
	l, err := p.api.DataLaporan(ctx)
	if err != nil {
		// The summary is decoration; the form works without it
		return
	}
	p.view.RenderRingkasan(len(l.StokHabis), len(l.StokMenipis))
}

// LookupObat resolves a drug code, fills the form and runs the stock check
func (p *Pengeluaran) LookupObat(ctx context.Context, kodeObat string) {
	o, err := p.api.CariObat(ctx, kodeObat)
	if err != nil {
		p.mu.Lock()
		p.lastObat = nil
		p.mu.Unlock()
		p.view.ClearObat()
		p.notify.Notify("Obat tidak ditemukan: "+kodeObat, ui.KindWarning)
		return
	}

	p.mu.Lock()
	p.lastObat = o
	p.mu.Unlock()
	p.view.RenderObat(o)
}

// CariByNama searches the catalog by name for the browse dialog
func (p *Pengeluaran) CariByNama(ctx context.Context, namaObat string) {
	list, err := p.api.CariObatByNama(ctx, namaObat)
	if err != nil {
		p.notify.Notify("Gagal mencari obat: "+err.Error(), ui.KindError)
		return
	}
	p.view.RenderHasilCari(list)
}

// Pilih takes a drug picked from the browse dialog
func (p *Pengeluaran) Pilih(o model.Obat) {
	p.mu.Lock()
	p.lastObat = &o
	p.mu.Unlock()
	p.view.RenderObat(&o)
}

// LastObat returns a copy of the last resolved drug, nil when none
func (p *Pengeluaran) LastObat() *model.Obat {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastObat == nil {
		return nil
	}
	o := *p.lastObat
	return &o
}

// CekStok compares a requested quantity against the last known stock. This
// is a courtesy check only; the backend performs the authoritative one.
func (p *Pengeluaran) CekStok(jumlahKeluar int) StokCek {
	p.mu.Lock()
	stok := 0
	if p.lastObat != nil {
		stok = p.lastObat.Stok
	}
	p.mu.Unlock()

	var c StokCek
	switch {
	case jumlahKeluar > stok:
		c = StokCek{
			OK:    false,
			Sisa:  stok,
			Pesan: fmt.Sprintf("Stok tidak cukup! Stok tersedia: %d", stok),
			Kind:  ui.KindError,
		}
	case stok-jumlahKeluar <= 0:
		c = StokCek{
			OK:    true,
			Sisa:  0,
			Pesan: "Stok akan habis setelah pengeluaran ini",
			Kind:  ui.KindWarning,
		}
	default:
		c = StokCek{
			OK:    true,
			Sisa:  stok - jumlahKeluar,
			Pesan: fmt.Sprintf("Stok mencukupi. Sisa stok: %d", stok-jumlahKeluar),
			Kind:  ui.KindSuccess,
		}
	}

	p.view.RenderStokCek(c)
	return c
}

// Keterangan notes offer a fixed list plus "Lainnya" with free text
func NormalisasiKeterangan(keterangan, lainnya string) string {
	if keterangan != "Lainnya" {
		return keterangan
	}
	if s := strings.TrimSpace(lainnya); s != "" {
		return s
	}
	return "Lainnya"
}

// Submit books the dispense. The stock courtesy check runs first and blocks
// the request entirely when the quantity exceeds the last known stock.
func (p *Pengeluaran) Submit(ctx context.Context, form model.PengeluaranForm) error {
	if cek := p.CekStok(form.JumlahKeluar); !cek.OK {
		p.notify.Notify("Stok tidak mencukupi untuk pengeluaran ini", ui.KindError)
		return ErrStokKurang
	}

	if err := form.Validate(); err != nil {
		p.notify.Notify(err.Error(), ui.KindError)
		return err
	}

	newStock, err := p.api.SimpanPengeluaran(ctx, form)
	if err != nil {
		p.notify.Notify("Gagal menyimpan pengeluaran: "+err.Error(), ui.KindError)
		return err
	}

	p.mu.Lock()
	if p.lastObat != nil && p.lastObat.Kode == form.KodeObat {
		p.lastObat.Stok = newStock
	}
	p.mu.Unlock()

	p.notify.Notify("Pengeluaran berhasil disimpan! Stok diperbarui.", ui.KindSuccess)
	p.view.ClearForm()
	p.MuatRingkasan(ctx)
	return nil
}
