package screen

import (
	"context"
	"sync"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

// PembelianView is the purchase entry binding
type PembelianView interface {
	RenderKategori(list []string)
	RenderJenisTransaksi(list []string)
	RenderPenginput(list []string, selected string)
	RenderObat(o *model.Obat)
	ClearObat()
	RenderTotal(total float64)
	RenderHasilCari(list []model.Obat)
	ClearForm()
}

// Pembelian handles purchase entry: reference dropdowns, drug lookup, a
// running total and the submission itself
type Pembelian struct {
	api    *backend.Client
	view   PembelianView
	notify Notifier
	user   *model.User

	mu       sync.Mutex
	lastObat *model.Obat
}

// NewPembelian creates the purchase controller. The logged-in user is
// preselected in the staff dropdown.
func NewPembelian(api *backend.Client, view PembelianView, notify Notifier, user *model.User) *Pembelian {
	return &Pembelian{api: api, view: view, notify: notify, user: user}
}

// Init loads the three reference dropdowns in parallel
func (p *Pembelian) Init(ctx context.Context) {
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
		jenis, err := p.api.DaftarJenisTransaksi(ctx)
		if err != nil {
			p.notify.Notify("Gagal memuat data dropdown: "+err.Error(), ui.KindError)
			return
		}
		p.view.RenderJenisTransaksi(jenis)
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

	wg.Wait()
}

// LookupObat resolves a drug code and fills the form fields from it
func (p *Pembelian) LookupObat(ctx context.Context, kodeObat string) {
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
func (p *Pembelian) CariByNama(ctx context.Context, namaObat string) {
	list, err := p.api.CariObatByNama(ctx, namaObat)
	if err != nil {
		p.notify.Notify("Gagal mencari obat: "+err.Error(), ui.KindError)
		return
	}
	p.view.RenderHasilCari(list)
}

// Pilih takes a drug picked from the browse dialog
func (p *Pembelian) Pilih(o model.Obat) {
	p.mu.Lock()
	p.lastObat = &o
	p.mu.Unlock()
	p.view.RenderObat(&o)
}

// LastObat returns the drug the form currently refers to
func (p *Pembelian) LastObat() *model.Obat {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastObat == nil {
		return nil
	}
	o := *p.lastObat
	return &o
}

// HitungTotal redraws the running purchase total
func (p *Pembelian) HitungTotal(form model.PembelianForm) {
	p.view.RenderTotal(form.Total())
}

// Submit validates and books the purchase. Validation failures are shown
// without issuing a request; on success the known stock is redrawn from the
// backend's answer.
func (p *Pembelian) Submit(ctx context.Context, form model.PembelianForm) error {
	if err := form.Validate(); err != nil {
		p.notify.Notify(err.Error(), ui.KindError)
		return err
	}

	newStock, err := p.api.SimpanPembelian(ctx, form)
	if err != nil {
		p.notify.Notify("Gagal menyimpan pembelian: "+err.Error(), ui.KindError)
		return err
	}

	p.mu.Lock()
	if p.lastObat != nil && p.lastObat.Kode == form.KodeObat {
		p.lastObat.Stok = newStock
	}
	p.mu.Unlock()

	p.notify.Notify("Pembelian berhasil disimpan! Stok diperbarui.", ui.KindSuccess)
	p.view.ClearForm()
	return nil
}
