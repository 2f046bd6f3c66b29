package screen

import (
	"context"
	"strings"
	"sync"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

// Catalog pages are a fixed ten rows
const pageSize = 10

// ObatFilter narrows the catalog: category equality, derived-status
// equality, and a case-insensitive substring over code plus name. Empty
// fields match everything.
type ObatFilter struct {
	Kategori string
	Status   model.StokStatus
	Cari     string
}

func (f ObatFilter) match(o model.Obat) bool {
	if f.Kategori != "" && o.Kategori != f.Kategori {
		return false
	}
	if f.Status != "" && o.Status() != f.Status {
		return false
	}
	if f.Cari != "" {
		haystack := strings.ToLower(o.Kode + " " + o.Nama)
		if !strings.Contains(haystack, strings.ToLower(f.Cari)) {
			return false
		}
	}
	return true
}

// KatalogView is the drug catalog binding
type KatalogView interface {
	RenderKategori(list []string)
	RenderTable(items []model.Obat, page, totalPages, totalItems int)
	ShowDetail(o model.Obat)
}

// Katalog lists the drug catalog with client-side filtering and pagination
type Katalog struct {
	api    *backend.Client
	view   KatalogView
	notify Notifier

	mu       sync.Mutex
	data     []model.Obat
	filtered []model.Obat
	filter   ObatFilter
	page     int
}

// NewKatalog creates the catalog controller
func NewKatalog(api *backend.Client, view KatalogView, notify Notifier) *Katalog {
	return &Katalog{api: api, view: view, notify: notify, page: 1}
}

// Init loads the category dropdown and the catalog. The two fetches are
// independent and run in parallel.
func (k *Katalog) Init(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		kategori, err := k.api.DaftarKategori(ctx)
		if err != nil {
			k.notify.Notify("Gagal memuat data kategori: "+err.Error(), ui.KindError)
			return
		}
		k.view.RenderKategori(kategori)
	}()

	go func() {
		defer wg.Done()
		k.Reload(ctx)
	}()

	wg.Wait()
}

// Reload refetches the catalog and reapplies the current filter
func (k *Katalog) Reload(ctx context.Context) {
	data, err := k.api.AllObat(ctx)
	if err != nil {
		k.notify.Notify("Gagal memuat data obat: "+err.Error(), ui.KindError)
		return
	}

	k.mu.Lock()
	k.data = data
	k.applyLocked()
	k.mu.Unlock()
	k.render()
}

// SetFilter replaces the filter and jumps back to the first page
func (k *Katalog) SetFilter(f ObatFilter) {
	k.mu.Lock()
	k.filter = f
	k.applyLocked()
	k.mu.Unlock()
	k.render()
}

func (k *Katalog) applyLocked() {
	k.filtered = k.filtered[:0]
	for _, o := range k.data {
		if k.filter.match(o) {
			k.filtered = append(k.filtered, o)
		}
	}
	k.page = 1
}

// PageCount returns the number of pages for the filtered set
func (k *Katalog) PageCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return pageCountLocked(len(k.filtered))
}

func pageCountLocked(n int) int {
	if n == 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// SetPage moves to the given page, clamped to the valid range
func (k *Katalog) SetPage(page int) {
	k.mu.Lock()
	pages := pageCountLocked(len(k.filtered))
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}
	k.page = page
	k.mu.Unlock()
	k.render()
}

// CurrentPage returns the active page number
func (k *Katalog) CurrentPage() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.page
}

// Page returns the current page slice of the filtered set
func (k *Katalog) Page() []model.Obat {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pageLocked()
}

func (k *Katalog) pageLocked() []model.Obat {
	start := (k.page - 1) * pageSize
	if start >= len(k.filtered) {
		return nil
	}
	end := start + pageSize
	if end > len(k.filtered) {
		end = len(k.filtered)
	}
	out := make([]model.Obat, end-start)
	copy(out, k.filtered[start:end])
	return out
}

// Filtered returns a copy of the whole filtered set
func (k *Katalog) Filtered() []model.Obat {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]model.Obat, len(k.filtered))
	copy(out, k.filtered)
	return out
}

func (k *Katalog) render() {
	k.mu.Lock()
	items := k.pageLocked()
	page := k.page
	pages := pageCountLocked(len(k.filtered))
	total := len(k.filtered)
	k.mu.Unlock()

	k.view.RenderTable(items, page, pages, total)
}

// Tambah registers a new drug after local validation, then reloads
func (k *Katalog) Tambah(ctx context.Context, form model.ObatBaruForm) error {
	if err := form.Validate(); err != nil {
		k.notify.Notify("Semua field bertanda * harus diisi", ui.KindError)
		return err
	}

	if _, err := k.api.TambahObat(ctx, form); err != nil {
		k.notify.Notify("Gagal menambah obat: "+err.Error(), ui.KindError)
		return err
	}

	k.notify.Notify("Obat berhasil ditambahkan", ui.KindSuccess)
	k.Reload(ctx)
	return nil
}

// Detail looks one drug up by code and shows it
func (k *Katalog) Detail(ctx context.Context, kodeObat string) {
	o, err := k.api.CariObat(ctx, kodeObat)
	if err != nil {
		k.notify.Notify("Gagal memuat detail obat: "+err.Error(), ui.KindError)
		return
	}
	k.view.ShowDetail(*o)
}
