package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/config"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/screen"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/session"
)

// App drives the terminal menus over the screen controllers
type App struct {
	in     *bufio.Reader
	out    io.Writer
	cfg    *config.Config
	api    *backend.Client
	sess   *session.Store
	auth   *screen.Auth
	notify screen.Notifier
	term   *Terminal
}

// NewApp wires the terminal front end
func NewApp(in io.Reader, out io.Writer, cfg *config.Config, api *backend.Client, sess *session.Store, auth *screen.Auth, notify screen.Notifier) *App {
	return &App{
		in:     bufio.NewReader(in),
		out:    out,
		cfg:    cfg,
		api:    api,
		sess:   sess,
		auth:   auth,
		notify: notify,
		term:   NewTerminal(out),
	}
}

// Run loops over the main menu until the user quits or the context ends
func (a *App) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !a.sess.IsAuthenticated() {
			if !a.loginLoop(ctx) {
				return nil
			}
		}

		sess := a.sess.Current()
		fmt.Fprintf(a.out, "\n=== Stok Obat Puskesmas Sanden ===\n")
		if sess != nil && sess.User != nil {
			fmt.Fprintf(a.out, "Pengguna: %s (%s)\n", sess.User.Nama, sess.User.Role)
		}
		fmt.Fprintln(a.out, "1. Dashboard")
		fmt.Fprintln(a.out, "2. Data Obat")
		fmt.Fprintln(a.out, "3. Pembelian")
		fmt.Fprintln(a.out, "4. Pengeluaran")
		fmt.Fprintln(a.out, "5. Laporan")
		fmt.Fprintln(a.out, "6. Logout")
		fmt.Fprintln(a.out, "0. Keluar")

		switch a.prompt("Pilih menu: ") {
		case "1":
			a.dashboardLoop(ctx)
		case "2":
			a.obatLoop(ctx)
		case "3":
			a.pembelianLoop(ctx)
		case "4":
			a.pengeluaranLoop(ctx)
		case "5":
			a.laporanLoop(ctx)
		case "6":
			a.auth.Logout(ctx)
		case "0", "":
			return nil
		default:
			fmt.Fprintln(a.out, "Menu tidak dikenal")
		}
	}
}

// loginLoop prompts for credentials until login succeeds or the user gives up
func (a *App) loginLoop(ctx context.Context) bool {
	for {
		fmt.Fprintln(a.out, "\n=== Login ===")
		cred := model.Kredensial{
			Username: a.prompt("Username: "),
			Password: a.prompt("Password: "),
		}
		if cred.Username == "" && cred.Password == "" {
			return false
		}
		if err := a.auth.Login(ctx, cred); err == nil {
			return true
		}
	}
}

func (a *App) dashboardLoop(ctx context.Context) {
	d := screen.NewDashboard(a.api, a.term, a.notify, a.cfg.Refresh.Dashboard)
	d.Init(ctx)
	defer d.Teardown()

	for {
		fmt.Fprintln(a.out, "\n[r] muat ulang  [u] hitung ulang dashboard  [k] kembali")
		switch a.prompt("> ") {
		case "r":
			d.Refresh(ctx)
		case "u":
			d.Recompute(ctx)
		case "k", "":
			return
		}
	}
}

func (a *App) obatLoop(ctx context.Context) {
	k := screen.NewKatalog(a.api, a.term, a.notify)
	k.Init(ctx)

	filter := screen.ObatFilter{}
	for {
		fmt.Fprintln(a.out, "\n[f] filter  [c] cari  [n/p] halaman  [t] tambah obat  [d] detail  [r] muat ulang  [k] kembali")
		switch a.prompt("> ") {
		case "f":
			filter.Kategori = a.prompt("Kategori (kosong = semua): ")
			filter.Status = model.StokStatus(a.prompt("Status (aman/perhatian/menipis/habis, kosong = semua): "))
			k.SetFilter(filter)
		case "c":
			filter.Cari = a.prompt("Cari kode/nama: ")
			k.SetFilter(filter)
		case "n":
			k.SetPage(k.CurrentPage() + 1)
		case "p":
			k.SetPage(k.CurrentPage() - 1)
		case "t":
			a.tambahObat(ctx, k)
		case "d":
			if kode := a.prompt("Kode obat: "); kode != "" {
				k.Detail(ctx, kode)
			}
		case "r":
			k.Reload(ctx)
		case "k", "":
			return
		}
	}
}

func (a *App) tambahObat(ctx context.Context, k *screen.Katalog) {
	fmt.Fprintln(a.out, "\n=== Tambah Obat Baru ===")
	form := model.ObatBaruForm{
		KodeObat:    a.prompt("Kode obat *: "),
		NamaObat:    a.prompt("Nama obat *: "),
		Kategori:    a.pilihDari("Kategori *", a.term.Kategori()),
		Satuan:      a.prompt("Satuan *: "),
		StokMinimum: a.promptInt("Stok minimum *: "),
		StokAwal:    a.promptInt("Stok awal: "),
	}
	k.Tambah(ctx, form)
}

func (a *App) pembelianLoop(ctx context.Context) {
	var user *model.User
	if sess := a.sess.Current(); sess != nil {
		user = sess.User
	}
	p := screen.NewPembelian(a.api, a.term, a.notify, user)
	p.Init(ctx)

	for {
		fmt.Fprintln(a.out, "\n[o] cari obat per kode  [n] cari obat per nama  [s] simpan pembelian  [k] kembali")
		switch a.prompt("> ") {
		case "o":
			if kode := a.prompt("Kode obat: "); kode != "" {
				p.LookupObat(ctx, kode)
			}
		case "n":
			a.cariNama(ctx, p.CariByNama, p.Pilih)
		case "s":
			a.submitPembelian(ctx, p)
		case "k", "":
			return
		}
	}
}

func (a *App) submitPembelian(ctx context.Context, p *screen.Pembelian) {
	obat := p.LastObat()
	if obat == nil {
		fmt.Fprintln(a.out, "Cari obat terlebih dahulu")
		return
	}

	penginput, saran := a.term.Penginput()
	form := model.PembelianForm{
		KodeObat:       obat.Kode,
		NamaObat:       obat.Nama,
		Kategori:       obat.Kategori,
		Satuan:         obat.Satuan,
		TanggalBeli:    a.promptDefault("Tanggal beli", time.Now().Format("2006-01-02")),
		NoFaktur:       a.prompt("No faktur: "),
		JumlahBeli:     a.promptInt("Jumlah beli *: "),
		HargaSatuan:    a.promptFloat("Harga satuan *: "),
		Pajak:          a.promptFloat("Pajak (%): "),
		JenisTransaksi: a.pilihDari("Jenis transaksi *", a.term.JenisTransaksi()),
		Distributor:    a.prompt("Distributor: "),
		Keterangan:     a.prompt("Keterangan: "),
		NamaPenginput:  a.pilihDefault("Nama penginput *", penginput, saran),
	}

	p.HitungTotal(form)
	if a.prompt("Simpan? (y/n): ") != "y" {
		return
	}
	p.Submit(ctx, form)
}

func (a *App) pengeluaranLoop(ctx context.Context) {
	var user *model.User
	if sess := a.sess.Current(); sess != nil {
		user = sess.User
	}
	p := screen.NewPengeluaran(a.api, a.term, a.notify, user)
	p.Init(ctx)

	for {
		fmt.Fprintln(a.out, "\n[o] cari obat per kode  [n] cari obat per nama  [s] simpan pengeluaran  [k] kembali")
		switch a.prompt("> ") {
		case "o":
			if kode := a.prompt("Kode obat: "); kode != "" {
				p.LookupObat(ctx, kode)
			}
		case "n":
			a.cariNama(ctx, p.CariByNama, p.Pilih)
		case "s":
			a.submitPengeluaran(ctx, p)
		case "k", "":
			return
		}
	}
}

func (a *App) submitPengeluaran(ctx context.Context, p *screen.Pengeluaran) {
	obat := p.LastObat()
	if obat == nil {
		fmt.Fprintln(a.out, "Cari obat terlebih dahulu")
		return
	}

	jumlah := a.promptInt("Jumlah keluar *: ")
	if cek := p.CekStok(jumlah); !cek.OK {
		return
	}

	keterangan := a.pilihDari("Keterangan *", []string{"Resep", "PRB", "Rusak/Kadaluarsa", "Lainnya"})
	lainnya := ""
	if keterangan == "Lainnya" {
		lainnya = a.prompt("Keterangan lainnya: ")
	}

	penginput, saran := a.term.Penginput()
	form := model.PengeluaranForm{
		KodeObat:      obat.Kode,
		NamaObat:      obat.Nama,
		Kategori:      obat.Kategori,
		Satuan:        obat.Satuan,
		TanggalKeluar: a.promptDefault("Tanggal keluar", time.Now().Format("2006-01-02")),
		JumlahKeluar:  jumlah,
		Keterangan:    screen.NormalisasiKeterangan(keterangan, lainnya),
		NamaPenginput: a.pilihDefault("Nama penginput *", penginput, saran),
	}

	if a.prompt("Simpan? (y/n): ") != "y" {
		return
	}
	p.Submit(ctx, form)
}

func (a *App) laporanLoop(ctx context.Context) {
	l := screen.NewLaporan(a.api, a.term, a.notify, a.cfg.Refresh.Laporan)
	l.Init(ctx)
	defer l.Teardown()

	for {
		fmt.Fprintln(a.out, "\n[r] muat ulang  [e] ekspor laporan  [k] kembali")
		switch a.prompt("> ") {
		case "r":
			l.Refresh(ctx)
		case "e":
			a.eksporLaporan(ctx, l)
		case "k", "":
			return
		}
	}
}

func (a *App) eksporLaporan(ctx context.Context, l *screen.Laporan) {
	form := model.EksporForm{
		JenisLaporan: a.pilihDari("Jenis laporan *", []string{"stok", "pembelian", "pengeluaran"}),
		Periode:      a.pilihDari("Periode *", []string{"bulanan", "tahunan"}),
	}
	if form.Periode == "bulanan" {
		form.Bulan = a.promptDefault("Bulan (01-12)", time.Now().Format("01"))
	}
	form.Tahun = a.promptDefault("Tahun", time.Now().Format("2006"))
	l.Ekspor(ctx, form)
}

// cariNama runs a search-by-name and lets the user pick one result
func (a *App) cariNama(ctx context.Context, cari func(context.Context, string), pilih func(model.Obat)) {
	nama := a.prompt("Nama obat: ")
	if nama == "" {
		return
	}
	cari(ctx, nama)

	hasil := a.term.HasilCari()
	if len(hasil) == 0 {
		return
	}
	if n := a.promptInt("Pilih nomor (0 = batal): "); n >= 1 && n <= len(hasil) {
		pilih(hasil[n-1])
	}
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func (a *App) promptDefault(label, def string) string {
	if v := a.prompt(fmt.Sprintf("%s [%s]: ", label, def)); v != "" {
		return v
	}
	return def
}

func (a *App) promptInt(label string) int {
	n, err := strconv.Atoi(a.prompt(label))
	if err != nil {
		return 0
	}
	return n
}

func (a *App) promptFloat(label string) float64 {
	f, err := strconv.ParseFloat(a.prompt(label), 64)
	if err != nil {
		return 0
	}
	return f
}

// pilihDari offers a numbered list and also accepts free text
func (a *App) pilihDari(label string, options []string) string {
	return a.pilihDefault(label, options, "")
}

func (a *App) pilihDefault(label string, options []string, def string) string {
	if len(options) == 0 {
		return a.promptDefault(label, def)
	}
	for i, opt := range options {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, opt)
	}
	v := a.promptDefault(label+" (nomor atau teks)", def)
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return v
}
