package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

func pengeluaranHarness(t *testing.T, stok int) (*Pengeluaran, *fakeEndpoint, *fakeView, *recordingNotifier) {
	t.Helper()
	api, f, _ := newHarness(t, map[string]string{
		"cariDataObat": successData(model.Obat{Kode: "OBT001", Nama: "Parasetamol", Satuan: "Tablet", StokMin: 10, Stok: stok}),
		"simpanTransaksiPengeluaran": successData(map[string]int{"newStock": stok - 5}),
	})
	view := newFakeView()
	notify := &recordingNotifier{}
	p := NewPengeluaran(api, view, notify, nil)
	return p, f, view, notify
}

func TestCekStok(t *testing.T) {
	p, _, view, _ := pengeluaranHarness(t, 20)
	p.LookupObat(context.Background(), "OBT001")

	cases := []struct {
		name   string
		jumlah int
		ok     bool
		sisa   int
		kind   string
	}{
		{"cukup", 5, true, 15, ui.KindSuccess},
		{"tepat habis", 20, true, 0, ui.KindWarning},
		{"melebihi stok", 21, false, 20, ui.KindError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := p.CekStok(tc.jumlah)
			if c.OK != tc.ok || c.Sisa != tc.sisa || c.Kind != tc.kind {
				t.Errorf("CekStok(%d) = %+v", tc.jumlah, c)
			}
			view.mu.Lock()
			rendered := view.stokCek
			view.mu.Unlock()
			if rendered == nil || rendered.Pesan != c.Pesan {
				t.Error("check outcome not rendered")
			}
		})
	}
}

func TestCekStokWithoutDrug(t *testing.T) {
	p, _, _, _ := pengeluaranHarness(t, 20)
	if c := p.CekStok(1); c.OK {
		t.Error("no held drug means stock zero, any quantity must fail")
	}
}

func TestSubmitBlockedByStockCheck(t *testing.T) {
	p, f, _, notify := pengeluaranHarness(t, 3)
	p.LookupObat(context.Background(), "OBT001")
	before := f.totalHits()

	form := model.PengeluaranForm{
		KodeObat: "OBT001", NamaObat: "Parasetamol", TanggalKeluar: "2026-08-31",
		JumlahKeluar: 10, Keterangan: "Resep", NamaPenginput: "Siti",
	}
	err := p.Submit(context.Background(), form)
	if !errors.Is(err, ErrStokKurang) {
		t.Fatalf("err = %v, want ErrStokKurang", err)
	}
	if f.totalHits() != before {
		t.Errorf("a blocked dispense must not issue any request, saw %d new", f.totalHits()-before)
	}
	msg, kind := notify.last()
	if msg != "Stok tidak mencukupi untuk pengeluaran ini" || kind != ui.KindError {
		t.Errorf("banner = %q/%q", msg, kind)
	}
}

func TestSubmitChecksStockBeforeValidation(t *testing.T) {
	p, f, _, _ := pengeluaranHarness(t, 3)
	p.LookupObat(context.Background(), "OBT001")
	before := f.totalHits()

	// The form is also incomplete, but the stock check fires first
	err := p.Submit(context.Background(), model.PengeluaranForm{JumlahKeluar: 10})
	if !errors.Is(err, ErrStokKurang) {
		t.Fatalf("err = %v, want ErrStokKurang before any validation error", err)
	}
	if f.totalHits() != before {
		t.Error("a blocked dispense must not issue any request")
	}
}

func TestSubmitDispense(t *testing.T) {
	p, _, view, notify := pengeluaranHarness(t, 20)
	p.LookupObat(context.Background(), "OBT001")

	form := model.PengeluaranForm{
		KodeObat: "OBT001", NamaObat: "Parasetamol", TanggalKeluar: "2026-08-31",
		JumlahKeluar: 5, Keterangan: "Resep", NamaPenginput: "Siti",
	}
	if err := p.Submit(context.Background(), form); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	msg, kind := notify.last()
	if kind != ui.KindSuccess {
		t.Errorf("banner = %q/%q", msg, kind)
	}
	view.mu.Lock()
	defer view.mu.Unlock()
	if view.formClears != 1 {
		t.Errorf("ClearForm calls = %d", view.formClears)
	}
}

func TestNormalisasiKeterangan(t *testing.T) {
	cases := []struct {
		keterangan, lainnya, want string
	}{
		{"Resep", "", "Resep"},
		{"Resep", "diabaikan", "Resep"},
		{"Lainnya", "Hibah puskesmas", "Hibah puskesmas"},
		{"Lainnya", "  ", "Lainnya"},
		{"Lainnya", "", "Lainnya"},
	}
	for _, tc := range cases {
		if got := NormalisasiKeterangan(tc.keterangan, tc.lainnya); got != tc.want {
			t.Errorf("NormalisasiKeterangan(%q, %q) = %q, want %q", tc.keterangan, tc.lainnya, got, tc.want)
		}
	}
}

func TestMuatRingkasan(t *testing.T) {
	api, _, _ := newHarness(t, map[string]string{
		"getDataLaporan": `{"status":"success","data":{
			"stokHabis":[["OBT003","OAT"]],
			"stokMenipis":[["OBT002","Amoksisilin"],["OBT005","ORS"]]
		}}`,
	})
	view := newFakeView()
	p := NewPengeluaran(api, view, &recordingNotifier{}, nil)

	p.MuatRingkasan(context.Background())

	view.mu.Lock()
	defer view.mu.Unlock()
	if view.habis != 1 || view.menipis != 2 {
		t.Errorf("ringkasan = %d habis / %d menipis", view.habis, view.menipis)
	}
}
