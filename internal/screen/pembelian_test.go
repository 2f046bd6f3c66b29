package screen

import (
	"context"
	"testing"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
)

func pembelianAnswers() map[string]string {
	return map[string]string{
		"getDaftarKategori":       successData([]string{"Analgesik", "Antibiotik"}),
		"getDaftarJenisTransaksi": successData([]string{"Reguler", "PRB"}),
		"getDaftarPenginput":      successData([]string{"Siti", "Budi"}),
		"cariDataObat":            successData(model.Obat{Kode: "OBT001", Nama: "Parasetamol", Kategori: "Analgesik", Satuan: "Tablet", StokMin: 50, Stok: 120}),
	}
}

func TestPembelianInitPreselectsUser(t *testing.T) {
	api, _, _ := newHarness(t, pembelianAnswers())
	view := newFakeView()
	p := NewPembelian(api, view, &recordingNotifier{}, &model.User{Nama: "Budi", Username: "budi"})

	p.Init(context.Background())

	view.mu.Lock()
	defer view.mu.Unlock()
	if len(view.kategori) != 2 || len(view.jenis) != 2 || len(view.penginput) != 2 {
		t.Errorf("dropdowns = %v / %v / %v", view.kategori, view.jenis, view.penginput)
	}
	if view.selected != "Budi" {
		t.Errorf("preselected staff = %q, want the logged-in user", view.selected)
	}
}

func TestPembelianLookupObat(t *testing.T) {
	api, _, _ := newHarness(t, pembelianAnswers())
	view := newFakeView()
	p := NewPembelian(api, view, &recordingNotifier{}, nil)

	p.LookupObat(context.Background(), "OBT001")

	o := p.LastObat()
	if o == nil || o.Nama != "Parasetamol" {
		t.Fatalf("LastObat() = %+v", o)
	}

	view.mu.Lock()
	defer view.mu.Unlock()
	if view.obat == nil || view.obat.Kode != "OBT001" {
		t.Errorf("rendered obat = %+v", view.obat)
	}
}

func TestPembelianLookupUnknownCode(t *testing.T) {
	api, _, _ := newHarness(t, nil)
	view := newFakeView()
	notify := &recordingNotifier{}
	p := NewPembelian(api, view, notify, nil)

	p.LookupObat(context.Background(), "OBT404")

	if p.LastObat() != nil {
		t.Error("unknown code must clear the held drug")
	}
	view.mu.Lock()
	clears := view.obatClears
	view.mu.Unlock()
	if clears != 1 {
		t.Errorf("ClearObat calls = %d", clears)
	}
	msg, _ := notify.last()
	if msg != "Obat tidak ditemukan: OBT404" {
		t.Errorf("banner = %q", msg)
	}
}

func TestPembelianSubmitValidationSkipsRequest(t *testing.T) {
	api, f, _ := newHarness(t, nil)
	notify := &recordingNotifier{}
	p := NewPembelian(api, newFakeView(), notify, nil)

	form := model.PembelianForm{
		KodeObat: "OBT001", NamaObat: "Parasetamol", TanggalBeli: "2026-08-31",
		HargaSatuan: 500, JenisTransaksi: "Reguler", NamaPenginput: "Siti",
		// JumlahBeli left zero
	}
	if err := p.Submit(context.Background(), form); err == nil {
		t.Fatal("expected a validation error")
	}
	if f.totalHits() != 0 {
		t.Errorf("no request may be issued for an invalid form, saw %d", f.totalHits())
	}
	msg, _ := notify.last()
	if msg != "Jumlah beli harus lebih dari 0" {
		t.Errorf("banner = %q", msg)
	}
}

func TestPembelianSubmitUpdatesStock(t *testing.T) {
	answers := pembelianAnswers()
	answers["simpanTransaksiPembelian"] = successData(map[string]int{"newStock": 220})
	api, _, _ := newHarness(t, answers)

	view := newFakeView()
	notify := &recordingNotifier{}
	p := NewPembelian(api, view, notify, nil)
	p.LookupObat(context.Background(), "OBT001")

	form := model.PembelianForm{
		KodeObat: "OBT001", NamaObat: "Parasetamol", TanggalBeli: "2026-08-31",
		JumlahBeli: 100, HargaSatuan: 500, JenisTransaksi: "Reguler", NamaPenginput: "Siti",
	}
	if err := p.Submit(context.Background(), form); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if got := p.LastObat().Stok; got != 220 {
		t.Errorf("held stock = %d, want the backend's answer 220", got)
	}
	msg, _ := notify.last()
	if msg != "Pembelian berhasil disimpan! Stok diperbarui." {
		t.Errorf("banner = %q", msg)
	}
	view.mu.Lock()
	defer view.mu.Unlock()
	if view.formClears != 1 {
		t.Errorf("ClearForm calls = %d", view.formClears)
	}
}

func TestPembelianHitungTotal(t *testing.T) {
	api, _, _ := newHarness(t, nil)
	view := newFakeView()
	p := NewPembelian(api, view, &recordingNotifier{}, nil)

	p.HitungTotal(model.PembelianForm{JumlahBeli: 10, HargaSatuan: 1000})

	view.mu.Lock()
	defer view.mu.Unlock()
	if view.total != 10000 {
		t.Errorf("total = %v, want 10000", view.total)
	}
}
