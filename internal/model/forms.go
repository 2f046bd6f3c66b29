package model

import "strconv"

// Kredensial is the login form payload
type Kredensial struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Validate checks the login form before any request is issued
func (f Kredensial) Validate() error {
	return firstInvalid(f, map[string]string{
		"Username": "Username harus diisi",
		"Password": "Password harus diisi",
	})
}

// PembelianForm is the purchase entry payload
type PembelianForm struct {
	KodeObat       string  `validate:"required"`
	NamaObat       string  `validate:"required"`
	Kategori       string
	Satuan         string
	TanggalBeli    string  `validate:"required"`
	NoFaktur       string
	JumlahBeli     int     `validate:"gt=0"`
	HargaSatuan    float64 `validate:"gte=0"`
	Pajak          float64
	JenisTransaksi string  `validate:"required"`
	Distributor    string
	Keterangan     string
	NamaPenginput  string  `validate:"required"`
}

// Validate checks the purchase form, reporting the first problem the way
// the entry screen words it
func (f PembelianForm) Validate() error {
	return firstInvalid(f, map[string]string{
		"KodeObat":       "Kode obat harus diisi",
		"NamaObat":       "Nama obat harus diisi",
		"TanggalBeli":    "Tanggal beli harus diisi",
		"JumlahBeli":     "Jumlah beli harus lebih dari 0",
		"HargaSatuan":    "Harga satuan tidak valid",
		"JenisTransaksi": "Jenis transaksi harus dipilih",
		"NamaPenginput":  "Nama penginput harus dipilih",
	})
}

// Total returns the purchase value: quantity times unit price plus tax
func (f PembelianForm) Total() float64 {
	subtotal := float64(f.JumlahBeli) * f.HargaSatuan
	return subtotal * (1 + f.Pajak/100)
}

// Payload renders the form into the wire fields of simpanTransaksiPembelian
func (f PembelianForm) Payload() map[string]string {
	return map[string]string{
		"kodeObat":       f.KodeObat,
		"namaObat":       f.NamaObat,
		"kategori":       f.Kategori,
		"satuan":         f.Satuan,
		"tanggalBeli":    f.TanggalBeli,
		"noFaktur":       f.NoFaktur,
		"jumlahBeli":     strconv.Itoa(f.JumlahBeli),
		"hargaSatuan":    strconv.FormatFloat(f.HargaSatuan, 'f', -1, 64),
		"pajak":          strconv.FormatFloat(f.Pajak, 'f', -1, 64),
		"jenisTransaksi": f.JenisTransaksi,
		"distributor":    f.Distributor,
		"keterangan":     f.Keterangan,
		"namaPenginput":  f.NamaPenginput,
	}
}

// PengeluaranForm is the dispense entry payload
type PengeluaranForm struct {
	KodeObat      string `validate:"required"`
	NamaObat      string `validate:"required"`
	Kategori      string
	Satuan        string
	TanggalKeluar string `validate:"required"`
	JumlahKeluar  int    `validate:"gt=0"`
	Keterangan    string `validate:"required"`
	NamaPenginput string `validate:"required"`
}

// Validate checks the dispense form
func (f PengeluaranForm) Validate() error {
	return firstInvalid(f, map[string]string{
		"KodeObat":      "Kode obat harus diisi",
		"NamaObat":      "Nama obat harus diisi",
		"TanggalKeluar": "Tanggal keluar harus diisi",
		"JumlahKeluar":  "Jumlah keluar harus lebih dari 0",
		"Keterangan":    "Keterangan harus dipilih",
		"NamaPenginput": "Nama penginput harus dipilih",
	})
}

// Payload renders the form into the wire fields of simpanTransaksiPengeluaran
func (f PengeluaranForm) Payload() map[string]string {
	return map[string]string{
		"kodeObat":      f.KodeObat,
		"namaObat":      f.NamaObat,
		"kategori":      f.Kategori,
		"satuan":        f.Satuan,
		"tanggalKeluar": f.TanggalKeluar,
		"jumlahKeluar":  strconv.Itoa(f.JumlahKeluar),
		"keterangan":    f.Keterangan,
		"namaPenginput": f.NamaPenginput,
	}
}

// ObatBaruForm is the new-drug payload
type ObatBaruForm struct {
	KodeObat    string `validate:"required"`
	NamaObat    string `validate:"required"`
	Kategori    string `validate:"required"`
	Satuan      string `validate:"required"`
	StokMinimum int    `validate:"gt=0"`
	StokAwal    int    `validate:"gte=0"`
}

// Validate checks the new-drug form. The entry screen marks the required
// fields with a star and reports them with a single message.
func (f ObatBaruForm) Validate() error {
	return firstInvalid(f, map[string]string{})
}

// Payload renders the form into the wire fields of tambahObatBaru
func (f ObatBaruForm) Payload() map[string]string {
	return map[string]string{
		"kodeObat":    f.KodeObat,
		"namaObat":    f.NamaObat,
		"kategori":    f.Kategori,
		"satuan":      f.Satuan,
		"stokMinimum": strconv.Itoa(f.StokMinimum),
		"stokAwal":    strconv.Itoa(f.StokAwal),
	}
}

// EksporForm is the report export request
type EksporForm struct {
	JenisLaporan string `validate:"required"`
	Periode      string `validate:"required,oneof=bulanan tahunan"`
	Bulan        string
	Tahun        string
}

// Validate checks the export form: both periods need a year, the monthly
// one needs a month too
func (f EksporForm) Validate() error {
	if err := firstInvalid(f, map[string]string{
		"JenisLaporan": "Jenis laporan dan periode harus dipilih",
		"Periode":      "Jenis laporan dan periode harus dipilih",
	}); err != nil {
		return err
	}

	if f.Periode == "tahunan" {
		if f.Tahun == "" {
			return &ValidationError{Field: "Tahun", Message: "Tahun harus dipilih"}
		}
		return nil
	}
	if f.Bulan == "" || f.Tahun == "" {
		return &ValidationError{Field: "Bulan", Message: "Bulan dan tahun harus dipilih"}
	}
	return nil
}

// Payload renders the form into the wire fields of eksporLaporan
func (f EksporForm) Payload() map[string]string {
	return map[string]string{
		"jenisLaporan": f.JenisLaporan,
		"periode":      f.Periode,
		"bulan":        f.Bulan,
		"tahun":        f.Tahun,
	}
}
