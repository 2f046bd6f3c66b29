package model

// Obat is a drug inventory record as the backend reports it. The client
// never mutates stock locally; it only redraws from fresh server data.
type Obat struct {
	Kode     string `json:"kode"`
	Nama     string `json:"nama"`
	Kategori string `json:"kategori"`
	Satuan   string `json:"satuan"`
	StokMin  int    `json:"stokMin"`
	Stok     int    `json:"stok"`
}

// StokStatus is the derived stock condition of a drug
type StokStatus string

const (
	StokHabis     StokStatus = "habis"
	StokMenipis   StokStatus = "menipis"
	StokPerhatian StokStatus = "perhatian"
	StokAman      StokStatus = "aman"
)

// HitungStokStatus derives the stock condition from the current stock and
// the reorder threshold: 0 is habis, at or below the minimum is menipis,
// at or below one-and-a-half times the minimum is perhatian, else aman.
func HitungStokStatus(stok, stokMin int) StokStatus {
	if stok == 0 {
		return StokHabis
	}
	if stok <= stokMin {
		return StokMenipis
	}
	if float64(stok) <= 1.5*float64(stokMin) {
		return StokPerhatian
	}
	return StokAman
}

// Status derives the stock condition of this record
func (o Obat) Status() StokStatus {
	return HitungStokStatus(o.Stok, o.StokMin)
}
