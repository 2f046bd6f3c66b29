package model

import "testing"

func TestHitungStokStatus(t *testing.T) {
	cases := []struct {
		name    string
		stok    int
		stokMin int
		want    StokStatus
	}{
		{"habis", 0, 100, StokHabis},
		{"habis dengan minimum nol", 0, 0, StokHabis},
		{"tepat di minimum", 100, 100, StokMenipis},
		{"di bawah minimum", 50, 100, StokMenipis},
		{"tepat di ambang perhatian", 150, 100, StokPerhatian},
		{"sedikit di atas ambang", 151, 100, StokAman},
		{"jauh di atas minimum", 500, 100, StokAman},
		{"minimum kecil", 15, 10, StokPerhatian},
		{"minimum kecil aman", 16, 10, StokAman},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HitungStokStatus(tc.stok, tc.stokMin); got != tc.want {
				t.Errorf("HitungStokStatus(%d, %d) = %s, want %s", tc.stok, tc.stokMin, got, tc.want)
			}
		})
	}
}

func TestObatStatus(t *testing.T) {
	o := Obat{Kode: "OBT001", Nama: "Parasetamol", StokMin: 10, Stok: 3}
	if got := o.Status(); got != StokMenipis {
		t.Errorf("Status() = %s, want %s", got, StokMenipis)
	}
}
