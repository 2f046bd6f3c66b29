package backend

import (
	"context"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
)

// loginPayload is the login answer: an opaque bearer token plus the user record
type loginPayload struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates and returns the user record with its bearer token
func (c *Client) Login(ctx context.Context, cred model.Kredensial) (*model.User, string, error) {
	var out loginPayload
	err := c.post(ctx, "login", map[string]string{
		"username": cred.Username,
		"password": cred.Password,
	}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out.User, out.Token, nil
}

// Logout invalidates the stored token on the backend
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "logout", nil, nil)
}

// CheckAuth asks the backend whether the stored token is still valid
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	var out struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := c.get(ctx, "checkAuth", nil, &out); err != nil {
		return false, err
	}
	return out.Authenticated, nil
}

// SystemStatus reports whether the backend sheet is set up
func (c *Client) SystemStatus(ctx context.Context) (string, error) {
	var out struct {
		SystemStatus string `json:"systemStatus"`
	}
	if err := c.get(ctx, "getSystemStatus", nil, &out); err != nil {
		return "", err
	}
	return out.SystemStatus, nil
}

// Initialize sets up the backend sheet
func (c *Client) Initialize(ctx context.Context) error {
	return c.get(ctx, "initialize", nil, nil)
}

// DaftarPenginput returns the staff list for the entry forms
func (c *Client) DaftarPenginput(ctx context.Context) ([]string, error) {
	var out []string
	err := c.get(ctx, "getDaftarPenginput", nil, &out)
	return out, err
}

// DaftarKategori returns the drug category list
func (c *Client) DaftarKategori(ctx context.Context) ([]string, error) {
	var out []string
	err := c.get(ctx, "getDaftarKategori", nil, &out)
	return out, err
}

// DaftarJenisTransaksi returns the purchase transaction types
func (c *Client) DaftarJenisTransaksi(ctx context.Context) ([]string, error) {
	var out []string
	err := c.get(ctx, "getDaftarJenisTransaksi", nil, &out)
	return out, err
}

// AllObat returns the full drug catalog
func (c *Client) AllObat(ctx context.Context) ([]model.Obat, error) {
	var out []model.Obat
	err := c.get(ctx, "getAllObat", nil, &out)
	return out, err
}

// CariObat looks a drug up by its code
func (c *Client) CariObat(ctx context.Context, kodeObat string) (*model.Obat, error) {
	var out model.Obat
	err := c.get(ctx, "cariDataObat", map[string]string{"kodeObat": kodeObat}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CariObatByNama searches drugs by name
func (c *Client) CariObatByNama(ctx context.Context, namaObat string) ([]model.Obat, error) {
	var out []model.Obat
	err := c.get(ctx, "cariObatByNama", map[string]string{"namaObat": namaObat}, &out)
	return out, err
}

// TambahObat registers a new drug and returns the created record
func (c *Client) TambahObat(ctx context.Context, form model.ObatBaruForm) (*model.Obat, error) {
	var out model.Obat
	if err := c.post(ctx, "tambahObatBaru", form.Payload(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// stockPayload carries the stock level after a transaction was booked
type stockPayload struct {
	NewStock int `json:"newStock"`
}

// SimpanPembelian books a purchase and returns the new stock level
func (c *Client) SimpanPembelian(ctx context.Context, form model.PembelianForm) (int, error) {
	var out stockPayload
	if err := c.post(ctx, "simpanTransaksiPembelian", form.Payload(), &out); err != nil {
		return 0, err
	}
	return out.NewStock, nil
}

// SimpanPengeluaran books a dispense and returns the new stock level
func (c *Client) SimpanPengeluaran(ctx context.Context, form model.PengeluaranForm) (int, error) {
	var out stockPayload
	if err := c.post(ctx, "simpanTransaksiPengeluaran", form.Payload(), &out); err != nil {
		return 0, err
	}
	return out.NewStock, nil
}

// DataLaporan fetches the aggregate report snapshot
func (c *Client) DataLaporan(ctx context.Context) (*model.Laporan, error) {
	var out model.Laporan
	if err := c.get(ctx, "getDataLaporan", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EksporLaporan asks the backend to generate a report file
func (c *Client) EksporLaporan(ctx context.Context, form model.EksporForm) (*model.Ekspor, error) {
	var out model.Ekspor
	if err := c.post(ctx, "eksporLaporan", form.Payload(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDashboard asks the backend to recompute its dashboard sheet
func (c *Client) UpdateDashboard(ctx context.Context) error {
	return c.post(ctx, "updateDashboard", nil, nil)
}
