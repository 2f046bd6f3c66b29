package screen

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/session"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/transport"
)

// fakeEndpoint answers each action from a canned envelope and counts the
// requests per action
type fakeEndpoint struct {
	mu      sync.Mutex
	answers map[string]string
	hits    map[string]int
}

func (f *fakeEndpoint) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := r.URL.Query().Get("action")

		f.mu.Lock()
		f.hits[action]++
		body, ok := f.answers[action]
		f.mu.Unlock()

		if !ok {
			body = `{"status":"error","message":"Aksi tidak dikenal"}`
		}
		fmt.Fprint(w, body)
	})
}

func (f *fakeEndpoint) hitCount(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[action]
}

func (f *fakeEndpoint) totalHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.hits {
		total += n
	}
	return total
}

// newHarness wires a backend client against a canned endpoint
func newHarness(t *testing.T, answers map[string]string) (*backend.Client, *fakeEndpoint, *session.Store) {
	t.Helper()

	f := &fakeEndpoint{answers: answers, hits: map[string]int{}}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	sess, err := session.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	api := transport.NewClient([]transport.Transport{
		transport.NewDirect(srv.URL, time.Second),
	}, nil)
	return backend.New(api, sess), f, sess
}

func successData(v interface{}) string {
	data, _ := json.Marshal(v)
	return `{"status":"success","data":` + string(data) + `}`
}

// recordingNotifier collects banners for assertions
type recordingNotifier struct {
	mu      sync.Mutex
	banners []struct{ Message, Kind string }
}

func (r *recordingNotifier) Notify(message, kind string) {
	r.mu.Lock()
	r.banners = append(r.banners, struct{ Message, Kind string }{message, kind})
	r.mu.Unlock()
}

func (r *recordingNotifier) last() (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.banners) == 0 {
		return "", ""
	}
	b := r.banners[len(r.banners)-1]
	return b.Message, b.Kind
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.banners)
}

// fakeView implements every screen binding and records what was rendered
type fakeView struct {
	mu sync.Mutex

	kategori   []string
	jenis      []string
	penginput  []string
	selected   string
	laporan    *model.Laporan
	charts     model.ChartData
	alerts     []Alert
	tableItems []model.Obat
	tablePage  int
	tablePages int
	tableTotal int
	detail     *model.Obat
	obat       *model.Obat
	obatClears int
	total      float64
	hasilCari  []model.Obat
	stokCek    *StokCek
	habis      int
	menipis    int
	breakdown  map[string]float64
	unduhan    *model.Ekspor
	formClears int
	visible    bool
}

func newFakeView() *fakeView { return &fakeView{visible: true} }

func (v *fakeView) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

func (v *fakeView) RenderKategori(list []string) {
	v.mu.Lock()
	v.kategori = list
	v.mu.Unlock()
}

func (v *fakeView) RenderJenisTransaksi(list []string) {
	v.mu.Lock()
	v.jenis = list
	v.mu.Unlock()
}

func (v *fakeView) RenderPenginput(list []string, selected string) {
	v.mu.Lock()
	v.penginput = list
	v.selected = selected
	v.mu.Unlock()
}

func (v *fakeView) RenderStats(l *model.Laporan) {
	v.mu.Lock()
	v.laporan = l
	v.mu.Unlock()
}

func (v *fakeView) RenderCharts(cd model.ChartData) {
	v.mu.Lock()
	v.charts = cd
	v.mu.Unlock()
}

func (v *fakeView) RenderAlerts(alerts []Alert) {
	v.mu.Lock()
	v.alerts = alerts
	v.mu.Unlock()
}

func (v *fakeView) RenderTable(items []model.Obat, page, totalPages, totalItems int) {
	v.mu.Lock()
	v.tableItems = items
	v.tablePage = page
	v.tablePages = totalPages
	v.tableTotal = totalItems
	v.mu.Unlock()
}

func (v *fakeView) ShowDetail(o model.Obat) {
	v.mu.Lock()
	v.detail = &o
	v.mu.Unlock()
}

func (v *fakeView) RenderObat(o *model.Obat) {
	v.mu.Lock()
	v.obat = o
	v.mu.Unlock()
}

func (v *fakeView) ClearObat() {
	v.mu.Lock()
	v.obat = nil
	v.obatClears++
	v.mu.Unlock()
}

func (v *fakeView) RenderTotal(total float64) {
	v.mu.Lock()
	v.total = total
	v.mu.Unlock()
}

func (v *fakeView) RenderHasilCari(list []model.Obat) {
	v.mu.Lock()
	v.hasilCari = list
	v.mu.Unlock()
}

func (v *fakeView) RenderStokCek(c StokCek) {
	v.mu.Lock()
	v.stokCek = &c
	v.mu.Unlock()
}

func (v *fakeView) RenderRingkasan(habis, menipis int) {
	v.mu.Lock()
	v.habis = habis
	v.menipis = menipis
	v.mu.Unlock()
}

func (v *fakeView) RenderKategoriBreakdown(breakdown map[string]float64) {
	v.mu.Lock()
	v.breakdown = breakdown
	v.mu.Unlock()
}

func (v *fakeView) ShowUnduhan(e *model.Ekspor) {
	v.mu.Lock()
	v.unduhan = e
	v.mu.Unlock()
}

func (v *fakeView) ClearForm() {
	v.mu.Lock()
	v.formClears++
	v.mu.Unlock()
}
