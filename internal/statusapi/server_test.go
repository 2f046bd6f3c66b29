package statusapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/config"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/session"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

func newTestServer(t *testing.T) (*Server, *ui.Notifier, *session.Store) {
	t.Helper()

	sess, err := session.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	notifier := ui.NewNotifier(20)
	hub := NewHub()
	go hub.Run()

	cfg := config.Default()
	return NewServer(cfg, sess, notifier, ui.NewGauge(), hub), notifier, sess
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("body = %+v", body)
	}
}

func TestStatusReflectsSession(t *testing.T) {
	s, _, sess := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var body struct {
		Authenticated bool   `json:"authenticated"`
		User          string `json:"user"`
		Loading       bool   `json:"loading"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Authenticated || body.User != "" {
		t.Errorf("logged-out status = %+v", body)
	}

	sess.SetUser(&model.User{Nama: "Siti", Username: "siti"}, "tok")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Authenticated || body.User != "Siti" {
		t.Errorf("logged-in status = %+v", body)
	}
}

func TestNotificationsFilterAndDismiss(t *testing.T) {
	s, notifier, _ := newTestServer(t)
	notifier.Notify("Login berhasil!", ui.KindSuccess)
	notifier.Notify("Gagal memuat data", ui.KindError)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notifications?kind=error", nil))

	var body struct {
		Notifications []ui.Banner `json:"notifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Notifications) != 1 || body.Notifications[0].Kind != ui.KindError {
		t.Fatalf("filtered = %+v", body.Notifications)
	}

	id := body.Notifications[0].ID
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notifications/"+strconv.Itoa(id)+"/dismiss", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("dismiss status = %d", rec.Code)
	}

	if len(notifier.Active([]string{ui.KindError})) != 0 {
		t.Error("banner not dismissed")
	}
}

func TestDismissRejectsBadID(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notifications/abc/dismiss", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWebsocketReceivesPublishedEvents(t *testing.T) {
	sess, err := session.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	notifier := ui.NewNotifier(20)
	hub := NewHub()
	go hub.Run()
	s := NewServer(config.Default(), sess, notifier, ui.NewGauge(), hub)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the hub a moment to register the connection
	time.Sleep(20 * time.Millisecond)
	hub.Publish("notification", ui.Banner{ID: 1, Kind: ui.KindInfo, Message: "halo"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event struct {
		Event   string    `json:"event"`
		Payload ui.Banner `json:"payload"`
	}
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read: %v", err)
	}
	if event.Event != "notification" || event.Payload.Message != "halo" {
		t.Errorf("event = %+v", event)
	}
}
