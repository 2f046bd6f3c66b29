package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/cli"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/config"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/screen"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/session"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/statusapi"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/transport"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

func main() {
	fmt.Println("Stok Obat Puskesmas Sanden")
	fmt.Println("==========================")

	// .env is optional; real deployments set the variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config file: %v", err)
		log.Println("Using default configuration")
		cfg = config.Default()
		cfg.ConfigPath = "config.yaml"
	}
	cfg.ApplyEnv()

	fmt.Printf("Backend Endpoint: %s\n", cfg.Backend.Endpoint)
	fmt.Printf("Status API: http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)

	notifier := ui.NewNotifier(100)
	ui.InstallLogCapture(notifier)
	gauge := ui.NewGauge()

	sess, err := session.Open(cfg.StateDir)
	if err != nil {
		log.Fatalf("Cannot open session store: %v", err)
	}

	api := transport.FromConfig(
		cfg.Backend.Endpoint,
		cfg.Backend.TransportOrder,
		cfg.Backend.DirectTimeout,
		cfg.Backend.CallbackTimeout,
		cfg.Backend.XHRTimeout,
		gauge,
	)
	client := backend.New(api, sess)

	// Push every banner to the local status websocket
	hub := statusapi.NewHub()
	go hub.Run()
	notifier.OnPublish = func(b ui.Banner) {
		hub.Publish("notification", b)
	}

	status := statusapi.NewServer(cfg, sess, notifier, gauge, hub)
	go func() {
		if err := status.Start(); err != nil {
			log.Printf("Status API stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auth := screen.NewAuth(client, sess, notifier)
	if sess.IsAuthenticated() {
		auth.CheckSession(ctx)
	}

	checkSystem(ctx, client, notifier)

	app := cli.NewApp(os.Stdin, os.Stdout, cfg, client, sess, auth, notifier)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Terminal error: %v", err)
	}

	fmt.Println("Sampai jumpa.")
}

// checkSystem probes the backend once at startup and initializes the
// spreadsheet structure when it has never been set up
func checkSystem(ctx context.Context, client *backend.Client, notifier *ui.Notifier) {
	state, err := client.SystemStatus(ctx)
	if err != nil {
		notifier.Notify("Tidak dapat memeriksa status sistem: "+err.Error(), ui.KindWarning)
		return
	}
	if state != model.SystemNeedsSetup {
		return
	}

	notifier.Notify("Sistem belum diinisialisasi, menyiapkan struktur data...", ui.KindInfo)
	if err := client.Initialize(ctx); err != nil {
		notifier.Notify("Gagal menginisialisasi sistem: "+err.Error(), ui.KindError)
		return
	}
	notifier.Notify("Sistem berhasil diinisialisasi", ui.KindSuccess)
}
