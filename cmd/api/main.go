package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"complainthub.org/internal/activity"
	"complainthub.org/internal/auth"
	"complainthub.org/internal/complaint"
	"complainthub.org/internal/config"
	"complainthub.org/internal/httpapi"
	"complainthub.org/internal/obs"
	"complainthub.org/internal/report"
	"complainthub.org/internal/store/pg"
	"complainthub.org/internal/stream"
)

var version = "0.3.1"

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("token manager: %v", err)
	}

	actLog := activity.Open(cfg.ActivityLogPath)
	events := stream.New()

	var (
		users      auth.UserStore
		complaints complaint.Store
		probe      httpapi.ReadyProbe
		closeStore func() error
	)
	if cfg.Demo {
		users = auth.NewMemoryStore()
		complaints = complaint.NewMemory()
	} else {
		store, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		users = store.Users()
		complaints = store.Complaints()
		probe = httpapi.ReadyProbe{DB: store.DB()}
		closeStore = store.Close
	}

	authSvc := auth.NewService(users, tokens, actLog, events)
	complaintSvc := complaint.NewService(complaints, users, actLog, events)
	reportSvc := report.NewService(complaints, users, actLog)

	api := httpapi.New(probe, version, authSvc, tokens, complaintSvc, reportSvc, events)
	api.CORSOrigins = cfg.CORSOrigins
	api.RateBurst = cfg.RateBurst
	api.RatePerSec = cfg.RatePerSec

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting complainthub-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if closeStore != nil {
		_ = closeStore()
	}
	log.Println("Stopped")
}
