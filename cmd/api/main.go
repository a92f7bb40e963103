package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/notify"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/router"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/session"
	"github.com/ovaphlow/pitchfork/service-couple-finance/pkg/database"
	"github.com/ovaphlow/pitchfork/service-couple-finance/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-couple-finance")

	// init db
	cfg := database.ConfigFromEnv()
	db, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(cfg); err != nil {
			sugar.Fatalf("db migrate: %v", err)
		}
		sugar.Info("database schema is up to date")
	}

	sessions, err := session.NewManager(session.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("session manager: %v", err)
	}

	publisher, err := notify.New(notify.ConfigFromEnv(), sugar)
	if err != nil {
		sugar.Fatalf("notify publisher: %v", err)
	}
	defer publisher.Close()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// mount http server
	handler := router.RegisterRoutes(sugar, router.Deps{
		DB:        db,
		IDs:       utilities.NewIDGenerator(utilities.NodeFromEnv()),
		Sessions:  sessions,
		Publisher: publisher,
		Account:   account.ConfigFromEnv(),
	})
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()
	sugar.Infow("service is running; press Ctrl+C to stop", "addr", addr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
