package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sessiondeck/sessiondeck/internal/broker"
	"github.com/sessiondeck/sessiondeck/internal/config"
	"github.com/sessiondeck/sessiondeck/internal/server"
	"github.com/sessiondeck/sessiondeck/internal/session"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	dbPath := flag.String("db", "", "Override sqlite database path")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Server.DBPath = *dbPath
	}

	store, err := session.Open(cfg.Server.DBPath)
	if err != nil {
		log.Error("failed to open session store", "path", cfg.Server.DBPath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: server.New(store, broker.New(), log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()

	log.Info("listening", "addr", srv.Addr, "db", cfg.Server.DBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
}
