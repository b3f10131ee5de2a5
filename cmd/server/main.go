package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spaceship-server/internal/engine"
	"spaceship-server/internal/server"
	"spaceship-server/internal/store"
	"spaceship-server/internal/version"
	"spaceship-server/pkg/logger"
)

// reapInterval controls how often finished sessions are swept out.
const (
	reapInterval = 5 * time.Minute
	reapMaxAge   = 30 * time.Minute
)

func init() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logger.Init()
}

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 0, "Master seed for session RNGs (0 for random)")
	flag.Parse()

	logger.Log.Info("Starting spaceship server...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("Using explicit master seed: %d", seed)
	} else {
		logger.Log.Infof("Using random master seed: %d", cfg.Seed)
	}

	port := os.Getenv("SE_PORT")
	if port == "" {
		port = "8080"
	}

	hub := server.NewHub()
	svc := engine.NewService(cfg, store.NewInMemorySessionStore(), hub)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	srv := server.New(svc, hub, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	// Background sweep of finished sessions.
	reaper := time.NewTicker(reapInterval)
	defer reaper.Stop()
	go func() {
		for range reaper.C {
			if n := svc.ReapExpired(reapMaxAge); n > 0 {
				logger.Log.Infof("Reaped %d expired sessions", n)
			}
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
	srv.Shutdown()
	logger.Log.Info("Done.")
}
