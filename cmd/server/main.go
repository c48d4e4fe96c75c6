package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ktauqeer04/mock-interview/internal/config"
	"github.com/ktauqeer04/mock-interview/internal/hub"
	"github.com/ktauqeer04/mock-interview/internal/logging"
	"github.com/ktauqeer04/mock-interview/internal/question"
	"github.com/ktauqeer04/mock-interview/internal/relay"
	"github.com/ktauqeer04/mock-interview/internal/room"
	"github.com/ktauqeer04/mock-interview/internal/server"
	"github.com/ktauqeer04/mock-interview/internal/store"
)

func main() {
	logging.Init()
	logger := slog.Default()

	cfg, err := config.Load(config.Options{})
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// Redis-backed rooms when configured, in-process otherwise.
	var roomStore store.RoomStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		roomStore = store.NewRedisStore(client)
		logger.Info("using redis room store", "addr", cfg.RedisAddr)
	} else {
		roomStore = store.NewMemoryStore()
	}

	bank := question.Default()
	manager := room.NewManager(roomStore, bank, logger)

	r := relay.New(logger)
	h := hub.NewHub(r, manager, logger)
	go h.Run()

	go sweepLoop(roomStore, logger)

	srv := server.New(manager, bank, h, logger)
	logger.Info("server listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// sweepLoop drops expired rooms and their results on a fixed interval.
func sweepLoop(roomStore store.RoomStore, logger *slog.Logger) {
	ticker := time.NewTicker(store.SweepInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		removed, err := roomStore.SweepExpired(context.Background(), now)
		if err != nil {
			logger.Warn("expiry sweep failed", "error", err)
			continue
		}
		if removed > 0 {
			logger.Info("swept expired rooms", "count", removed)
		}
	}
}
