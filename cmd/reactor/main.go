package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ariefcatur/go-stock-reserve.git/internal/config"
	kafkax "github.com/ariefcatur/go-stock-reserve.git/internal/kafka"
	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/postgres"
	"github.com/ariefcatur/go-stock-reserve.git/internal/redisx"
	"github.com/ariefcatur/go-stock-reserve.git/internal/reserve"
	"github.com/ariefcatur/go-stock-reserve.git/internal/settings"
	"github.com/ariefcatur/go-stock-reserve.git/internal/stock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	orderRepo := &orders.Repo{DB: db}
	stockRepo := &stock.Repo{DB: db}

	svc := &reserve.Service{
		Reactor: &reserve.Reactor{
			Orders:     orderRepo,
			Controlled: stockRepo,
			Locations:  stockRepo,
			Sink:       stockRepo,
			Settings:   &settings.RedisStore{RDB: rdb},
			Notifier:   reserve.LogNotifier{},
		},
		Redis: rdb,
	}

	// Consumer
	group := getenv("REACTOR_GROUP", "stock-reserve-reactor")
	workers := mustAtoi(os.Getenv("REACTOR_WORKERS"), "8")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderLifecycle, workers)

	go func() {
		log.Info().Str("group", group).Str("topic", orders.TopicOrderLifecycle).
			Int("workers", workers).Msg("reactor consumer started")
		if err := cons.Start(ctx, svc.HandleLifecycleEvent); err != nil {
			log.Error().Err(err).Msg("consumer exit")
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down consumer...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
