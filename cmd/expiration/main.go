package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ariefcatur/go-stock-reserve.git/internal/config"
	"github.com/ariefcatur/go-stock-reserve.git/internal/expiration"
	kafkax "github.com/ariefcatur/go-stock-reserve.git/internal/kafka"
	"github.com/ariefcatur/go-stock-reserve.git/internal/orders"
	"github.com/ariefcatur/go-stock-reserve.git/internal/postgres"
	"github.com/ariefcatur/go-stock-reserve.git/internal/redisx"
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

	// Producer: queue cart.expiration
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicCartExpiration, 1024)
	prod.Start(ctx)

	orderRepo := &orders.Repo{DB: db}
	stockRepo := &stock.Repo{DB: db}
	store := &settings.RedisStore{RDB: rdb}

	scanner := &expiration.Scanner{
		Orders:     orderRepo,
		Payments:   orderRepo,
		Stock:      stockRepo,
		Controlled: stockRepo,
		Locations:  stockRepo,
		Settings:   store,
		Queue:      &expiration.KafkaQueue{Producer: prod, ServiceName: cfg.ServiceName + "-expiration"},
	}

	// sweep berkala (pengganti cron host)
	go func() {
		t := time.NewTicker(cfg.ScanEvery)
		defer t.Stop()
		for {
			if err := scanner.Run(ctx); err != nil {
				log.Error().Err(err).Msg("expiration sweep failed")
			}
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()

	worker := &expiration.Worker{Orders: orderRepo, Settings: store}

	// Consumer
	group := getenv("EXPIRATION_GROUP", "stock-reserve-expiration")
	workers := mustAtoi(os.Getenv("EXPIRATION_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicCartExpiration, workers)

	go func() {
		log.Info().Str("group", group).Str("topic", orders.TopicCartExpiration).
			Int("workers", workers).Msg("expiration consumer started")
		if err := cons.Start(ctx, worker.Handle); err != nil {
			log.Error().Err(err).Msg("consumer exit")
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	prod.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
