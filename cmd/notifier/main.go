package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shuddhindia/storefront-api/internal/config"
	kafkax "github.com/shuddhindia/storefront-api/internal/kafka"
	"github.com/shuddhindia/storefront-api/internal/notify"
	"github.com/shuddhindia/storefront-api/internal/orders"
	"github.com/shuddhindia/storefront-api/internal/postgres"
	"github.com/shuddhindia/storefront-api/internal/redisx"
	"github.com/shuddhindia/storefront-api/internal/users"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Service{
		Redis: rdb,
		Mailer: notify.SMTPMailer{
			Addr:     cfg.SMTPAddr,
			From:     cfg.SMTPFrom,
			Password: cfg.SMTPPassword,
		},
		Users:       &users.Repo{DB: db},
		ServiceName: cfg.ServiceName + "-notifier",
	}

	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderEvents, workers)

	go func() {
		log.Printf("notifier consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderEvents, workers)
		if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down consumer...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

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
