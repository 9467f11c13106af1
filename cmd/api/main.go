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

	"github.com/shuddhindia/storefront-api/internal/cart"
	"github.com/shuddhindia/storefront-api/internal/catalog"
	"github.com/shuddhindia/storefront-api/internal/config"
	"github.com/shuddhindia/storefront-api/internal/coupon"
	"github.com/shuddhindia/storefront-api/internal/feedback"
	"github.com/shuddhindia/storefront-api/internal/httpx"
	kafkax "github.com/shuddhindia/storefront-api/internal/kafka"
	"github.com/shuddhindia/storefront-api/internal/orders"
	"github.com/shuddhindia/storefront-api/internal/payment"
	"github.com/shuddhindia/storefront-api/internal/postgres"
	"github.com/shuddhindia/storefront-api/internal/redisx"
	"github.com/shuddhindia/storefront-api/internal/support"
	"github.com/shuddhindia/storefront-api/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	// Repos
	userRepo := &users.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	cartRepo := &cart.Repo{DB: db}
	couponRepo := &coupon.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db, Coupons: couponRepo}
	feedbackRepo := &feedback.Repo{DB: db}
	supportRepo := &support.Repo{DB: db}

	if err := userRepo.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	orderSvc := &orders.Service{
		Store:    orderRepo,
		Carts:    cartRepo,
		Coupons:  couponRepo,
		Producer: prod,
		Name:     cfg.ServiceName,
	}

	authz := httpx.Auth{Secret: []byte(cfg.JWTSecret)}
	router := httpx.NewRouter()

	(&httpx.AuthHandler{
		Users:    userRepo,
		Verifier: users.SandboxVerifier{},
		Secret:   []byte(cfg.JWTSecret),
		Auth:     authz,
	}).Register(router)
	(&httpx.ProductsHandler{Catalog: catalogRepo, Users: userRepo, Auth: authz}).Register(router)
	(&httpx.CartHandler{Carts: cartRepo, Auth: authz}).Register(router)
	(&httpx.CouponsHandler{Coupons: couponRepo, Auth: authz}).Register(router)
	(&httpx.OrdersHandler{Service: orderSvc, Cache: httpx.RedisStatusCache{Client: rdb}, Auth: authz}).Register(router)
	(&httpx.PaymentHandler{
		Gateway:  payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		Verifier: payment.Verifier{Secret: []byte(cfg.RazorpayKeySecret)},
		Orders:   orderSvc,
		Redis:    rdb,
		Auth:     authz,
	}).Register(router)
	(&httpx.FeedbackHandler{Feedback: feedbackRepo, Support: supportRepo, Users: userRepo, Auth: authz}).Register(router)
	(&httpx.AdminHandler{Orders: orderRepo, Catalog: catalogRepo, Users: userRepo, Auth: authz}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	cancel()
	prod.WaitClosed()
}
