package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ojt/internal/accounts"
	"ojt/internal/api"
	"ojt/internal/attachments"
	"ojt/internal/auth"
	"ojt/internal/config"
	"ojt/internal/dtr"
	"ojt/internal/httpmiddleware"
	"ojt/internal/metrics"
	"ojt/internal/profile"
	"ojt/internal/queue"
	"ojt/internal/store"
	"ojt/internal/trainee"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *store.Redis
	if cfg.StoreBackend == "redis" || cfg.QueueBackend == "redis" {
		redisClient = store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
	}

	kv, err := store.Open(ctx, store.Options{
		Backend:     cfg.StoreBackend,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
		Redis:       redisClient,
	})
	if err != nil {
		return err
	}
	defer kv.Close()
	log.Printf("store backend: %s", cfg.StoreBackend)

	m := metrics.New(prometheus.DefaultRegisterer)

	users := accounts.NewService(kv)
	created, err := users.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Printf("seeded admin account %q", cfg.AdminUsername)
	}

	dir := trainee.NewDirectory(kv, trainee.Seed, m)

	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		q = queue.NewRedisQueue(redisClient.Client, "")
	} else {
		mem := queue.NewInMemory(64)
		msgs, err := mem.Consume(ctx)
		if err != nil {
			return err
		}
		// The in-memory queue is private to this process, so credit here.
		go dtr.NewCrediter(dir, m).Run(ctx, msgs)
		q = mem
	}

	deps := api.Deps{
		Accounts: users,
		Issuer:   auth.NewIssuer(cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL),
		Trainees: dir,
		Sessions: trainee.NewSessions(dir, trainee.Options{
			Latency:  cfg.Latency,
			FlashTTL: cfg.SavedFlashTTL,
		}),
		Profiles:       profile.NewStore(kv),
		Submitter:      dtr.NewSubmitter(q, dir, m),
		Metrics:        m,
		Limiter:        httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin),
		Health:         map[string]api.HealthCheck{"store": kv.Healthy},
		MetricsHandler: promhttp.Handler(),
	}
	if redisClient != nil {
		deps.Health["redis"] = redisClient.Healthy
	}
	if cfg.CloudinaryConfigured() {
		deps.Uploader = attachments.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		log.Println("Cloudinary configured:", cfg.CloudinaryCloudName)
	} else {
		log.Println("Cloudinary not configured (CLOUDINARY_CLOUD_NAME / API_KEY / API_SECRET not set)")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      api.New(deps).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.Latency,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
