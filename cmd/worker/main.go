package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ojt/internal/config"
	"ojt/internal/dtr"
	"ojt/internal/queue"
	"ojt/internal/store"
	"ojt/internal/trainee"
)

// Worker consumes submitted DTRs and credits their hours to trainees.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.QueueBackend != "redis" {
		log.Fatalf("worker needs QUEUE_BACKEND=redis, got %q", cfg.QueueBackend)
	}
	if cfg.StoreBackend == "" || cfg.StoreBackend == "memory" {
		log.Println("WARNING: memory store is not shared with the API; credited hours will not be visible there")
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	if !redisClient.Healthy(ctx) {
		log.Printf("WARNING: redis at %s not reachable, consumer will keep retrying", cfg.RedisAddr)
	}

	kv, err := store.Open(ctx, store.Options{
		Backend:     cfg.StoreBackend,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
		Redis:       redisClient,
	})
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer kv.Close()

	q := queue.NewRedisQueue(redisClient.Client, "")
	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	crediter := dtr.NewCrediter(trainee.NewDirectory(kv, trainee.Seed, nil), nil)
	log.Println("worker started, waiting for messages...")
	crediter.Run(ctx, messages)
	log.Println("worker stopped")
}
