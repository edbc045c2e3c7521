package main

import (
	"log"

	"github.com/hibiken/asynq"

	"bookshelf/internal/cache"
	"bookshelf/internal/config"
	"bookshelf/internal/confirm"
	"bookshelf/internal/mail"
	"bookshelf/internal/tasks"
)

// The worker consumes deferred tasks from the same redis instance the API
// server enqueues to. It runs as a separate process so the request path never
// waits on task execution.
func main() {
	cfg := config.Load()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	codeStore := confirm.NewRedisStore(cacheClient)
	mailer := mail.NewSender(cfg.Env, cfg.MailAPIKey, cfg.MailFrom)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: cfg.WorkerCount,
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeConfirmationEmail, tasks.NewHandler(codeStore, mailer))

	log.Printf("worker started with %d workers", cfg.WorkerCount)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("worker run: %v", err)
	}
}
