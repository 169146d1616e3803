package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/retention"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/config"
	httprouter "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/handlers"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/middleware"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/queue"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	backend, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open storage")
	}
	defer backend.shutdown()

	var redisClient *redis.Client
	var redisOpt *redis.Options
	if cfg.Redis.URL != "" {
		redisOpt, err = redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(redisOpt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var emitter ports.WebhookEmitter = webhook.NewNoopEmitter()
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, webhook.WithSecret(cfg.Webhook.Secret))
	}

	var purger queue.Purger
	if p := retention.NewInvitationPurge(backend.store, nil, cfg.Retention.InvitationDays); p.Enabled() {
		purger = p
	}

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	var purgeScheduler *asynq.Scheduler
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Username: redisOpt.Username, Password: redisOpt.Password, DB: redisOpt.DB, TLSConfig: redisOpt.TLSConfig}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, emitter, purger, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
		if purger != nil {
			purgeScheduler, err = queue.NewPurgeScheduler(asynqOpt, cfg.Retention.Schedule, log)
			if err != nil {
				log.Fatal().Err(err).Str("schedule", cfg.Retention.Schedule).Msg("schedule invitation purge")
			}
			if err := purgeScheduler.Start(); err != nil {
				log.Fatal().Err(err).Msg("start purge scheduler")
			}
		}
	} else {
		if cfg.Webhook.URL != "" {
			log.Warn().Msg("WEBHOOK_URL is set but REDIS_URL is not; webhooks are disabled")
		}
		if purger != nil {
			log.Warn().Msg("INVITATION_RETENTION_DAYS is set but REDIS_URL is not; purge is disabled")
		}
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	sessionProvider, err := sessionChain(cfg, backend.sessions)
	if err != nil {
		log.Fatal().Err(err).Msg("configure sessions")
	}

	checks := map[string]handlers.Pinger{}
	if backend.ping != nil {
		checks["database"] = backend.ping
	}
	if redisClient != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}
	healthHandler := handlers.NewHealthHandler(checks)

	limitCfg := middleware.RateLimitConfig{
		RatePerIP:   cfg.RateLimit.RatePerIP,
		RatePerUser: cfg.RateLimit.RatePerUser,
		Redis:       redisClient,
	}
	ipLimit, err := middleware.NewIPRateLimiter(limitCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	userLimit, err := middleware.NewUserRateLimiter(limitCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create user rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))

	activity := handlers.NewActivity(log, taskEnqueuer)
	var clock ports.Clock
	router := httprouter.NewRouter(httprouter.RouterConfig{
		HealthHandler:      healthHandler,
		ProjectsHandler:    handlers.NewProjectsHandler(backend.store, clock, activity, log),
		TasksHandler:       handlers.NewTasksHandler(backend.store, clock, activity, log),
		InvitationsHandler: handlers.NewInvitationsHandler(backend.store, clock, activity, log),
		UsersHandler:       handlers.NewUsersHandler(backend.store, log),
		RequireSession:     middleware.RequireSession(sessionProvider, log),
		Log:                log,
		Secure:             secureMiddleware,
		CORS:               middleware.CORS(cfg.CORS.AllowedOrigins),
		IPRateLimit:        ipLimit,
		UserRateLimit:      userLimit,
		Metrics:            true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("storage", cfg.Storage.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if purgeScheduler != nil {
		purgeScheduler.Shutdown()
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
