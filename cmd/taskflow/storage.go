package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/config"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/handlers"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/memory"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/postgres"
)

// seedSessionTTL is how long seeded memory-mode tokens stay valid.
const seedSessionTTL = 30 * 24 * time.Hour

type storage struct {
	store    ports.Store
	sessions ports.SessionStore
	ping     handlers.Pinger
	shutdown func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		store := memory.NewStore()
		if err := seed(store, cfg.SeedUsers, time.Now()); err != nil {
			return nil, err
		}
		log.Warn().Int("users", len(cfg.SeedUsers)).Msg("using in-memory storage; data is lost on restart")
		return &storage{store: store, sessions: store, shutdown: func() {}}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	store := postgres.NewStore(pool)
	if cfg.Storage.Migrate {
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("database schema applied")
	}
	return &storage{
		store:    store,
		sessions: postgres.NewSessionRepository(pool),
		ping:     handlers.PingFunc(pool.Ping),
		shutdown: pool.Close,
	}, nil
}

// seed loads users, and a session per user with a token, into the memory store.
func seed(store *memory.Store, users []config.SeedUser, now time.Time) error {
	for _, su := range users {
		id := uuid.New()
		if su.ID != "" {
			parsed, err := uuid.Parse(su.ID)
			if err != nil {
				return fmt.Errorf("seed user %q: %w", su.Email, err)
			}
			id = parsed
		}
		u := domain.User{
			ID:        domain.NewUserID(id),
			Name:      su.Name,
			Email:     su.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		store.PutUser(u)
		if su.Token != "" {
			store.PutSession(su.Token, ports.Session{UserID: u.ID, ExpiresAt: now.Add(seedSessionTTL)})
		}
	}
	return nil
}
