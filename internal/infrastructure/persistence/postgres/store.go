package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/db"
)

const uniqueViolation = "23505"

// Store hands out repositories over the pool or over one transaction.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Repos() ports.Repositories {
	return repositories(db.New(s.pool))
}

func (s *Store) WithinTx(ctx context.Context, fn func(ports.Repositories) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(repositories(db.New(tx))); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Migrate applies the embedded schema.
func (s *Store) Migrate(ctx context.Context) error {
	return db.Migrate(ctx, s.pool)
}

func repositories(q *db.Queries) ports.Repositories {
	return ports.Repositories{
		Users:       NewUserRepository(q),
		Projects:    NewProjectRepository(q),
		Memberships: NewMembershipRepository(q),
		Tasks:       NewTaskRepository(q),
		Invitations: NewInvitationRepository(q),
	}
}

// noRows turns pgx.ErrNoRows into the (nil, nil) lookup convention.
func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func duplicate(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", what, ports.ErrDuplicate)
	}
	return err
}

var _ ports.Store = (*Store)(nil)
