package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/db"
)

// SessionRepository reads the auth service's sessions table.
type SessionRepository struct {
	q *db.Queries
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{q: db.New(pool)}
}

func (r *SessionRepository) LookupSession(ctx context.Context, token string) (*ports.Session, error) {
	s, err := r.q.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, noRows(err)
	}
	return &ports.Session{UserID: domain.NewUserID(s.UserID), ExpiresAt: s.ExpiresAt}, nil
}

var _ ports.SessionStore = (*SessionRepository)(nil)
