package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

// Session is what the external auth service vouches for.
type Session struct {
	UserID    domain.UserID
	ExpiresAt time.Time
}

// SessionProvider resolves the caller's session from an inbound request.
// (nil, nil) means no session; errors are lookup failures.
type SessionProvider interface {
	Resolve(ctx context.Context, r *http.Request) (*Session, error)
}

// SessionStore looks up sessions written by the auth service. (nil, nil) means
// the token is unknown; expiry is checked by the caller.
type SessionStore interface {
	LookupSession(ctx context.Context, token string) (*Session, error)
}
