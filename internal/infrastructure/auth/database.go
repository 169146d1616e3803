package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

// DatabaseProvider resolves opaque session tokens against the auth service's
// sessions table. The token comes from the session cookie or a bearer header.
type DatabaseProvider struct {
	store      ports.SessionStore
	cookieName string
	clock      ports.Clock
}

func NewDatabaseProvider(store ports.SessionStore, cookieName string, clock ports.Clock) *DatabaseProvider {
	return &DatabaseProvider{store: store, cookieName: cookieName, clock: clock}
}

func (p *DatabaseProvider) Resolve(ctx context.Context, r *http.Request) (*ports.Session, error) {
	token := p.token(r)
	if token == "" {
		return nil, nil
	}
	s, err := p.store.LookupSession(ctx, token)
	if err != nil || s == nil {
		return nil, err
	}
	if !s.ExpiresAt.IsZero() && p.clock.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

// token prefers the cookie. Signed cookie values have the form "<token>.<signature>";
// only the token part is stored.
func (p *DatabaseProvider) token(r *http.Request) string {
	if p.cookieName != "" {
		if c, err := r.Cookie(p.cookieName); err == nil && c.Value != "" {
			if i := strings.IndexByte(c.Value, '.'); i > 0 {
				return c.Value[:i]
			}
			return c.Value
		}
	}
	if t := bearerToken(r); t != "" && !strings.Contains(t, ".") {
		return t
	}
	return ""
}

var _ ports.SessionProvider = (*DatabaseProvider)(nil)
