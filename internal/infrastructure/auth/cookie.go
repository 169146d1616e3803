package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

const (
	cookieUserIDKey    = "user_id"
	cookieExpiresAtKey = "expires_at"
)

// CookieProvider reads a signed gorilla/sessions cookie carrying the user id.
type CookieProvider struct {
	store sessions.Store
	name  string
	clock ports.Clock
}

func NewCookieProvider(store sessions.Store, name string, clock ports.Clock) *CookieProvider {
	return &CookieProvider{store: store, name: name, clock: clock}
}

// NewCookieStore returns a gorilla CookieStore with secure defaults.
func NewCookieStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func (p *CookieProvider) Resolve(ctx context.Context, r *http.Request) (*ports.Session, error) {
	if _, err := r.Cookie(p.name); err != nil {
		return nil, nil
	}
	sess, err := p.store.Get(r, p.name)
	if err != nil {
		// Tampered or signed with an old key.
		return nil, nil
	}
	raw, _ := sess.Values[cookieUserIDKey].(string)
	userID, err := domain.ParseUserID(raw)
	if err != nil {
		return nil, nil
	}
	s := &ports.Session{UserID: userID}
	if exp, ok := sess.Values[cookieExpiresAtKey].(int64); ok {
		s.ExpiresAt = time.Unix(exp, 0)
		if p.clock.Now().After(s.ExpiresAt) {
			return nil, nil
		}
	}
	return s, nil
}

// Save writes a session cookie for userID. Used by local tooling and tests.
func (p *CookieProvider) Save(w http.ResponseWriter, r *http.Request, userID domain.UserID, ttl time.Duration) error {
	sess, err := p.store.New(r, p.name)
	if err != nil && sess == nil {
		return err
	}
	sess.Values[cookieUserIDKey] = userID.String()
	sess.Values[cookieExpiresAtKey] = p.clock.Now().Add(ttl).Unix()
	return sess.Save(r, w)
}

var _ ports.SessionProvider = (*CookieProvider)(nil)
