package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

// JWTProvider accepts bearer tokens minted by the auth service, signed either
// with a shared HS256 secret or an RS256 key pair.
type JWTProvider struct {
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
}

// NewHMACProvider verifies HS256 tokens with secret.
func NewHMACProvider(secret []byte, issuer string) *JWTProvider {
	return &JWTProvider{secret: secret, issuer: issuer}
}

// NewRSAProvider verifies RS256 tokens with publicKey.
func NewRSAProvider(publicKey *rsa.PublicKey, issuer string) *JWTProvider {
	return &JWTProvider{publicKey: publicKey, issuer: issuer}
}

// Resolve returns (nil, nil) without a bearer token. An invalid token is also
// "no session": the caller answers 401 either way.
func (p *JWTProvider) Resolve(ctx context.Context, r *http.Request) (*ports.Session, error) {
	token := bearerToken(r)
	if token == "" || strings.Count(token, ".") != 2 {
		return nil, nil
	}
	claims, err := p.parseClaims(token)
	if err != nil {
		return nil, nil
	}
	raw := claims.UserID
	if raw == "" {
		raw = claims.Subject
	}
	userID, err := domain.ParseUserID(raw)
	if err != nil {
		return nil, nil
	}
	s := &ports.Session{UserID: userID}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

func (p *JWTProvider) parseClaims(tokenString string) (*sessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if p.secret != nil {
				return p.secret, nil
			}
		case *jwt.SigningMethodRSA:
			if p.publicKey != nil {
				return p.publicKey, nil
			}
		}
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// IssueHMACToken mints an HS256 session token. The service never issues tokens
// itself; this exists for local development and tests.
func IssueHMACToken(secret []byte, issuer string, userID domain.UserID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID.String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

var _ ports.SessionProvider = (*JWTProvider)(nil)
