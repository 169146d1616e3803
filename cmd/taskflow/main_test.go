package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/config"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/auth"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/memory"
)

func TestSeed(t *testing.T) {
	store := memory.NewStore()
	id := uuid.New()
	now := time.Now()
	err := seed(store, []config.SeedUser{
		{ID: id.String(), Name: "Ann", Email: "ann@example.com", Token: "dev-ann"},
		{Name: "Bob", Email: "bob@example.com"},
	}, now)
	if err != nil {
		t.Fatal(err)
	}
	u, err := store.Repos().Users.GetByID(context.Background(), domain.NewUserID(id))
	if err != nil || u == nil || u.Email != "ann@example.com" {
		t.Fatalf("seeded user = %+v, err %v", u, err)
	}
	s, _ := store.LookupSession(context.Background(), "dev-ann")
	if s == nil || s.UserID != u.ID {
		t.Errorf("session = %+v", s)
	}

	if err := seed(store, []config.SeedUser{{ID: "nope", Email: "x@example.com"}}, now); err == nil {
		t.Error("expected error for malformed seed id")
	}
}

func TestSessionChain_HMAC(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{
		CookieName: "session_token",
		JWTSecret:  "dev-secret",
		JWTIssuer:  "taskflow-auth",
	}}
	provider, err := sessionChain(cfg, memory.NewStore())
	if err != nil {
		t.Fatal(err)
	}
	userID := domain.NewUserID(uuid.New())
	token, err := auth.IssueHMACToken([]byte("dev-secret"), "taskflow-auth", userID, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	s, err := provider.Resolve(context.Background(), req)
	if err != nil || s == nil || s.UserID != userID {
		t.Fatalf("session = %+v, err %v", s, err)
	}
}

func TestSessionChain_MissingPublicKey(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{JWTPublicKeyPath: "/does/not/exist.pem"}}
	if _, err := sessionChain(cfg, memory.NewStore()); err == nil {
		t.Error("expected error for unreadable key")
	}
}
