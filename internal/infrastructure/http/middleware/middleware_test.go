package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

type providerFunc func(ctx context.Context, r *http.Request) (*ports.Session, error)

func (f providerFunc) Resolve(ctx context.Context, r *http.Request) (*ports.Session, error) {
	return f(ctx, r)
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if _, found := UserIDFromContext(r.Context()); !found {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func TestRequireSession(t *testing.T) {
	userID := domain.NewUserID(uuid.New())
	tests := []struct {
		name     string
		provider providerFunc
		status   int
		kind     string
	}{
		{
			name:     "session",
			provider: func(context.Context, *http.Request) (*ports.Session, error) { return &ports.Session{UserID: userID}, nil },
			status:   http.StatusOK,
		},
		{
			name:     "anonymous",
			provider: func(context.Context, *http.Request) (*ports.Session, error) { return nil, nil },
			status:   http.StatusUnauthorized,
			kind:     "unauthorized",
		},
		{
			name:     "lookup failure",
			provider: func(context.Context, *http.Request) (*ports.Session, error) { return nil, errors.New("db down") },
			status:   http.StatusInternalServerError,
			kind:     "internal_server_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireSession(tt.provider, zerolog.Nop())(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.kind == "" {
				return
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Success || body.Type != tt.kind {
				t.Errorf("body = %+v", body)
			}
			if body.Error.Message == "db down" {
				t.Error("lookup error leaked to client")
			}
		})
	}
}

func TestUserRateLimiter_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limit, err := NewUserRateLimiter(RateLimitConfig{RatePerUser: "2-M", Redis: client})
	if err != nil {
		t.Fatal(err)
	}
	h := limit(okHandler)
	ctx := WithUserID(context.Background(), domain.NewUserID(uuid.New()))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil).WithContext(ctx))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
	if len(mr.Keys()) == 0 {
		t.Error("expected limiter counters in redis")
	}
}

func TestIPRateLimiter_Memory(t *testing.T) {
	limit, err := NewIPRateLimiter(RateLimitConfig{RatePerIP: "1-M"})
	if err != nil {
		t.Fatal(err)
	}
	h := limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))
	var last *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.7:5000"
		h.ServeHTTP(last, req)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.Code)
	}
	var body errorBody
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Type != "custom" || body.Error.Message != rateLimitMessage {
		t.Errorf("body = %+v", body)
	}
}

func TestRateLimiter_BadRate(t *testing.T) {
	if _, err := NewIPRateLimiter(RateLimitConfig{RatePerIP: "lots"}); err == nil {
		t.Error("expected error for malformed rate")
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"https://board.example.com"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://board.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code == http.StatusTeapot || rec.Code >= 300 {
		t.Errorf("preflight status = %d, want short-circuit success", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://board.example.com" {
		t.Errorf("allow-origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("allow-credentials = %q", rec.Header().Get("Access-Control-Allow-Credentials"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
}

func TestCORS_EmptyListDisables(t *testing.T) {
	h := CORS([]string{" ", ""})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://board.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("no origin should be allowed when the list is empty")
	}
}
