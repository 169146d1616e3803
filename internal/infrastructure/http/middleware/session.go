package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// RequireSession resolves the caller's session and rejects anonymous requests
// with 401 before any handler runs.
func RequireSession(provider ports.SessionProvider, log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := provider.Resolve(r.Context(), r)
			if err != nil {
				log.Error().Err(err).Msg("session lookup failed")
				writeErr(w, http.StatusInternalServerError, domerrors.KindInternal, domerrors.PhraseInternal)
				return
			}
			if session == nil || session.UserID.IsZero() {
				writeErr(w, http.StatusUnauthorized, domerrors.KindUnauthorized, domerrors.PhraseUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), session.UserID)))
		})
	}
}

type errorBody struct {
	Success bool      `json:"success"`
	Type    string    `json:"type"`
	Error   errorInfo `json:"error"`
}

type errorInfo struct {
	Message string `json:"message"`
}

// writeErr writes the API error envelope for failures raised by middleware.
func writeErr(w http.ResponseWriter, code int, kind domerrors.Kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Type: string(kind), Error: errorInfo{Message: message}})
}
