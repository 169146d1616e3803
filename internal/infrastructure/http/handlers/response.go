package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// errorResponse is the envelope every failure is reported in.
type errorResponse struct {
	Success bool        `json:"success"`
	Type    string      `json:"type"`
	Error   errorDetail `json:"error"`
}

type errorDetail struct {
	Message string        `json:"message"`
	Fields  []fieldDetail `json:"fields,omitempty"`
}

type fieldDetail struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// messageResponse is the body of a successful mutation.
type messageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, messageResponse{Message: message, Data: data})
}

// writeErr reports err in the envelope. Internal causes are logged, never sent.
func writeErr(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	e := domerrors.As(err)
	if e.Kind == domerrors.KindInternal {
		log.Error().Err(e.Err).
			Str("request_id", requestID(r)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeEnvelope(w, statusFor(e.Kind), e)
}

func writeEnvelope(w http.ResponseWriter, code int, e *domerrors.Error) {
	message := e.Message
	if e.Kind == domerrors.KindInternal {
		message = domerrors.PhraseInternal
	}
	writeJSON(w, code, errorResponse{
		Type: string(e.Kind),
		Error: errorDetail{
			Message: message,
			Fields: lo.Map(e.Fields, func(f domerrors.FieldError, _ int) fieldDetail {
				return fieldDetail{Path: f.Path, Message: f.Message}
			}),
		},
	})
}

// writeBadID answers a missing or malformed identifier: 400 with type not_found.
func writeBadID(w http.ResponseWriter, what string) {
	writeEnvelope(w, http.StatusBadRequest, domerrors.NotFound("Invalid or missing "+what+" id"))
}
