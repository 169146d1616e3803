package handlers

import (
	"net/http"

	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind domerrors.Kind) int {
	switch kind {
	case domerrors.KindValidation:
		return http.StatusUnprocessableEntity
	case domerrors.KindUnauthorized:
		return http.StatusUnauthorized
	case domerrors.KindForbidden:
		return http.StatusForbidden
	case domerrors.KindNotFound:
		return http.StatusNotFound
	case domerrors.KindCustom:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
