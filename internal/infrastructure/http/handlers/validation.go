package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// Validation limits.
const (
	MaxProjectName        = 100
	MaxProjectDescription = 200
	MaxTaskTitle          = 100
	MaxTaskDescription    = 200
	maxBodyBytes          = 1 << 20
)

// fieldMessages holds the user-facing text per "<json field>.<tag>".
var fieldMessages = map[string]string{
	"name.required":          "Project name is required",
	"name.max":               "Project name can't be more than 100 characters",
	"description.max":        "Description can't be more than 200 characters",
	"title.required":         "Task name is required",
	"title.max":              "Task name can't be more than 100 characters",
	"status.required":        "Task status is required",
	"status.oneof":           "Invalid task status",
	"id.required":            "Task id is required",
	"id.uuid":                "Task id is invalid",
	"taskId.required":        "Task id is required",
	"taskId.uuid":            "Task id is invalid",
	"assigneeId.uuid":        "Assignee id is invalid",
	"invitedUserId.required": "Invited user id is required",
	"invitedUserId.uuid":     "Invited user id is invalid",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads a JSON body into dst and validates it. Failures come back
// as validation errors carrying one entry per bad field.
// normalizer is implemented by bodies that rewrite client input before validation.
type normalizer interface {
	normalize()
}

func decodeBody(v *validator.Validate, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domerrors.Validation("", domerrors.FieldError{Path: typeErr.Field, Message: "Invalid value"})
		}
		return domerrors.Validation("The request body is not valid JSON.")
	}
	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}
	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domerrors.Internal(err)
		}
		fields := make([]domerrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, domerrors.FieldError{Path: fe.Field(), Message: fieldMessage(fe)})
		}
		return domerrors.Validation("", fields...)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}
