package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	if ErrUnauthorized == nil {
		t.Error("ErrUnauthorized should not be nil")
	}
	if ErrForbidden.Message != PhraseForbidden {
		t.Errorf("ErrForbidden message = %q", ErrForbidden.Message)
	}
	if ErrNotFound.Kind != KindNotFound {
		t.Errorf("ErrNotFound kind = %q", ErrNotFound.Kind)
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := Forbidden("Only the assignee or project owner can update this task")
	if !stderrors.Is(err, ErrForbidden) {
		t.Error("custom forbidden error should match ErrForbidden")
	}
	if stderrors.Is(err, ErrNotFound) {
		t.Error("forbidden error should not match ErrNotFound")
	}
	wrapped := fmt.Errorf("update task: %w", err)
	if !stderrors.Is(wrapped, ErrForbidden) {
		t.Error("wrapped forbidden error should match ErrForbidden")
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := stderrors.New("pq: relation \"tasks\" does not exist")
	err := Internal(cause)
	if err.Message != PhraseInternal {
		t.Errorf("message = %q, want generic phrase", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should stay reachable through Unwrap")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{Validation("", FieldError{Path: "title", Message: "required"}), KindValidation},
		{NotFound(""), KindNotFound},
		{fmt.Errorf("wrap: %w", ErrUnauthorized), KindUnauthorized},
		{stderrors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestAsWrapsUnknown(t *testing.T) {
	e := As(stderrors.New("boom"))
	if e.Kind != KindInternal {
		t.Errorf("kind = %q, want internal", e.Kind)
	}
	v := Validation("bad", FieldError{Path: "name", Message: "too long"})
	if got := As(v); got != v {
		t.Error("As should return the same *Error")
	}
}
