package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewInvitationExpiresInSevenDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := NewInvitation(NewUserID(uuid.New()), NewUserID(uuid.New()), NewProjectID(uuid.New()), now)
	if inv.Status != InvitationPending {
		t.Errorf("status = %s, want PENDING", inv.Status)
	}
	if want := now.Add(7 * 24 * time.Hour); !inv.ExpiresAt.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", inv.ExpiresAt, want)
	}
}

func TestInvitationEffectiveStatus(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := NewInvitation(NewUserID(uuid.New()), NewUserID(uuid.New()), NewProjectID(uuid.New()), created)

	if got := inv.EffectiveStatus(created.Add(7 * 24 * time.Hour)); got != InvitationPending {
		t.Errorf("at expiry instant: %s, want PENDING", got)
	}
	if got := inv.EffectiveStatus(created.Add(8 * 24 * time.Hour)); got != InvitationExpired {
		t.Errorf("after expiry: %s, want EXPIRED", got)
	}
	inv.Status = InvitationAccepted
	if got := inv.EffectiveStatus(created.Add(30 * 24 * time.Hour)); got != InvitationAccepted {
		t.Errorf("resolved invitations keep their status, got %s", got)
	}
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{TaskTodo, TaskInProgress, TaskDone} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TaskStatus("BLOCKED").Valid() {
		t.Error("BLOCKED should be invalid")
	}
}
