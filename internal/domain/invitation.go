package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationTTL is how long an invitation stays acceptable after creation.
const InvitationTTL = 7 * 24 * time.Hour

// InvitationID is a value object for invitation identity.
type InvitationID struct{ uuid.UUID }

// NewInvitationID creates a new InvitationID from uuid.
func NewInvitationID(id uuid.UUID) InvitationID { return InvitationID{UUID: id} }

// ParseInvitationID parses the canonical string form.
func ParseInvitationID(s string) (InvitationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InvitationID{}, err
	}
	return NewInvitationID(id), nil
}

// String returns the canonical string form.
func (i InvitationID) String() string { return i.UUID.String() }

// InvitationStatus is the stored state. EXPIRED is only ever derived at read time.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

// Invitation asks InvitedUserID to join ProjectID.
type Invitation struct {
	ID            InvitationID
	InvitedUserID UserID
	ProjectID     ProjectID
	InviterID     UserID
	Status        InvitationStatus
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewInvitation returns a PENDING invitation expiring InvitationTTL after now.
func NewInvitation(inviter, invited UserID, projectID ProjectID, now time.Time) *Invitation {
	return &Invitation{
		ID:            NewInvitationID(uuid.New()),
		InvitedUserID: invited,
		ProjectID:     projectID,
		InviterID:     inviter,
		Status:        InvitationPending,
		ExpiresAt:     now.Add(InvitationTTL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Expired reports whether the acceptance window has closed at now.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Pending reports whether the invitation is still open (ignores expiry).
func (i *Invitation) Pending() bool {
	return i.Status == InvitationPending
}

// EffectiveStatus is the status as shown to readers: a pending invitation past
// its expiry reads as EXPIRED.
func (i *Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Pending() && i.Expired(now) {
		return InvitationExpired
	}
	return i.Status
}

// InvitationWithDetails is an invitation joined with its project and inviter.
type InvitationWithDetails struct {
	Invitation
	Project Project
	Inviter User
}
