package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/invitation"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/middleware"
)

// InvitationsHandler handles invitation creation and the invitee's inbox.
type InvitationsHandler struct {
	create     *invitation.CreateInvitation
	list       *invitation.ListInvitations
	hasPending *invitation.HasPendingInvitation
	accept     *invitation.AcceptInvitation
	decline    *invitation.DeclineInvitation
	activity   *Activity
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewInvitationsHandler(store ports.Store, clock ports.Clock, activity *Activity, log zerolog.Logger) *InvitationsHandler {
	return &InvitationsHandler{
		create:     invitation.NewCreateInvitation(store, clock),
		list:       invitation.NewListInvitations(store, clock),
		hasPending: invitation.NewHasPendingInvitation(store),
		accept:     invitation.NewAcceptInvitation(store, clock),
		decline:    invitation.NewDeclineInvitation(store, clock),
		activity:   activity,
		validate:   newValidator(),
		log:        log,
	}
}

type createInvitationBody struct {
	InvitedUserID string `json:"invitedUserId" validate:"required,uuid"`
}

type acceptResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	Membership MembershipResponse `json:"membership"`
}

type pendingResponse struct {
	HasPendingInvitation bool `json:"hasPendingInvitation"`
}

// Create invites a user to the project in the route. Owner only.
func (h *InvitationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	var body createInvitationBody
	if err := decodeBody(h.validate, r, &body); err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	invitedID, _ := domain.ParseUserID(body.InvitedUserID)
	res, err := h.create.Execute(r.Context(), invitation.CreateInvitationInput{
		InviterID:     userID,
		ProjectID:     projectID,
		InvitedUserID: invitedID,
	})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	inv := res.Invitation
	resp := toInvitation(inv)
	middleware.RecordInvitationOutcome("created")
	h.activity.Record(r, "invitation.created", projectID.String(), userID.String(), resp)
	h.activity.InvitationSent(r, ports.InvitationNotice{
		InvitationID:  inv.ID.String(),
		ProjectID:     res.Project.ID.String(),
		ProjectName:   res.Project.Name,
		InviterID:     userID.String(),
		InvitedUserID: res.InvitedUser.ID.String(),
		InvitedEmail:  res.InvitedUser.Email,
		ExpiresAt:     inv.ExpiresAt.Unix(),
	})
	writeMessage(w, http.StatusCreated, "New invitation has been sent.", resp)
}

// List returns the caller's invitations with their effective status.
func (h *InvitationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	list, err := h.list.Execute(r.Context(), userID)
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvitations(list))
}

// Pending reports whether the caller has any PENDING invitation.
func (h *InvitationsHandler) Pending(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	pending, err := h.hasPending.Execute(r.Context(), userID)
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, pendingResponse{HasPendingInvitation: pending})
}

func (h *InvitationsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	invitationID, ok := invitationIDParam(w, r)
	if !ok {
		return
	}
	res, err := h.accept.Execute(r.Context(), invitation.RespondInput{InvitationID: invitationID, ActorID: userID})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	resp := acceptResponse{Invitation: toInvitation(res.Invitation), Membership: toMembership(res.Membership)}
	middleware.RecordInvitationOutcome("accepted")
	h.activity.Record(r, "invitation.accepted", res.Invitation.ProjectID.String(), userID.String(), resp)
	writeMessage(w, http.StatusCreated, "Invitation accepted.", resp)
}

func (h *InvitationsHandler) Decline(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	invitationID, ok := invitationIDParam(w, r)
	if !ok {
		return
	}
	inv, err := h.decline.Execute(r.Context(), invitation.RespondInput{InvitationID: invitationID, ActorID: userID})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	resp := toInvitation(inv)
	middleware.RecordInvitationOutcome("declined")
	h.activity.Record(r, "invitation.declined", inv.ProjectID.String(), userID.String(), resp)
	writeMessage(w, http.StatusOK, "Invitation declined.", resp)
}

func invitationIDParam(w http.ResponseWriter, r *http.Request) (domain.InvitationID, bool) {
	id, err := domain.ParseInvitationID(chi.URLParam(r, "id"))
	if err != nil {
		writeBadID(w, "invitation")
		return domain.InvitationID{}, false
	}
	return id, true
}
