package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/project"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/middleware"
)

// ProjectsHandler handles /api/projects and member search. Requires a session.
type ProjectsHandler struct {
	create   *project.CreateProject
	list     *project.ListProjects
	get      *project.GetProject
	update   *project.UpdateProject
	delete   *project.DeleteProject
	search   *project.SearchMembers
	activity *Activity
	validate *validator.Validate
	log      zerolog.Logger
}

// NewProjectsHandler wires the project use cases over store.
func NewProjectsHandler(store ports.Store, clock ports.Clock, activity *Activity, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		create:   project.NewCreateProject(store, clock),
		list:     project.NewListProjects(store),
		get:      project.NewGetProject(store),
		update:   project.NewUpdateProject(store, clock),
		delete:   project.NewDeleteProject(store),
		search:   project.NewSearchMembers(store),
		activity: activity,
		validate: newValidator(),
		log:      log,
	}
}

type projectBody struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=200"`
}

// Create makes a project owned by the caller.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var body projectBody
	if err := decodeBody(h.validate, r, &body); err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	p, err := h.create.Execute(r.Context(), project.CreateProjectInput{OwnerID: userID, Name: body.Name, Description: body.Description})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	resp := toProject(p)
	h.activity.Record(r, "project.created", p.ID.String(), userID.String(), resp)
	writeMessage(w, http.StatusCreated, "New project has been saved.", resp)
}

// List returns projects the caller owns or belongs to.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projects, err := h.list.Execute(r.Context(), userID)
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjects(projects))
}

// Get returns one project.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	p, err := h.get.Execute(r.Context(), project.GetProjectInput{ProjectID: projectID, ActorID: userID})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	if p == nil {
		writeErr(w, r, h.log, domerrors.NotFound(""))
		return
	}
	writeJSON(w, http.StatusOK, toProject(p))
}

// Update renames or re-describes a project. Owner only.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	var body projectBody
	if err := decodeBody(h.validate, r, &body); err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	p, err := h.update.Execute(r.Context(), project.UpdateProjectInput{
		ProjectID:   projectID,
		ActorID:     userID,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	resp := toProject(p)
	h.activity.Record(r, "project.updated", p.ID.String(), userID.String(), resp)
	writeMessage(w, http.StatusOK, "Project has been updated.", resp)
}

// Delete removes a project with its tasks, invitations and memberships. Owner only.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	p, err := h.delete.Execute(r.Context(), project.DeleteProjectInput{ProjectID: projectID, ActorID: userID})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	h.activity.Record(r, "project.deleted", p.ID.String(), userID.String(), map[string]string{"id": p.ID.String()})
	writeMessage(w, http.StatusOK, "Project and all its tasks deleted successfully", nil)
}

// Members searches the project's members by name or email (?q=, ?limit=).
func (h *ProjectsHandler) Members(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	users, err := h.search.Execute(r.Context(), project.SearchMembersInput{
		ProjectID: projectID,
		ActorID:   userID,
		Query:     r.URL.Query().Get("q"),
		Limit:     limit,
	})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUsers(users))
}

// currentUser returns the session's user id, answering 401 when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, domerrors.ErrUnauthorized)
	}
	return userID, ok
}

func projectIDParam(w http.ResponseWriter, r *http.Request) (domain.ProjectID, bool) {
	id, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeBadID(w, "project")
		return domain.ProjectID{}, false
	}
	return id, true
}
