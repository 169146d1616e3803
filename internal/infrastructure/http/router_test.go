package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/apptest"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/auth"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/handlers"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/middleware"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/memory"
)

type testServer struct {
	t      *testing.T
	store  *memory.Store
	clock  *apptest.Clock
	router http.Handler
	tokens map[string]string
	users  map[string]domain.User
}

func newTestServer(t *testing.T, store ports.Store, mem *memory.Store) *testServer {
	t.Helper()
	clock := apptest.NewClock()
	log := zerolog.Nop()
	activity := handlers.NewActivity(log, nil)
	s := &testServer{
		t:      t,
		store:  mem,
		clock:  clock,
		tokens: make(map[string]string),
		users:  make(map[string]domain.User),
	}
	s.router = NewRouter(RouterConfig{
		HealthHandler:      handlers.NewHealthHandler(nil),
		ProjectsHandler:    handlers.NewProjectsHandler(store, clock.Func(), activity, log),
		TasksHandler:       handlers.NewTasksHandler(store, clock.Func(), activity, log),
		InvitationsHandler: handlers.NewInvitationsHandler(store, clock.Func(), activity, log),
		UsersHandler:       handlers.NewUsersHandler(store, log),
		RequireSession:     middleware.RequireSession(auth.NewDatabaseProvider(mem, "taskflow_session", clock.Func()), log),
		Log:                log,
		Metrics:            true,
	})
	for _, name := range []string{"ann", "bob", "eve"} {
		u := apptest.User(mem, name)
		s.users[name] = u
		s.tokens[name] = "tok" + name
		mem.PutSession("tok"+name, ports.Session{UserID: u.ID, ExpiresAt: apptest.Epoch.Add(30 * 24 * time.Hour)})
	}
	return s
}

func newMemoryServer(t *testing.T) *testServer {
	mem := memory.NewStore()
	return newTestServer(t, mem, mem)
}

func (s *testServer) do(method, path, user string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[user])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Error   struct {
		Message string `json:"message"`
		Fields  []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"fields"`
	} `json:"error"`
}

type created struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, kind, message string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var env envelope
	decode(t, rec, &env)
	if env.Success || env.Type != kind {
		t.Errorf("envelope = %+v, want type %q", env, kind)
	}
	if message != "" && env.Error.Message != message {
		t.Errorf("message = %q, want %q", env.Error.Message, message)
	}
	return env
}

// createProject returns the new project's id.
func (s *testServer) createProject(owner, name string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/projects", owner, map[string]string{"name": name})
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("create project: %d %s", rec.Code, rec.Body.String())
	}
	var res created
	decode(s.t, rec, &res)
	var p handlers.ProjectResponse
	if err := json.Unmarshal(res.Data, &p); err != nil {
		s.t.Fatal(err)
	}
	return p.ID
}

// join invites user to projectID as owner and accepts.
func (s *testServer) join(owner, user, projectID string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/projects/"+projectID+"/invitations", owner, map[string]string{"invitedUserId": s.users[user].ID.String()})
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("invite: %d %s", rec.Code, rec.Body.String())
	}
	var res created
	decode(s.t, rec, &res)
	var inv handlers.InvitationResponse
	if err := json.Unmarshal(res.Data, &inv); err != nil {
		s.t.Fatal(err)
	}
	rec = s.do(http.MethodPost, "/api/invitations/"+inv.ID+"/accept", user, nil)
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("accept: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAPI_RequiresSession(t *testing.T) {
	s := newMemoryServer(t)
	for _, path := range []string{"/api/projects", "/api/invitations", "/api/invitations/pending"} {
		rec := s.do(http.MethodGet, path, "", nil)
		expectError(t, rec, http.StatusUnauthorized, "unauthorized", "You must be logged in to perform this action.")
	}
}

func TestAPI_AnonymousNonJSONBodyIsUnauthorized(t *testing.T) {
	s := newMemoryServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader("name=Launch"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	expectError(t, rec, http.StatusUnauthorized, "unauthorized", "")

	req = httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader("name=Launch"))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Authorization", "Bearer "+s.tokens["ann"])
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("signed-in non-JSON status = %d, want 415", rec.Code)
	}
}

func TestAPI_ExpiredSessionIsUnauthorized(t *testing.T) {
	s := newMemoryServer(t)
	s.clock.Advance(31 * 24 * time.Hour)
	rec := s.do(http.MethodGet, "/api/projects", "ann", nil)
	expectError(t, rec, http.StatusUnauthorized, "unauthorized", "")
}

func TestAPI_HealthIsPublic(t *testing.T) {
	s := newMemoryServer(t)
	rec := s.do(http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-API-Version") != APIVersion {
		t.Errorf("X-API-Version = %q", rec.Header().Get("X-API-Version"))
	}
}

func TestAPI_ProjectLifecycle(t *testing.T) {
	s := newMemoryServer(t)
	id := s.createProject("ann", "Launch")

	rec := s.do(http.MethodGet, "/api/projects", "ann", nil)
	var list []handlers.ProjectResponse
	decode(t, rec, &list)
	if len(list) != 1 || list[0].ID != id || list[0].OwnerID != s.users["ann"].ID.String() {
		t.Fatalf("list = %+v", list)
	}

	rec = s.do(http.MethodGet, "/api/projects/"+id, "eve", nil)
	expectError(t, rec, http.StatusForbidden, "forbidden", "")

	rec = s.do(http.MethodPatch, "/api/projects/"+id, "ann", map[string]string{"name": "Launch v2", "description": "Q3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}
	var res created
	decode(t, rec, &res)
	if res.Message != "Project has been updated." {
		t.Errorf("message = %q", res.Message)
	}

	rec = s.do(http.MethodDelete, "/api/projects/"+id, "ann", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodGet, "/api/projects/"+id, "ann", nil)
	expectError(t, rec, http.StatusNotFound, "not_found", "")
}

func TestAPI_ValidationFields(t *testing.T) {
	s := newMemoryServer(t)
	rec := s.do(http.MethodPost, "/api/projects", "ann", map[string]string{"name": "", "description": strings.Repeat("x", 201)})
	env := expectError(t, rec, http.StatusUnprocessableEntity, "validation_error", "")
	paths := map[string]string{}
	for _, f := range env.Error.Fields {
		paths[f.Path] = f.Message
	}
	if paths["name"] != "Project name is required" {
		t.Errorf("name field = %q", paths["name"])
	}
	if paths["description"] == "" {
		t.Errorf("missing description field in %+v", env.Error.Fields)
	}
}

func TestAPI_MalformedID(t *testing.T) {
	s := newMemoryServer(t)
	rec := s.do(http.MethodGet, "/api/projects/not-a-uuid", "ann", nil)
	expectError(t, rec, http.StatusBadRequest, "not_found", "Invalid or missing project id")

	rec = s.do(http.MethodPost, "/api/invitations/nope/accept", "ann", nil)
	expectError(t, rec, http.StatusBadRequest, "not_found", "Invalid or missing invitation id")
}

func TestAPI_InviteAcceptAndTaskRules(t *testing.T) {
	s := newMemoryServer(t)
	id := s.createProject("ann", "Launch")

	rec := s.do(http.MethodGet, "/api/invitations/pending", "bob", nil)
	var pending struct {
		HasPendingInvitation bool `json:"hasPendingInvitation"`
	}
	decode(t, rec, &pending)
	if pending.HasPendingInvitation {
		t.Fatal("bob should have no pending invitation yet")
	}

	s.join("ann", "bob", id)

	rec = s.do(http.MethodGet, "/api/invitations", "bob", nil)
	var invs []handlers.InvitationResponse
	decode(t, rec, &invs)
	if len(invs) != 1 || invs[0].Status != "ACCEPTED" || invs[0].Project == nil || invs[0].Project.Name != "Launch" {
		t.Fatalf("invitations = %+v", invs)
	}

	rec = s.do(http.MethodPost, "/api/projects/"+id+"/tasks", "ann", map[string]string{
		"title":      "Write copy",
		"assigneeId": s.users["bob"].ID.String(),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: %d %s", rec.Code, rec.Body.String())
	}
	var res created
	decode(t, rec, &res)
	var task handlers.TaskResponse
	if err := json.Unmarshal(res.Data, &task); err != nil {
		t.Fatal(err)
	}
	if task.Status != "TODO" {
		t.Errorf("status = %q, want TODO", task.Status)
	}

	rec = s.do(http.MethodPatch, "/api/projects/"+id+"/tasks/status", "bob", map[string]string{"taskId": task.ID, "status": "IN_PROGRESS"})
	if rec.Code != http.StatusOK {
		t.Fatalf("assignee status update: %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPatch, "/api/projects/"+id+"/tasks/status", "eve", map[string]string{"taskId": task.ID, "status": "DONE"})
	expectError(t, rec, http.StatusForbidden, "forbidden", "")

	rec = s.do(http.MethodDelete, "/api/projects/"+id+"/tasks", "bob", map[string]string{"taskId": task.ID})
	expectError(t, rec, http.StatusForbidden, "forbidden", "Only project owners can delete tasks")

	rec = s.do(http.MethodGet, "/api/projects/"+id+"/tasks", "bob", nil)
	var tasks []handlers.TaskResponse
	decode(t, rec, &tasks)
	if len(tasks) != 1 || tasks[0].Status != "IN_PROGRESS" || tasks[0].Assignee == nil || tasks[0].Assignee.Name != "bob" {
		t.Fatalf("tasks = %+v", tasks)
	}

	rec = s.do(http.MethodGet, "/api/projects/"+id+"/members?q=BO", "ann", nil)
	var members []handlers.UserResponse
	decode(t, rec, &members)
	if len(members) != 1 || members[0].Email != "bob@example.com" {
		t.Fatalf("members = %+v", members)
	}

	rec = s.do(http.MethodDelete, "/api/projects/"+id+"/tasks", "ann", map[string]string{"taskId": task.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAPI_BlankAssigneeMeansUnassigned(t *testing.T) {
	s := newMemoryServer(t)
	id := s.createProject("ann", "Launch")

	rec := s.do(http.MethodPost, "/api/projects/"+id+"/tasks", "ann", map[string]string{
		"title":      "Write copy",
		"assigneeId": "",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: %d %s", rec.Code, rec.Body.String())
	}
	var res created
	decode(t, rec, &res)
	var task handlers.TaskResponse
	if err := json.Unmarshal(res.Data, &task); err != nil {
		t.Fatal(err)
	}
	if task.AssignedID != nil {
		t.Errorf("assignedId = %q, want null", *task.AssignedID)
	}

	rec = s.do(http.MethodPatch, "/api/projects/"+id+"/tasks", "ann", map[string]string{
		"id":         task.ID,
		"title":      "Write copy",
		"status":     "DONE",
		"assigneeId": "",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update task: %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/api/projects/"+id+"/tasks", "ann", map[string]string{
		"title":      "Ship",
		"assigneeId": "not-a-uuid",
	})
	expectError(t, rec, http.StatusUnprocessableEntity, "validation_error", "")
}

func TestAPI_UserSearchFeedsInvite(t *testing.T) {
	s := newMemoryServer(t)
	id := s.createProject("ann", "Launch")

	rec := s.do(http.MethodGet, "/api/users/search?q=example.com", "ann", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: %d %s", rec.Code, rec.Body.String())
	}
	var users []handlers.UserResponse
	decode(t, rec, &users)
	if len(users) != 2 || users[0].Name != "bob" || users[1].Name != "eve" {
		t.Fatalf("users = %+v, want bob and eve without the caller", users)
	}

	rec = s.do(http.MethodGet, "/api/users/search?q=BO", "ann", nil)
	decode(t, rec, &users)
	if len(users) != 1 || users[0].ID != s.users["bob"].ID.String() {
		t.Fatalf("users = %+v, want bob", users)
	}

	rec = s.do(http.MethodPost, "/api/projects/"+id+"/invitations", "ann", map[string]string{"invitedUserId": users[0].ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("invite found user: %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/users/search", "ann", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("blank search = %d %s, want []", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/users/search?q=bob", "", nil)
	expectError(t, rec, http.StatusUnauthorized, "unauthorized", "")
}

func TestAPI_DeclineInvitation(t *testing.T) {
	s := newMemoryServer(t)
	id := s.createProject("ann", "Launch")
	rec := s.do(http.MethodPost, "/api/projects/"+id+"/invitations", "ann", map[string]string{"invitedUserId": s.users["eve"].ID.String()})
	var res created
	decode(t, rec, &res)
	var inv handlers.InvitationResponse
	if err := json.Unmarshal(res.Data, &inv); err != nil {
		t.Fatal(err)
	}

	rec = s.do(http.MethodPost, "/api/invitations/"+inv.ID+"/decline", "bob", nil)
	expectError(t, rec, http.StatusForbidden, "forbidden", "")

	rec = s.do(http.MethodPost, "/api/invitations/"+inv.ID+"/decline", "eve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("decline: %d %s", rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodPost, "/api/invitations/"+inv.ID+"/accept", "eve", nil)
	expectError(t, rec, http.StatusUnprocessableEntity, "validation_error", "")
}

func TestAPI_InternalErrorHidesCause(t *testing.T) {
	mem := memory.NewStore()
	failing := &apptest.FailingStore{
		Store: mem,
		Wrap: func(r ports.Repositories) ports.Repositories {
			r.Memberships = apptest.FailingMemberships{MembershipRepository: r.Memberships}
			return r
		},
	}
	s := newTestServer(t, failing, mem)
	rec := s.do(http.MethodPost, "/api/projects", "ann", map[string]string{"name": "Launch"})
	expectError(t, rec, http.StatusInternalServerError, "internal_server_error", "An unexpected server error occurred. Please try again later.")
	if strings.Contains(rec.Body.String(), apptest.ErrInjected.Error()) {
		t.Errorf("cause leaked: %s", rec.Body.String())
	}

	projects, err := mem.Repos().Projects.ListForUser(context.Background(), s.users["ann"].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 0 {
		t.Errorf("project survived rollback: %+v", projects)
	}
}
