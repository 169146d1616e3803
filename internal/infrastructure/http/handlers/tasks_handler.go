package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/task"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/middleware"
)

// TasksHandler handles /api/projects/{id}/tasks.
type TasksHandler struct {
	create       *task.CreateTask
	list         *task.ListTasks
	update       *task.UpdateTask
	updateStatus *task.UpdateTaskStatus
	delete       *task.DeleteTask
	activity     *Activity
	validate     *validator.Validate
	log          zerolog.Logger
}

func NewTasksHandler(store ports.Store, clock ports.Clock, activity *Activity, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		create:       task.NewCreateTask(store, clock),
		list:         task.NewListTasks(store),
		update:       task.NewUpdateTask(store, clock),
		updateStatus: task.NewUpdateTaskStatus(store, clock),
		delete:       task.NewDeleteTask(store),
		activity:     activity,
		validate:     newValidator(),
		log:          log,
	}
}

type createTaskBody struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Status      string  `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	AssigneeID  *string `json:"assigneeId" validate:"omitempty,uuid"`
}

type updateTaskBody struct {
	ID          string  `json:"id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Status      string  `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	AssigneeID  *string `json:"assigneeId" validate:"omitempty,uuid"`
}

// An empty assigneeId is sent by the board UI for "Unassigned".
func (b *createTaskBody) normalize() { b.AssigneeID = blankToNil(b.AssigneeID) }

func (b *updateTaskBody) normalize() { b.AssigneeID = blankToNil(b.AssigneeID) }

func blankToNil(s *string) *string {
	if s != nil && strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

type updateStatusBody struct {
	TaskID string `json:"taskId" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}

type deleteTaskBody struct {
	TaskID string `json:"taskId" validate:"required,uuid"`
}

// List returns the project's tasks with their assignees, newest first.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	tasks, err := h.list.Execute(r.Context(), task.ListTasksInput{ProjectID: projectID, ActorID: userID})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toTasks(tasks))
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	var body createTaskBody
	if err := decodeBody(h.validate, r, &body); err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	t, err := h.create.Execute(r.Context(), task.CreateTaskInput{
		ProjectID:   projectID,
		ActorID:     userID,
		Title:       body.Title,
		Description: body.Description,
		Status:      domain.TaskStatus(body.Status),
		AssigneeID:  assigneeOf(body.AssigneeID),
	})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	resp := toTask(t)
	h.activity.Record(r, "task.created", projectID.String(), userID.String(), resp)
	writeMessage(w, http.StatusCreated, "New task has been saved.", resp)
}

// Update replaces title, description, status and assignee. The task id is in the body.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	var body updateTaskBody
	if err := decodeBody(h.validate, r, &body); err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	taskID, _ := domain.ParseTaskID(body.ID)
	res, err := h.update.Execute(r.Context(), task.UpdateTaskInput{
		TaskID:      taskID,
		ProjectID:   projectID,
		ActorID:     userID,
		Title:       body.Title,
		Description: body.Description,
		Status:      domain.TaskStatus(body.Status),
		AssigneeID:  assigneeOf(body.AssigneeID),
	})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	h.updated(w, r, userID, res)
}

// UpdateStatus moves a task to another column.
func (h *TasksHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	var body updateStatusBody
	if err := decodeBody(h.validate, r, &body); err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	taskID, _ := domain.ParseTaskID(body.TaskID)
	res, err := h.updateStatus.Execute(r.Context(), task.UpdateStatusInput{
		TaskID:    taskID,
		ProjectID: projectID,
		ActorID:   userID,
		Status:    domain.TaskStatus(body.Status),
	})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	h.updated(w, r, userID, res)
}

func (h *TasksHandler) updated(w http.ResponseWriter, r *http.Request, userID domain.UserID, res *task.UpdateTaskResult) {
	if res.PreviousStatus != res.Task.Status {
		middleware.RecordTaskStatusChange(string(res.PreviousStatus), string(res.Task.Status))
	}
	resp := toTask(res.Task)
	h.activity.Record(r, "task.updated", res.Task.ProjectID.String(), userID.String(), resp)
	writeMessage(w, http.StatusOK, "Task has been updated.", resp)
}

// Delete removes a task. Owner only; the task id is in the body.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(w, r)
	if !ok {
		return
	}
	var body deleteTaskBody
	if err := decodeBody(h.validate, r, &body); err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	taskID, _ := domain.ParseTaskID(body.TaskID)
	t, err := h.delete.Execute(r.Context(), task.DeleteTaskInput{TaskID: taskID, ProjectID: projectID, ActorID: userID})
	if err != nil {
		writeErr(w, r, h.log, err)
		return
	}
	h.activity.Record(r, "task.deleted", projectID.String(), userID.String(), map[string]string{"id": t.ID.String()})
	writeMessage(w, http.StatusOK, "Task deleted successfully", nil)
}

// assigneeOf parses an already validated assignee id; nil means unassigned.
func assigneeOf(s *string) *domain.UserID {
	if s == nil {
		return nil
	}
	id, err := domain.ParseUserID(*s)
	if err != nil {
		return nil
	}
	return &id
}
