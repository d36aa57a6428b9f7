package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/application/port/outbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/http/middleware"
	"github.com/taskana/taskana/infrastructure/http/response"
	"github.com/taskana/taskana/infrastructure/http/validator"
	"github.com/taskana/taskana/pkg/apperror"
)

type TaskHandler struct {
	taskUseCase inbound.TaskUseCase
}

func NewTaskHandler(taskUseCase inbound.TaskUseCase) *TaskHandler {
	return &TaskHandler{taskUseCase: taskUseCase}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req inbound.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if violations := validator.ValidateCreateTask(req); len(violations) > 0 {
		response.WriteError(w, apperror.Validation(violations))
		return
	}

	claims := middleware.IdentityFromContext(r.Context())
	req.CreatedBy = claims.EmpNumber

	task, err := h.taskUseCase.CreateTask(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{"task": task})
}

// ListForUser serves a user's personal task list; the self-or-admin guard on
// the route keeps other users out.
func (h *TaskHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	empNumber, ok := pathID(w, r, "empNumber")
	if !ok {
		return
	}

	tasks, err := h.taskUseCase.ListTasksForUser(r.Context(), empNumber)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if tasks == nil {
		tasks = []*entity.Task{}
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskUseCase.GetTask(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var update outbound.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	claims := middleware.IdentityFromContext(r.Context())
	task, err := h.taskUseCase.UpdateTask(r.Context(), id, update, *claims)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	claims := middleware.IdentityFromContext(r.Context())
	if err := h.taskUseCase.DeleteTask(r.Context(), id, *claims); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"deleted": fmt.Sprintf("Task number %d", id),
	})
}
